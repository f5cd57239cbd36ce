package tcconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/craype/pkg/tcconfig"
)

func TestParse(t *testing.T) {
	src := `
vendor  = "GNU"
optarch = "x86-rome"
options = {
  openmp   = true
  dynamic  = false
  "mpich-mt" = "true"
}
`
	f, err := tcconfig.Parse([]byte(src), "toolchain.hcl")
	require.NoError(t, err)
	require.Equal(t, &tcconfig.File{
		Vendor:  "GNU",
		Optarch: "x86-rome",
		Options: map[string]bool{"openmp": true, "dynamic": false, "mpich-mt": true},
	}, f)
}

func TestParse_Minimal(t *testing.T) {
	f, err := tcconfig.Parse([]byte(`vendor = "Cray"`), "toolchain.hcl")
	require.NoError(t, err)
	require.Equal(t, "Cray", f.Vendor)
	require.Empty(t, f.Optarch)
	require.Empty(t, f.Options)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"MissingVendor":   `optarch = "x86-64"`,
		"UnknownAttr":     "vendor = \"GNU\"\ncompiler = \"gcc\"",
		"OptionsNotMap":   "vendor = \"GNU\"\noptions = true",
		"OptionNotBool":   "vendor = \"GNU\"\noptions = { openmp = [true] }",
		"InvalidSyntax":   `vendor = `,
		"UnknownVariable": "vendor = \"GNU\"\noptions = { openmp = enabled }",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tcconfig.Parse([]byte(src), "toolchain.hcl")
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolchain.hcl")
	require.NoError(t, os.WriteFile(path, []byte("vendor = \"AMD\"\noptions = { verbose = false }\n"), 0o644))

	f, err := tcconfig.Load(path)
	require.NoError(t, err)
	require.Equal(t, "AMD", f.Vendor)
	require.Equal(t, map[string]bool{"verbose": false}, f.Options)

	_, err = tcconfig.Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}
