package buildopts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/craype/pkg/buildopts"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.conf")
	content := "optarch = x86-rome\nmodule_syntax = Lua\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := buildopts.LoadFile(path)
	require.NoError(t, err)

	v, ok := opts.Get("optarch")
	require.True(t, ok)
	require.Equal(t, "x86-rome", v)

	v, ok = opts.Get("module-syntax")
	require.True(t, ok)
	require.Equal(t, "Lua", v)

	_, ok = opts.Get("missing")
	require.False(t, ok)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := buildopts.LoadFile(filepath.Join(t.TempDir(), "missing.conf"))
	require.Error(t, err)
}

func TestFromEnviron(t *testing.T) {
	opts := buildopts.FromEnviron(buildopts.EnvPrefix, []string{
		"EASYBUILD_OPTARCH=x86-milan",
		"EASYBUILD_MODULE_SYNTAX=Tcl",
		"EASYBUILD_=ignored",
		"PATH=/usr/bin",
		"malformed",
	})

	require.Equal(t, buildopts.Map{"optarch": "x86-milan", "module-syntax": "Tcl"}, opts)
}

func TestLayered(t *testing.T) {
	store := buildopts.Layered{
		nil,
		buildopts.Map{"optarch": "x86-rome"},
		buildopts.Map{"optarch": "x86-64", "debug": "True"},
	}

	v, ok := store.Get("optarch")
	require.True(t, ok)
	require.Equal(t, "x86-rome", v)

	v, ok = store.Get("debug")
	require.True(t, ok)
	require.Equal(t, "True", v)

	_, ok = store.Get("missing")
	require.False(t, ok)
}
