package modules

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/craype/pkg/environment"
)

// fakeLmod replaces the Lmod command with TestHelperProcess.
func fakeLmod(tb testing.TB) *Lmod {
	tb.Helper()

	orig := execCommandContext
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
	tb.Cleanup(func() { execCommandContext = orig })

	path := filepath.Join(tb.TempDir(), "lmod")
	require.NoError(tb, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	l, err := NewLmod(path, &environment.Map{}, nil)
	require.NoError(tb, err)

	return l
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	// -- <lmod> python <subcommand> <args...>
	args = args[3:]

	switch args[0] {
	case "show":
		if args[1] != "craype-x86-rome" {
			fmt.Fprintf(os.Stderr, "Lmod has detected the following error: Unable to find: %q\n", args[1])
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "whatis(\"Cray PE target\")")
	case "--terse":
		fmt.Fprintln(os.Stderr, "/opt/cray/pe/lmod/modulefiles/craype-targets/default:")
		fmt.Fprintln(os.Stderr, "craype-x86-rome")
		fmt.Fprintln(os.Stderr, "cpeGNU/21.08(default)")
	case "load":
		if args[1] == "broken" {
			fmt.Fprintln(os.Stderr, "Lmod has detected the following error: broken")
			os.Exit(1)
		}
		fmt.Println("os.environ['CRAY_CPU_TARGET'] = 'x86-rome';")
		fmt.Println("os.environ['LOADEDMODULES'] = '" + strings.Join(args[1:], ":") + "';")
		fmt.Println("del os.environ['CRAYPE_NETWORK_TARGET'];")
	}
}

func TestLmod_ExistSkipAvail(t *testing.T) {
	l := fakeLmod(t)

	exists, err := l.Exist(context.Background(), []string{"craype-x86-64", "craype-x86-rome"}, true)
	require.NoError(t, err)
	require.Equal(t, []bool{false, true}, exists)
}

func TestLmod_ExistAvail(t *testing.T) {
	l := fakeLmod(t)

	exists, err := l.Exist(context.Background(), []string{"craype-x86-rome", "cpeGNU", "cpeGNU/21.08", "cpeCray"}, false)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, true, false}, exists)
}

func TestLmod_Load(t *testing.T) {
	l := fakeLmod(t)
	env := l.env.(*environment.Map)
	require.NoError(t, env.Setenv("CRAYPE_NETWORK_TARGET", "ofi"))

	require.NoError(t, l.Load(context.Background(), []string{"craype-x86-rome"}))

	require.Equal(t, map[string]string{
		"CRAY_CPU_TARGET": "x86-rome",
		"LOADEDMODULES":   "craype-x86-rome",
	}, env.Vars())

	err := l.Load(context.Background(), []string{"broken"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken")
}

func TestNewLmod(t *testing.T) {
	_, err := NewLmod("", nil, nil)
	require.Error(t, err)

	_, err = NewLmod(filepath.Join(t.TempDir(), "missing"), nil, nil)
	require.Error(t, err)

	_, err = NewLmodFromEnv(environment.NewMap(nil), nil)
	require.Error(t, err)
}

func TestParseEnvChanges(t *testing.T) {
	changes, err := parseEnvChanges([]byte(`
os.environ['PE_ENV'] = 'GNU';
os.environ['MSG'] = 'it\'s';
os.environ.pop('OLD', None);
`))
	require.NoError(t, err)
	require.Equal(t, []envChange{
		{key: "PE_ENV", value: "GNU"},
		{key: "MSG", value: "it's"},
		{key: "OLD", unset: true},
	}, changes)

	_, err = parseEnvChanges([]byte("false\n"))
	require.Error(t, err)
}
