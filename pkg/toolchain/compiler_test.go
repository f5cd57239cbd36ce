package toolchain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/craype/pkg/environment"
	"github.com/tmaxmax/craype/pkg/toolchain"
)

func newTestCompiler(tb testing.TB, env environment.Environment) *toolchain.Compiler {
	tb.Helper()

	c, err := toolchain.NewCompiler(toolchain.CompilerSpec{
		ToolchainFamily: "test",
		Family:          "TEST",
		Drivers:         toolchain.Drivers{CC: "tcc", CXX: "tc++", F77: "tf77", F90: "tf90", FC: "tfc"},
		ModuleNames:     []string{"testcc"},
		Options: []toolchain.OptionSpec{
			{Name: "lto", Description: "Enable Link Time Optimization"},
			{Name: "optarch", Default: false},
		},
		Flags: toolchain.NewFlagMap(map[string]toolchain.FlagValue{
			"lto":     toolchain.Literal("flto"),
			"i8":      toolchain.Literal("fdefault-integer-8"),
			"strict":  toolchain.List("mieee-fp", "mno-recip"),
			"optarch": toolchain.Literal("march=native"),
		}),
		FlagOptions: []string{"lto"},
	}, toolchain.WithEnvironment(env))
	require.NoError(tb, err)

	return c
}

func TestCompiler_Prepare(t *testing.T) {
	env := &environment.Map{}
	c := newTestCompiler(t, env)

	opts := c.Options()
	require.NoError(t, opts.Set("opt", true))
	require.NoError(t, opts.Set("pic", true))
	require.NoError(t, opts.Set("lto", true))
	require.NoError(t, opts.Set("strict", true))
	require.NoError(t, opts.Set("i8", true))
	require.NoError(t, opts.Set("optarch", true))

	require.NoError(t, c.Prepare(context.Background()))

	vars := env.Vars()
	require.Equal(t, "tcc", vars["CC"])
	require.Equal(t, "tc++", vars["CXX"])
	require.Equal(t, "tfc", vars["FC"])
	require.Equal(t, "-O3 -fPIC -flto -march=native -mieee-fp -mno-recip", vars["CFLAGS"])
	require.Equal(t, vars["CFLAGS"], vars["CXXFLAGS"])
	require.Equal(t, "-O3 -fPIC -flto -march=native -mieee-fp -mno-recip -fdefault-integer-8", vars["FFLAGS"])
	require.Equal(t, vars["FFLAGS"], vars["F90FLAGS"])
	require.Equal(t, vars["FFLAGS"], vars["FCFLAGS"])
}

func TestCompiler_PrepareDefaults(t *testing.T) {
	env := &environment.Map{}
	c := newTestCompiler(t, env)

	require.NoError(t, c.Prepare(context.Background()))

	cflags, _ := env.Lookup("CFLAGS")
	require.Equal(t, "-O2", cflags)
}

func TestCompiler_PrepareMissingFlag(t *testing.T) {
	env := &environment.Map{}
	c, err := toolchain.NewCompiler(toolchain.CompilerSpec{
		Options: []toolchain.OptionSpec{{Name: "unmapped"}},
	}, toolchain.WithEnvironment(env))
	require.NoError(t, err)

	err = c.Prepare(context.Background())
	require.True(t, errors.Is(err, toolchain.ErrMissingFlag))
	require.Contains(t, err.Error(), "unmapped")
	require.Empty(t, env.Keys())
}

func TestCompiler_PrepareCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestCompiler(t, &environment.Map{})
	require.True(t, errors.Is(c.Prepare(ctx), context.Canceled))
}

func TestCompiler_SetFlagIsolated(t *testing.T) {
	a := newTestCompiler(t, &environment.Map{})
	b := newTestCompiler(t, &environment.Map{})

	a.SetFlag("verbose", toolchain.Literal("changed"))

	flags, err := a.ResolveFlag("verbose")
	require.NoError(t, err)
	require.Equal(t, []string{"changed"}, flags)

	require.NoError(t, b.Options().Set("verbose", true))
	flags, err = b.ResolveFlag("verbose")
	require.NoError(t, err)
	require.Equal(t, []string{"v"}, flags)

	v, _ := toolchain.SharedFlags().Lookup("verbose")
	require.True(t, v.Equal(toolchain.Literal("v")))

	_, err = a.ResolveFlag("missing")
	require.True(t, errors.Is(err, toolchain.ErrUnknownOption))
}

func TestSharedFlagsCoverSharedOptions(t *testing.T) {
	var names []string
	for _, spec := range toolchain.SharedOptions() {
		names = append(names, spec.Name)
	}

	require.Empty(t, toolchain.SharedFlags().Missing(names))
	require.Empty(t, toolchain.SharedFlags().Missing(toolchain.OptimizationFlags()))
}
