package toolchain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/craype/pkg/toolchain"
)

func TestFlagValue_Resolve(t *testing.T) {
	type test struct {
		name   string
		value  toolchain.FlagValue
		input  bool
		expect []string
	}

	tests := []test{
		{name: "Literal", value: toolchain.Literal("fPIC"), input: true, expect: []string{"fPIC"}},
		{name: "EmptyLiteral", value: toolchain.Literal(""), input: true},
		{name: "ZeroValue", input: true},
		{name: "List", value: toolchain.List("mieee-fp", "mno-recip"), input: true, expect: []string{"mieee-fp", "mno-recip"}},
		{name: "EmptyList", value: toolchain.List(), input: true},
		{name: "ToggleTrue", value: toolchain.Toggle("openmp", "noopenmp"), input: true, expect: []string{"openmp"}},
		{name: "ToggleFalse", value: toolchain.Toggle("openmp", "noopenmp"), input: false, expect: []string{"noopenmp"}},
		{name: "ToggleEmptySide", value: toolchain.Toggle("vec", ""), input: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, test.value.Resolve(test.input))
		})
	}
}

func TestFlagValue_Equal(t *testing.T) {
	require.True(t, toolchain.List().Equal(toolchain.List()))
	require.True(t, toolchain.Literal("").Equal(toolchain.FlagValue{}))
	require.False(t, toolchain.Literal("").Equal(toolchain.List()))
	require.False(t, toolchain.List("a").Equal(toolchain.List("a", "b")))
	require.False(t, toolchain.Toggle("a", "b").Equal(toolchain.Toggle("b", "a")))
	require.True(t, toolchain.List("").IsEmpty())
	require.False(t, toolchain.Toggle("", "noopenmp").IsEmpty())
}

func TestFlagValue_ListIsCopied(t *testing.T) {
	flags := []string{"fno-math-errno"}
	v := toolchain.List(flags...)
	flags[0] = "ffast-math"

	resolved := v.Resolve(true)
	require.Equal(t, []string{"fno-math-errno"}, resolved)

	resolved[0] = "changed"
	require.Equal(t, []string{"fno-math-errno"}, v.Resolve(true))
}

func TestFlagMap_WithDoesNotMutate(t *testing.T) {
	entries := map[string]toolchain.FlagValue{"verbose": toolchain.Literal("v")}
	base := toolchain.NewFlagMap(entries)
	entries["verbose"] = toolchain.Literal("changed")

	derived := base.With(map[string]toolchain.FlagValue{
		"verbose": toolchain.Literal("craype-verbose"),
		"shared":  toolchain.Literal(""),
	})

	v, ok := base.Lookup("verbose")
	require.True(t, ok)
	require.True(t, v.Equal(toolchain.Literal("v")))
	require.Equal(t, 1, base.Len())

	v, _ = derived.Lookup("verbose")
	require.True(t, v.Equal(toolchain.Literal("craype-verbose")))
	require.Equal(t, []string{"shared", "verbose"}, derived.Names())

	single := derived.Set("optarch", toolchain.Literal(""))
	require.Equal(t, 2, derived.Len())
	require.Equal(t, 3, single.Len())
	require.False(t, single.Equal(derived))
	require.True(t, derived.Equal(base.Merge(derived)))
}

func TestFlagMap_Resolve(t *testing.T) {
	m := toolchain.NewFlagMap(map[string]toolchain.FlagValue{
		"openmp": toolchain.Toggle("openmp", "noopenmp"),
	})

	flags, err := m.Resolve("openmp", false)
	require.NoError(t, err)
	require.Equal(t, []string{"noopenmp"}, flags)

	_, err = m.Resolve("pic", true)
	require.Error(t, err)
	require.True(t, errors.Is(err, toolchain.ErrMissingFlag))

	var configErr *toolchain.ConfigError
	require.True(t, errors.As(err, &configErr))

	require.Equal(t, []string{"pic", "debug"}, m.Missing([]string{"pic", "openmp", "debug"}))
}
