package gcc

import (
	"github.com/tmaxmax/craype/pkg/toolchain"
)

var options = []toolchain.OptionSpec{
	{Name: "loop", Description: "Automatic loop parallellisation"},
	{Name: "f2c", Description: "Generate code compatible with f2c and f77"},
	{Name: "lto", Description: "Enable Link Time Optimization"},
}

var flags = toolchain.NewFlagMap(map[string]toolchain.FlagValue{
	"i8":                      toolchain.Literal("fdefault-integer-8"),
	"r8":                      toolchain.List("fdefault-real-8", "fdefault-double-8"),
	"unroll":                  toolchain.Literal("funroll-loops"),
	"f2c":                     toolchain.Literal("ff2c"),
	"loop":                    toolchain.List("ftree-switch-conversion", "floop-interchange", "floop-strip-mine", "floop-block"),
	"lto":                     toolchain.Literal("flto"),
	"ieee":                    toolchain.List("mieee-fp", "fno-trapping-math"),
	"strict":                  toolchain.List("mieee-fp", "mno-recip"),
	"precise":                 toolchain.List("mno-recip"),
	"defaultprec":             toolchain.List("fno-math-errno"),
	"loose":                   toolchain.List("fno-math-errno", "mrecip", "mno-ieee-fp"),
	"veryloose":               toolchain.List("fno-math-errno", "mrecip=all", "mno-ieee-fp"),
	"openmp":                  toolchain.Literal("fopenmp"),
	"optarch":                 toolchain.Literal("march=native"),
	toolchain.DefaultOptLevel: toolchain.List("O2", "ftree-vectorize"),
})

// Flags returns the GCC flag table.
func Flags() toolchain.FlagMap {
	return flags
}

// Spec describes the standalone GCC compiler.
func Spec() toolchain.CompilerSpec {
	return toolchain.CompilerSpec{
		ToolchainFamily: "GCC",
		Family:          Family,
		Drivers:         toolchain.Drivers{CC: "gcc", CXX: "g++", F77: "gfortran", F90: "gfortran", FC: "gfortran"},
		ModuleNames:     []string{"GCC"},
		Options:         append([]toolchain.OptionSpec(nil), options...),
		Flags:           flags,
		FlagOptions:     []string{"f2c", "loop", "lto"},
	}
}
