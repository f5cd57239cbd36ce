/*
Package aocc provides the flag table of the AMD Optimizing C/C++ Compiler.
*/
package aocc

import (
	"github.com/tmaxmax/craype/pkg/toolchain"
)

// Family is the compiler family of AOCC.
const Family toolchain.Family = "AOCC"

var flags = toolchain.NewFlagMap(map[string]toolchain.FlagValue{
	"unroll":      toolchain.Literal("funroll-loops"),
	"lto":         toolchain.Literal("flto"),
	"ieee":        toolchain.Literal("mieee-fp"),
	"strict":      toolchain.List("ffp-model=strict"),
	"precise":     toolchain.List("ffp-model=precise"),
	"defaultprec": toolchain.List("fno-unsafe-math-optimizations", "fno-fast-math"),
	"loose":       toolchain.List("ffast-math", "fno-unsafe-math-optimizations"),
	"veryloose":   toolchain.List("ffast-math"),
	"openmp":      toolchain.Literal("fopenmp"),
	"optarch":     toolchain.Literal("march=native"),
})

func init() {
	toolchain.RegisterFlagTable(Family, flags)
}

// Flags returns the AOCC flag table.
func Flags() toolchain.FlagMap {
	return flags
}

// Spec describes the standalone AOCC compiler.
func Spec() toolchain.CompilerSpec {
	return toolchain.CompilerSpec{
		ToolchainFamily: "AOCC",
		Family:          Family,
		Drivers:         toolchain.Drivers{CC: "clang", CXX: "clang++", F77: "flang", F90: "flang", FC: "flang"},
		ModuleNames:     []string{"AOCC"},
		Options:         []toolchain.OptionSpec{{Name: "lto", Description: "Enable Link Time Optimization"}},
		Flags:           flags,
		FlagOptions:     []string{"lto"},
	}
}
