/*
Package intel provides the flag table of the Intel C/C++ and Fortran
compilers (icc, icpc, ifort).
*/
package intel

import (
	"github.com/tmaxmax/craype/pkg/toolchain"
)

// Family is the compiler family of the Intel compilers.
const Family toolchain.Family = "Intel"

var options = []toolchain.OptionSpec{
	{Name: "intel-static", Description: "Link Intel provided libraries statically"},
	{Name: "no-icc", Description: "Don't set Intel specific macros"},
	{Name: "error-unknown-option", Description: "Error instead of warning for unknown options"},
}

var flags = toolchain.NewFlagMap(map[string]toolchain.FlagValue{
	"i8":                   toolchain.Literal("i8"),
	"r8":                   toolchain.Literal("r8"),
	"optarch":              toolchain.Literal("xHost"),
	"ieee":                 toolchain.Literal("fltconsistency"),
	"strict":               toolchain.List("fp-speculation=strict", "fp-model strict"),
	"precise":              toolchain.List("fp-model precise"),
	"defaultprec":          toolchain.List("ftz", "fp-speculation=safe", "fp-model source"),
	"loose":                toolchain.List("fp-model fast=1"),
	"veryloose":            toolchain.List("fp-model fast=2"),
	"openmp":               toolchain.Literal("qopenmp"),
	"intel-static":         toolchain.Literal("static-intel"),
	"no-icc":               toolchain.Literal("no-icc"),
	"error-unknown-option": toolchain.Literal("we10006"),
})

func init() {
	toolchain.RegisterFlagTable(Family, flags)
}

// Flags returns the Intel flag table.
func Flags() toolchain.FlagMap {
	return flags
}

// Spec describes the standalone Intel compilers.
func Spec() toolchain.CompilerSpec {
	return toolchain.CompilerSpec{
		ToolchainFamily: "IntelIccIfort",
		Family:          Family,
		Drivers:         toolchain.Drivers{CC: "icc", CXX: "icpc", F77: "ifort", F90: "ifort", FC: "ifort"},
		ModuleNames:     []string{"icc", "ifort"},
		Options:         append([]toolchain.OptionSpec(nil), options...),
		Flags:           flags,
		FlagOptions:     []string{"intel-static", "no-icc", "error-unknown-option"},
	}
}
