/*
Package cpe supports the compiler drivers of the Cray Programming Environment
(craype), known as cc, CC and ftn.

The compiler drivers know how to invoke the true underlying compiler with the
options it needs on Cray systems, including the libraries for MPI, LibSci and
FFT. The underlying compiler is selected by loading a cpe<vendor> module and
the code generation target by loading a craype-<target> module.

A Driver is created for one Vendor, from a generic configuration specialized
with the vendor's names and precision flags.
*/
package cpe

import (
	"github.com/tmaxmax/craype/pkg/toolchain"
)

const (
	// ToolchainFamily is the toolchain family of every Cray compiler driver.
	ToolchainFamily = "CPE"
	// FamilyCCE is the compiler family of the Cray compilers.
	FamilyCCE toolchain.Family = "CCE"

	// LinkTypeVar selects between static and dynamic linking in the compiler drivers.
	LinkTypeVar = "CRAYPE_LINK_TYPE"

	// OptarchOption is the name of both the build option naming the target
	// architecture and the toolchain option enabling architecture optimizations.
	OptarchOption = "optarch"

	compilerModulePrefix = "cpe"
	prgEnvModulePrefix   = "PrgEnv-"
	craypeModulePrefix   = "craype-"
)

var drivers = toolchain.Drivers{CC: "cc", CXX: "CC", F77: "ftn", F90: "ftn", FC: "ftn"}

var uniqueOptions = []toolchain.OptionSpec{
	{Name: "dynamic", Default: true, Description: "Generate dynamically linked executable"},
	{Name: "mpich-mt", Description: "Directs the driver to link in an alternate version of the Cray-MPICH library which " +
		"provides fine-grained multi-threading support to applications that perform MPI operations within threaded regions."},
	{Name: OptarchOption, Description: "Enable architecture optimizations"},
	{Name: "verbose", Default: true, Description: "Verbose output"},
}

// shared and dynamic are handled through $CRAYPE_LINK_TYPE, no flags are passed to the drivers.
var defaultFlags = toolchain.NewFlagMap(map[string]toolchain.FlagValue{
	"shared":   toolchain.Literal(""),
	"dynamic":  toolchain.Literal(""),
	"verbose":  toolchain.Literal("craype-verbose"),
	"mpich-mt": toolchain.Literal("craympich-mt"),
	"openmp":   toolchain.Toggle("openmp", "noopenmp"),
})

var flagOptions = []string{"dynamic", "mpich-mt"}

// Config is the configuration of a Cray compiler driver.
type Config struct {
	// Vendor is zero for the generic configuration.
	Vendor Vendor
	// Family of the underlying compiler.
	Family toolchain.Family
	// ModuleNames are the modules that provide the compiler.
	ModuleNames []string
	// PrgEnvModule is the name of the matching PrgEnv module.
	PrgEnvModule string
	// Options are the options the drivers add to the generic compiler options.
	Options []toolchain.OptionSpec
	// FlagOptions are the added options that translate to a flag.
	FlagOptions []string
	// Flags are the flags of the drivers.
	Flags toolchain.FlagMap
}

// Base returns the generic configuration of the Cray compiler drivers.
// It is not bound to a vendor and must be specialized before use.
func Base() Config {
	return Config{
		Options:     append([]toolchain.OptionSpec(nil), uniqueOptions...),
		FlagOptions: append([]string(nil), flagOptions...),
		Flags:       defaultFlags,
	}
}

func (c Config) clone() Config {
	c.ModuleNames = append([]string(nil), c.ModuleNames...)
	c.Options = append([]toolchain.OptionSpec(nil), c.Options...)
	c.FlagOptions = append([]string(nil), c.FlagOptions...)
	return c
}

// Spec returns the generic compiler spec of the configuration.
func (c Config) Spec() toolchain.CompilerSpec {
	c = c.clone()

	return toolchain.CompilerSpec{
		ToolchainFamily: ToolchainFamily,
		Family:          c.Family,
		Drivers:         drivers,
		ModuleNames:     c.ModuleNames,
		Options:         c.Options,
		Flags:           c.Flags,
		FlagOptions:     c.FlagOptions,
	}
}

// FlagTables returns the flag table of a compiler family.
type FlagTables func(toolchain.Family) (toolchain.FlagMap, error)

// Specialize binds the configuration to a vendor. The entries of the given
// precision flags are taken from the flag table of the vendor's compiler family,
// except for CCE, where they have no flag: the Cray compiler does not expose
// separate precision flags through its drivers. base is not modified.
func Specialize(base Config, v Vendor, tables FlagTables, precFlags []string) (Config, error) {
	id, ok := v.Identity()
	if !ok {
		return Config{}, toolchain.NewConfigError(toolchain.ErrFlagTable, "cpe: no compiler module name suffix for %s", v)
	}

	overrides := make(map[string]toolchain.FlagValue, len(precFlags))
	if v == CCE {
		for _, name := range precFlags {
			overrides[name] = toolchain.List()
		}
	} else {
		if tables == nil {
			tables = toolchain.LookupFlagTable
		}

		table, err := tables(id.Family)
		if err != nil {
			return Config{}, toolchain.NewConfigError(toolchain.ErrFlagTable, "cpe: %s: %v", v, err)
		}

		for _, name := range precFlags {
			flag, ok := table.Lookup(name)
			if !ok {
				return Config{}, toolchain.NewConfigError(toolchain.ErrFlagTable,
					"cpe: flag table of compiler family %s has no entry for precision option %q", id.Family, name)
			}
			overrides[name] = flag
		}
	}

	c := base.clone()
	c.Vendor = v
	c.Family = id.Family
	c.ModuleNames = []string{CompilerModuleName(v)}
	c.PrgEnvModule = PrgEnvModuleName(v)
	c.Flags = base.Flags.With(overrides)

	return c, nil
}

// CompilerModuleName returns the name of the module that provides the compiler
// of the vendor, for example "cpeGNU". It returns an empty string for unknown vendors.
func CompilerModuleName(v Vendor) string {
	id, ok := v.Identity()
	if !ok {
		return ""
	}

	return compilerModulePrefix + id.CPEModuleSuffix
}

// PrgEnvModuleName returns the name of the PrgEnv module of the vendor, for example
// "PrgEnv-gnu". It returns an empty string for unknown vendors.
func PrgEnvModuleName(v Vendor) string {
	id, ok := v.Identity()
	if !ok {
		return ""
	}

	return prgEnvModulePrefix + id.PrgEnvSuffix
}

// ArchitectureModuleName returns the name of the craype module that selects
// the code generation target, for example "craype-x86-rome".
func ArchitectureModuleName(optarch string) string {
	return craypeModulePrefix + optarch
}
