package toolchain

// DefaultOptLevel is the flag map key used when no optimization option is enabled.
const DefaultOptLevel = "defaultopt"

// DefaultPrecision is the precision option used when no precision option is enabled.
const DefaultPrecision = "defaultprec"

var sharedOptions = []OptionSpec{
	{Name: "debug", Description: "Enable debug"},
	{Name: "i8", Description: "Integers are 8 byte integers"},
	{Name: "ieee", Description: "Adhere to IEEE-754 rules"},
	{Name: "noopt", Description: "Disable compiler optimizations"},
	{Name: "lowopt", Description: "Low compiler optimizations"},
	{Name: "opt", Description: "High compiler optimizations"},
	{Name: "optarch", Default: true, Description: "Enable architecture optimizations"},
	{Name: "openmp", Description: "Enable OpenMP"},
	{Name: "pic", Description: "Use PIC"},
	{Name: "r8", Description: "Real is 8 byte real"},
	{Name: "shared", Description: "Build shared library"},
	{Name: "static", Description: "Build static library"},
	{Name: "unroll", Description: "Unroll loops"},
	{Name: "verbose", Description: "Verbose output"},
	{Name: "strict", Description: "Strict (highest) precision"},
	{Name: "precise", Description: "High precision"},
	{Name: DefaultPrecision, Description: "Default precision"},
	{Name: "loose", Description: "Loose precision"},
	{Name: "veryloose", Description: "Very loose precision"},
}

var sharedFlags = NewFlagMap(map[string]FlagValue{
	"debug":          Literal("g"),
	"i8":             Literal(""),
	"ieee":           Literal(""),
	"noopt":          Literal("O0"),
	"lowopt":         Literal("O1"),
	DefaultOptLevel:  Literal("O2"),
	"opt":            Literal("O3"),
	"optarch":        Literal(""),
	"openmp":         Literal("fopenmp"),
	"pic":            Literal("fPIC"),
	"r8":             Literal(""),
	"shared":         Literal("shared"),
	"static":         Literal("static"),
	"unroll":         Literal("unroll"),
	"verbose":        Literal("v"),
	"strict":         List(),
	"precise":        List(),
	DefaultPrecision: List(),
	"loose":          List(),
	"veryloose":      List(),
})

// SharedOptions returns the options every compiler supports.
func SharedOptions() []OptionSpec {
	return append([]OptionSpec(nil), sharedOptions...)
}

// SharedFlags returns the flags every compiler starts from before
// applying its own table.
func SharedFlags() FlagMap {
	return sharedFlags
}

// PrecisionFlags returns the options that control floating-point precision,
// from the strictest to the loosest.
func PrecisionFlags() []string {
	return []string{"strict", "precise", DefaultPrecision, "loose", "veryloose"}
}

// OptimizationFlags returns the keys of the optimization levels, from the lowest to the highest.
func OptimizationFlags() []string {
	return []string{"noopt", "lowopt", DefaultOptLevel, "opt"}
}

// CompilerFlags returns the options that translate directly to a flag for every language.
func CompilerFlags() []string {
	return []string{"debug", "ieee", "openmp", "pic", "shared", "static", "unroll", "verbose"}
}

// FortranFlags returns the options that translate directly to a flag for Fortran only.
func FortranFlags() []string {
	return []string{"i8", "r8"}
}
