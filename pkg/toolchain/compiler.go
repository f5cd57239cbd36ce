package toolchain

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmaxmax/craype/pkg/environment"
)

// Drivers are the commands used to compile each language.
type Drivers struct {
	CC  string
	CXX string
	F77 string
	F90 string
	FC  string
}

// CompilerSpec describes a compiler family in terms of the generic compiler.
type CompilerSpec struct {
	// ToolchainFamily is the family of toolchains the compiler belongs to, for example "CPE".
	ToolchainFamily string
	// Family of the underlying compiler, used for feature detection.
	Family Family
	// Drivers are the compiler commands.
	Drivers Drivers
	// ModuleNames are the environment modules that provide the compiler.
	ModuleNames []string
	// Options are the options unique to this compiler. They are registered after
	// the shared options and replace shared options with the same name.
	Options []OptionSpec
	// Flags are the flags unique to this compiler. They replace shared flags with the same name.
	Flags FlagMap
	// FlagOptions are additional options that translate directly to a flag.
	FlagOptions []string
}

// A Compiler is the generic compiler of a toolchain. It keeps its own flag map,
// derived from the shared flags and the flags of its spec.
type Compiler struct {
	spec    CompilerSpec
	options *Options
	flags   FlagMap
	env     environment.Environment
	log     *slog.Logger
}

// A CompilerOption customizes a Compiler created with NewCompiler.
type CompilerOption func(*Compiler)

// WithEnvironment sets the environment the compiler exports its variables to.
// Defaults to the process environment.
func WithEnvironment(env environment.Environment) CompilerOption {
	return func(c *Compiler) {
		c.env = env
	}
}

// WithLogger sets the logger of the compiler. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.log = logger
	}
}

// NewCompiler creates a compiler from the given spec.
func NewCompiler(spec CompilerSpec, opts ...CompilerOption) (*Compiler, error) {
	spec.ModuleNames = append([]string(nil), spec.ModuleNames...)
	spec.Options = append([]OptionSpec(nil), spec.Options...)
	spec.FlagOptions = append([]string(nil), spec.FlagOptions...)

	options, err := NewOptions(sharedOptions...)
	if err != nil {
		return nil, err
	}
	if err := options.Register(spec.Options...); err != nil {
		return nil, err
	}

	c := &Compiler{
		spec:    spec,
		options: options,
		flags:   sharedFlags.Merge(spec.Flags),
		env:     environment.Process{},
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Options returns the toolchain options of the compiler. Set them before calling Prepare.
func (c *Compiler) Options() *Options {
	return c.options
}

// Flags returns the current flag map of the compiler.
func (c *Compiler) Flags() FlagMap {
	return c.flags
}

// SetFlag replaces the entry of an option in the flag map of this compiler only.
func (c *Compiler) SetFlag(name string, v FlagValue) {
	c.flags = c.flags.Set(name, v)
}

// ResolveFlag returns the flags of an option for its current value.
func (c *Compiler) ResolveFlag(name string) ([]string, error) {
	value, ok := c.options.Lookup(name)
	if !ok {
		return nil, NewConfigError(ErrUnknownOption, "toolchain: unknown toolchain option %q", name)
	}

	return c.flags.Resolve(name, value)
}

func (c *Compiler) ToolchainFamily() string { return c.spec.ToolchainFamily }
func (c *Compiler) Family() Family           { return c.spec.Family }
func (c *Compiler) Drivers() Drivers         { return c.spec.Drivers }

// ModuleNames returns the modules that provide the compiler.
func (c *Compiler) ModuleNames() []string {
	return append([]string(nil), c.spec.ModuleNames...)
}

func (c *Compiler) Environment() environment.Environment { return c.env }
func (c *Compiler) Logger() *slog.Logger                 { return c.log }

// Prepare exports the compiler commands ($CC, $CXX, $F77, $F90, $FC) and the
// compiler flags ($CFLAGS, $CXXFLAGS, $FFLAGS, $F90FLAGS, $FCFLAGS) to the environment.
// Every registered option must have an entry in the flag map.
func (c *Compiler) Prepare(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if missing := c.flags.Missing(c.options.Names()); len(missing) > 0 {
		return NewConfigError(ErrMissingFlag, "toolchain: no flag mapping for options %s", strings.Join(missing, ", "))
	}

	flags, err := c.commonFlags()
	if err != nil {
		return err
	}

	fortranFlags := append([]string(nil), flags...)
	for _, name := range FortranFlags() {
		if !c.options.Enabled(name) {
			continue
		}
		resolved, err := c.flags.Resolve(name, true)
		if err != nil {
			return err
		}
		fortranFlags = append(fortranFlags, resolved...)
	}

	cflags := formatFlags(flags)
	fflags := formatFlags(fortranFlags)

	vars := []struct{ key, value string }{
		{"CC", c.spec.Drivers.CC},
		{"CXX", c.spec.Drivers.CXX},
		{"F77", c.spec.Drivers.F77},
		{"F90", c.spec.Drivers.F90},
		{"FC", c.spec.Drivers.FC},
		{"CFLAGS", cflags},
		{"CXXFLAGS", cflags},
		{"FFLAGS", fflags},
		{"F90FLAGS", fflags},
		{"FCFLAGS", fflags},
	}

	for _, v := range vars {
		if v.value == "" && !strings.HasSuffix(v.key, "FLAGS") {
			continue
		}

		c.log.Debug("Setting compiler variable.", "name", v.key, "value", v.value)
		if err := c.env.Setenv(v.key, v.value); err != nil {
			return err
		}
	}

	return nil
}

// commonFlags returns, in order: the optimization level, the enabled flag options,
// the architecture flags and the precision flags.
func (c *Compiler) commonFlags() ([]string, error) {
	var out []string

	add := func(name string) error {
		resolved, err := c.flags.Resolve(name, true)
		if err != nil {
			return err
		}
		out = append(out, resolved...)
		return nil
	}

	optLevel := DefaultOptLevel
	for _, name := range OptimizationFlags() {
		if name != DefaultOptLevel && c.options.Enabled(name) {
			optLevel = name
			break
		}
	}
	if err := add(optLevel); err != nil {
		return nil, err
	}

	for _, name := range append(CompilerFlags(), c.spec.FlagOptions...) {
		if !c.options.Enabled(name) {
			continue
		}
		if err := add(name); err != nil {
			return nil, err
		}
	}

	if c.options.Enabled("optarch") {
		if err := add("optarch"); err != nil {
			return nil, err
		}
	}

	precision := DefaultPrecision
	for _, name := range PrecisionFlags() {
		if c.options.Enabled(name) {
			precision = name
			break
		}
	}
	if err := add(precision); err != nil {
		return nil, err
	}

	return out, nil
}

func formatFlags(flags []string) string {
	var b strings.Builder
	for i, flag := range flags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('-')
		b.WriteString(flag)
	}

	return b.String()
}
