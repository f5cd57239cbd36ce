package cpe

import (
	"context"
	"log/slog"
	"os"

	"github.com/tmaxmax/craype/pkg/buildopts"
	"github.com/tmaxmax/craype/pkg/environment"
	"github.com/tmaxmax/craype/pkg/modules"
	"github.com/tmaxmax/craype/pkg/toolchain"
)

type phase int

const (
	phaseConstructed phase = iota
	phasePrepared
	phaseArchitectureApplied
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phaseConstructed:
		return "constructed"
	case phasePrepared:
		return "prepared"
	case phaseArchitectureApplied:
		return "architecture applied"
	default:
		return "failed"
	}
}

// A Driver is the compiler of a Cray toolchain. A Driver is used for a single
// toolchain activation: Prepare and SetOptimalArchitecture run at most once,
// in this order. A Driver that failed cannot be used anymore.
type Driver struct {
	config    Config
	compiler  *toolchain.Compiler
	buildOpts buildopts.Store
	modules   modules.Tool
	env       environment.Environment
	log       *slog.Logger
	phase     phase

	tables        FlagTables
	toolchainOpts map[string]bool
}

// An Option customizes a Driver created with New.
type Option func(*Driver)

// WithBuildOptions sets the store the "optarch" build option is read from.
// Defaults to the EASYBUILD_* environment variables.
func WithBuildOptions(store buildopts.Store) Option {
	return func(d *Driver) {
		d.buildOpts = store
	}
}

// WithModules sets the module tool used to load the architecture module.
// Defaults to Lmod, as found in $LMOD_CMD.
func WithModules(tool modules.Tool) Option {
	return func(d *Driver) {
		d.modules = tool
	}
}

// WithEnvironment sets the environment the toolchain variables are exported to.
// Defaults to the process environment.
func WithEnvironment(env environment.Environment) Option {
	return func(d *Driver) {
		d.env = env
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.log = logger
	}
}

// WithFlagTables sets where the flag tables of the underlying compilers are found.
// Defaults to toolchain.LookupFlagTable.
func WithFlagTables(tables FlagTables) Option {
	return func(d *Driver) {
		d.tables = tables
	}
}

// WithToolchainOptions sets the values of toolchain options, for example {"openmp": true}.
func WithToolchainOptions(opts map[string]bool) Option {
	return func(d *Driver) {
		d.toolchainOpts = opts
	}
}

// New creates the compiler driver of the given vendor.
func New(v Vendor, opts ...Option) (*Driver, error) {
	d := &Driver{
		env: environment.Process{},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.buildOpts == nil {
		d.buildOpts = buildopts.FromEnviron(buildopts.EnvPrefix, os.Environ())
	}

	config, err := Specialize(Base(), v, d.tables, toolchain.PrecisionFlags())
	if err != nil {
		return nil, err
	}
	d.config = config

	d.compiler, err = toolchain.NewCompiler(config.Spec(),
		toolchain.WithEnvironment(d.env),
		toolchain.WithLogger(d.log),
	)
	if err != nil {
		return nil, err
	}

	for name, value := range d.toolchainOpts {
		if err := d.compiler.Options().Set(name, value); err != nil {
			return nil, err
		}
	}

	d.log = d.log.With("vendor", v.String())

	return d, nil
}

// Vendor returns the vendor of the driver.
func (d *Driver) Vendor() Vendor { return d.config.Vendor }

// Config returns the configuration the driver was created from.
func (d *Driver) Config() Config { return d.config.clone() }

// Compiler returns the generic compiler the driver extends.
func (d *Driver) Compiler() *toolchain.Compiler { return d.compiler }

// Prepare prepares the environment of the toolchain: it runs the generic compiler
// preparation, then selects dynamic linking through $CRAYPE_LINK_TYPE if the
// "dynamic" or "shared" toolchain option is enabled.
func (d *Driver) Prepare(ctx context.Context) error {
	if err := d.transition(phaseConstructed, "prepare"); err != nil {
		return err
	}

	if err := d.compiler.Prepare(ctx); err != nil {
		d.phase = phaseFailed
		return err
	}

	opts := d.compiler.Options()
	if opts.Enabled("dynamic") || opts.Enabled("shared") {
		d.log.Debug("Enabling building of shared libs/dynamically linked executables via $" + LinkTypeVar)
		if err := d.env.Setenv(LinkTypeVar, "dynamic"); err != nil {
			d.phase = phaseFailed
			return err
		}
	}

	d.phase = phasePrepared

	return nil
}

// SetOptimalArchitecture loads the craype module named after the "optarch" build option.
// The loaded module carries the architecture optimizations, so afterwards the
// "optarch" toolchain option maps to no flag.
func (d *Driver) SetOptimalArchitecture(ctx context.Context) error {
	if err := d.transition(phasePrepared, "set the optimal architecture"); err != nil {
		return err
	}

	if err := d.loadArchitectureModule(ctx); err != nil {
		d.phase = phaseFailed
		return err
	}

	d.compiler.SetFlag(OptarchOption, toolchain.Literal(""))
	d.phase = phaseArchitectureApplied

	return nil
}

func (d *Driver) loadArchitectureModule(ctx context.Context) error {
	optarch, ok := d.buildOpts.Get(OptarchOption)
	if !ok || optarch == "" {
		return toolchain.NewConfigError(toolchain.ErrMissingBuildOption,
			"cpe: don't know which 'craype' module to load, 'optarch' build option is unspecified")
	}

	if d.modules == nil {
		tool, err := modules.NewLmodFromEnv(d.env, d.log)
		if err != nil {
			return err
		}
		d.modules = tool
	}

	name := ArchitectureModuleName(optarch)

	exists, err := d.modules.Exist(ctx, []string{name}, true)
	if err != nil {
		return err
	}

	if len(exists) == 0 || !exists[0] {
		return toolchain.NewConfigError(toolchain.ErrModuleUnavailable,
			"cpe: necessary craype module with name %q is not available (optarch: %q)", name, optarch)
	}

	d.log.Debug("Loading architecture module.", "module", name, "optarch", optarch)

	return d.modules.Load(ctx, []string{name})
}

func (d *Driver) transition(from phase, action string) error {
	if d.phase != from {
		return toolchain.NewConfigError(toolchain.ErrLifecycle, "cpe: cannot %s, driver is %s", action, d.phase)
	}

	return nil
}
