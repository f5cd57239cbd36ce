package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tmaxmax/craype/pkg/buildopts"
	"github.com/tmaxmax/craype/pkg/environment"
	"github.com/tmaxmax/craype/pkg/modules"
	"github.com/tmaxmax/craype/pkg/tcconfig"
	"github.com/tmaxmax/craype/pkg/toolchain/cpe"
)

var reportVars = []string{
	"CC", "CXX", "F77", "F90", "FC",
	"CFLAGS", "CXXFLAGS", "FFLAGS", "F90FLAGS", "FCFLAGS",
	cpe.LinkTypeVar,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalln(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("craype", flag.ContinueOnError)
	flags.SetOutput(stderr)

	toolchainFile := flags.String("toolchain", "", "Path to the toolchain definition file (HCL)")
	vendorName := flags.String("vendor", "", "Cray PE vendor: GNU, Cray, AMD or Intel. Overrides the toolchain file")
	configFile := flags.String("config", "", "Path to the build options file (key = value)")
	optarch := flags.String("optarch", "", "Target architecture, loads the craype-<optarch> module. Overrides the build options")
	dryRun := flags.Bool("dry-run", false, "Do not touch the process environment nor the module system")
	logLevel := flags.String("log-level", "info", "Logging level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	def := &tcconfig.File{}
	if *toolchainFile != "" {
		var err error
		if def, err = tcconfig.Load(*toolchainFile); err != nil {
			return err
		}
	}

	if *vendorName != "" {
		def.Vendor = *vendorName
	}
	if def.Vendor == "" {
		return fmt.Errorf("no vendor specified, use -vendor or a toolchain file")
	}

	vendor, err := cpe.ParseVendor(def.Vendor)
	if err != nil {
		return err
	}

	overrides := buildopts.Map{}
	if def.Optarch != "" {
		overrides[cpe.OptarchOption] = def.Optarch
	}
	if *optarch != "" {
		overrides[cpe.OptarchOption] = *optarch
	}

	store := buildopts.Layered{overrides}
	if *configFile != "" {
		fileOpts, err := buildopts.LoadFile(*configFile)
		if err != nil {
			return err
		}
		store = append(store, fileOpts)
	}
	store = append(store, buildopts.FromEnviron(buildopts.EnvPrefix, os.Environ()))

	var env environment.Environment = environment.Process{}
	opts := []cpe.Option{
		cpe.WithBuildOptions(store),
		cpe.WithToolchainOptions(def.Options),
		cpe.WithLogger(logger),
	}

	if *dryRun {
		env = &environment.Map{}
		tool := modules.NewStatic()
		if target, ok := store.Get(cpe.OptarchOption); ok && target != "" {
			tool.Add(cpe.ArchitectureModuleName(target))
		}
		opts = append(opts, cpe.WithModules(tool))
	}
	opts = append(opts, cpe.WithEnvironment(env))

	driver, err := cpe.New(vendor, opts...)
	if err != nil {
		return err
	}

	if err := driver.Prepare(ctx); err != nil {
		return err
	}

	_, haveOptarch := store.Get(cpe.OptarchOption)
	if haveOptarch || driver.Compiler().Options().Enabled(cpe.OptarchOption) {
		if err := driver.SetOptimalArchitecture(ctx); err != nil {
			return err
		}
	} else {
		logger.Info("No target architecture specified, not loading a craype module.")
	}

	config := driver.Config()
	drivers := driver.Compiler().Drivers()

	fmt.Fprintf(stdout, "Vendor: %s\nCompiler modules: %s\nPrgEnv module: %s\nDrivers: %s %s %s\n\n",
		config.Vendor, strings.Join(config.ModuleNames, " "), config.PrgEnvModule, drivers.CC, drivers.CXX, drivers.FC)

	if haveOptarch {
		target, _ := store.Get(cpe.OptarchOption)
		fmt.Fprintf(stdout, "Architecture module: %s\n\n", cpe.ArchitectureModuleName(target))
	}

	for _, key := range reportVars {
		if value, ok := env.Lookup(key); ok {
			fmt.Fprintf(stdout, "%s=%q\n", key, value)
		}
	}

	return nil
}
