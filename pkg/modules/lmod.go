package modules

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/gvallee/go_util/pkg/util"
	"golang.org/x/sync/errgroup"

	"github.com/tmaxmax/craype/pkg/environment"
)

// LmodCmdVar is the environment variable Lmod sets to the path of its main command.
const LmodCmdVar = "LMOD_CMD"

var execCommandContext = exec.CommandContext

var (
	setenvLine   = regexp.MustCompile(`^os\.environ\['([^']+)'\]\s*=\s*'(.*)';?$`)
	unsetenvLine = regexp.MustCompile(`^(?:del os\.environ\['([^']+)'\]|os\.environ\.pop\('([^']+)'(?:,\s*None)?\));?$`)
)

// Lmod is a module tool backed by the Lmod command. Environment changes made
// by loaded modules are applied to its environment.
type Lmod struct {
	cmd string
	env environment.Environment
	log *slog.Logger
}

var _ Tool = (*Lmod)(nil)

// NewLmod creates an Lmod module tool that runs the given Lmod command.
func NewLmod(cmd string, env environment.Environment, logger *slog.Logger) (*Lmod, error) {
	if cmd == "" {
		return nil, fmt.Errorf("modules: $%s is not defined, is Lmod installed?", LmodCmdVar)
	}

	if !util.PathExists(cmd) {
		return nil, fmt.Errorf("modules: Lmod command %s does not exist", cmd)
	}

	if env == nil {
		env = environment.Process{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Lmod{cmd: cmd, env: env, log: logger}, nil
}

// NewLmodFromEnv creates an Lmod module tool using the command found in $LMOD_CMD.
func NewLmodFromEnv(env environment.Environment, logger *slog.Logger) (*Lmod, error) {
	if env == nil {
		env = environment.Process{}
	}

	cmd, _ := env.Lookup(LmodCmdVar)
	return NewLmod(cmd, env, logger)
}

func (l *Lmod) run(ctx context.Context, args ...string) (stdout, stderr []byte, err error) {
	var outBuf, errBuf bytes.Buffer

	cmd := execCommandContext(ctx, l.cmd, append([]string{"python"}, args...)...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err = cmd.Run()
	l.log.Debug("Ran module command.",
		"args", strings.Join(args, " "),
		"duration", units.HumanDuration(time.Since(start)),
		"error", err,
	)

	return outBuf.Bytes(), errBuf.Bytes(), err
}

func (l *Lmod) Exist(ctx context.Context, names []string, skipAvail bool) ([]bool, error) {
	if skipAvail {
		return l.show(ctx, names)
	}

	_, stderr, err := l.run(ctx, "--terse", "avail")
	if err != nil {
		return nil, fmt.Errorf("modules: failed to list available modules: %w - stderr: %s", err, stderr)
	}

	avail := parseAvail(stderr)
	exists := make([]bool, len(names))
	for i, name := range names {
		exists[i] = avail.has(name)
	}

	return exists, nil
}

// show checks every module individually, concurrently.
func (l *Lmod) show(ctx context.Context, names []string) ([]bool, error) {
	exists := make([]bool, len(names))
	g, gctx := errgroup.WithContext(ctx)

	for i := range names {
		i := i

		g.Go(func() error {
			_, stderr, err := l.run(gctx, "show", names[i])
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}

			var exitErr *exec.ExitError
			switch {
			case err == nil:
				exists[i] = true
			case errors.As(err, &exitErr):
				l.log.Debug("Module not found.", "module", names[i], "stderr", string(bytes.TrimSpace(stderr)))
			default:
				return fmt.Errorf("modules: failed to check module %s: %w", names[i], err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return exists, nil
}

func (l *Lmod) Load(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	stdout, stderr, err := l.run(ctx, append([]string{"load"}, names...)...)
	if err != nil {
		return fmt.Errorf("modules: failed to load %s: %w - stderr: %s", strings.Join(names, " "), err, stderr)
	}

	changes, err := parseEnvChanges(stdout)
	if err != nil {
		return fmt.Errorf("modules: failed to load %s: %w", strings.Join(names, " "), err)
	}

	for _, c := range changes {
		if c.unset {
			err = l.env.Unsetenv(c.key)
		} else {
			err = l.env.Setenv(c.key, c.value)
		}
		if err != nil {
			return err
		}
	}

	l.log.Debug("Loaded modules.", "modules", names, "changes", len(changes))

	return nil
}

type envChange struct {
	key   string
	value string
	unset bool
}

// parseEnvChanges reads the Python statements Lmod prints to change the environment.
func parseEnvChanges(out []byte) ([]envChange, error) {
	var changes []envChange

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := setenvLine.FindStringSubmatch(line); m != nil {
			changes = append(changes, envChange{key: m[1], value: strings.ReplaceAll(m[2], `\'`, `'`)})
			continue
		}

		if m := unsetenvLine.FindStringSubmatch(line); m != nil {
			key := m[1]
			if key == "" {
				key = m[2]
			}
			changes = append(changes, envChange{key: key, unset: true})
			continue
		}

		if line == "false" {
			return nil, fmt.Errorf("module command reported an error")
		}
	}

	return changes, scanner.Err()
}

type availModules map[string]bool

func (a availModules) has(name string) bool {
	return a[name]
}

// parseAvail reads the terse listing of available modules. Both "name" and
// "name/version" match a module listed as "name/version".
func parseAvail(out []byte) availModules {
	avail := availModules{}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}

		line = strings.TrimSuffix(line, "(default)")
		line = strings.TrimSuffix(line, "/")
		avail[line] = true
		if i := strings.IndexByte(line, '/'); i > 0 {
			avail[line[:i]] = true
		}
	}

	return avail
}
