// Package shell runs allow-listed external tools for the compile pipeline.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Wait keeps draining output after the process
// was killed on timeout.
const waitDelay = 2 * time.Second

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	logger  ports.Logger
	tracer  ports.Tracer
	timeout time.Duration
	allowed map[domain.Executable]struct{}
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds every invocation. A zero or negative duration disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithAllowList replaces the set of executables the runner may start.
func WithAllowList(exes ...domain.Executable) Option {
	return func(r *Runner) {
		r.allowed = make(map[domain.Executable]struct{}, len(exes))
		for _, exe := range exes {
			r.allowed[exe] = struct{}{}
		}
	}
}

// NewRunner creates a new Runner. By default it may start the autoprefixer
// and lessc tools and waits at most domain.DefaultProcessTimeout.
func NewRunner(logger ports.Logger, tracer ports.Tracer, opts ...Option) *Runner {
	r := &Runner{
		logger:  logger,
		tracer:  tracer,
		timeout: domain.DefaultProcessTimeout,
	}
	WithAllowList(domain.ExecAutoprefixer, domain.ExecLessc)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts exe with args, waits for it and returns its stdout.
func (r *Runner) Run(ctx context.Context, exe domain.Executable, args []string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "process.run")
	defer span.End()
	span.SetAttribute("executable", exe.String())
	span.SetAttribute("args", args)

	out, err := r.run(ctx, exe, args)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return out, nil
}

func (r *Runner) run(ctx context.Context, exe domain.Executable, args []string) (string, error) {
	if _, ok := r.allowed[exe]; !ok {
		return "", errors.Join(domain.ErrExecution, domain.ErrExecutableNotAllowed,
			zerr.With(zerr.New("refusing to start executable"), "executable", exe.String()))
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	env := resolveEnvironment(os.Environ())
	executable, err := lookPath(exe.String(), env)
	if err != nil {
		return "", executionError(exe, zerr.Wrap(err, "executable not found"), -1, "")
	}

	// Arguments are passed as a vector, never through a shell.
	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // executable is allow-listed
	cmd.Args[0] = exe.String()
	cmd.Env = env
	cmd.WaitDelay = waitDelay
	// A nil Stdin reads from the null device, so the tool sees EOF at once.

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Info("running " + strings.Join(append([]string{exe.String()}, args...), " "))

	if err := cmd.Start(); err != nil {
		return "", executionError(exe, zerr.Wrap(err, "failed to start process"), -1, "")
	}

	// Wait returns after both output buffers are drained.
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return "", errors.Join(domain.ErrProcessTimeout, zerr.With(
			zerr.With(zerr.Wrap(ctxErr, "process did not exit in time"), "executable", exe.String()),
			"timeout", r.timeout.String(),
		))
	}

	exitCode := cmd.ProcessState.ExitCode()
	if stderr.Len() > 0 {
		cause := waitErr
		if cause == nil {
			cause = zerr.New("process wrote to stderr")
		}
		return "", executionError(exe, zerr.Wrap(cause, "process reported an error"), exitCode, stderr.String())
	}
	if waitErr != nil {
		return "", executionError(exe, zerr.Wrap(waitErr, "process failed"), exitCode, "")
	}

	return stdout.String(), nil
}

func executionError(exe domain.Executable, err error, exitCode int, stderr string) error {
	err = zerr.With(err, "executable", exe.String())
	err = zerr.With(err, "exit_code", exitCode)
	if stderr != "" {
		err = zerr.With(err, "stderr", strings.TrimSpace(stderr))
	}
	return errors.Join(domain.ErrExecution, err)
}

// allowListedEnvVars are the system environment variables inherited by the
// tools. The node based tools need their module and cache locations.
var allowListedEnvVars = map[string]struct{}{
	"HOME":         {},
	"PATH":         {},
	"TERM":         {},
	"USER":         {},
	"TMPDIR":       {},
	"LANG":         {},
	"NODE_PATH":    {},
	"BROWSERSLIST": {},
}

func resolveEnvironment(sysEnv []string) []string {
	env := make([]string, 0, len(allowListedEnvVars))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			env = append(env, entry)
		}
	}
	return env
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
