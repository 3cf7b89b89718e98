// Package hooks runs user scripts when messages move through the queue.
//
// Scripts live in {hooks_dir}/{hook-point}/ and run in name order when they
// are executable. Each receives the message details through the environment.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cristianoliveira/msgstack/internal/config"
	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

// Point names a hook directory.
type Point string

const (
	PointEnqueued  Point = "message-enqueued"
	PointShown     Point = "message-shown"
	PointDismissed Point = "message-dismissed"
)

// Points lists every hook point.
func Points() []Point {
	return []Point{PointEnqueued, PointShown, PointDismissed}
}

// FailureMode decides what a failing synchronous script does to the rest.
type FailureMode string

const (
	// FailureAbort stops the remaining scripts of the hook point.
	FailureAbort FailureMode = "abort"
	// FailureWarn reports the failure and continues.
	FailureWarn FailureMode = "warn"
	// FailureIgnore continues silently.
	FailureIgnore FailureMode = "ignore"
)

// ErrHookFailed wraps script failures returned in abort mode.
var ErrHookFailed = errors.New("hook failed")

// Options configures a Runner.
type Options struct {
	Dir          string
	Enabled      bool
	Disabled     map[Point]bool
	FailureMode  FailureMode
	Async        bool
	AsyncTimeout time.Duration
	MaxAsync     int
	// Output receives script output. Nil means os.Stderr.
	Output io.Writer
	Logger logging.Logger
}

// OptionsFromConfig reads the hooks_* keys of the global configuration.
func OptionsFromConfig() Options {
	opts := Options{
		Dir:          config.Get("hooks_dir", ""),
		Enabled:      config.GetBool("hooks_enabled", true),
		Disabled:     make(map[Point]bool),
		FailureMode:  FailureMode(config.Get("hooks_failure_mode", string(FailureWarn))),
		Async:        config.GetBool("hooks_async", false),
		AsyncTimeout: time.Duration(config.GetInt("hooks_async_timeout", 30)) * time.Second,
		MaxAsync:     config.GetInt("max_hooks", 10),
	}
	for _, p := range Points() {
		if !config.GetBool(enabledKey(p), true) {
			opts.Disabled[p] = true
		}
	}
	return opts
}

// enabledKey maps message-shown to hooks_enabled_message_shown.
func enabledKey(p Point) string {
	b := []byte(p)
	for i, c := range b {
		if c == '-' {
			b[i] = '_'
		}
	}
	return "hooks_enabled_" + string(b)
}

// Runner executes hook scripts.
type Runner struct {
	opts Options

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// NewRunner creates a Runner, filling unset options with defaults.
func NewRunner(opts Options) *Runner {
	if opts.FailureMode == "" {
		opts.FailureMode = FailureWarn
	}
	if opts.AsyncTimeout <= 0 {
		opts.AsyncTimeout = 30 * time.Second
	}
	if opts.MaxAsync <= 0 {
		opts.MaxAsync = 10
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Runner{opts: opts}
}

// EnsureDirs creates the hooks directory and one subdirectory per point.
func (r *Runner) EnsureDirs() error {
	for _, p := range Points() {
		dir := filepath.Join(r.opts.Dir, string(p))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create hooks directory %s: %w", dir, err)
		}
	}
	return nil
}

// Scripts returns the executable scripts of point, sorted by name.
func (r *Runner) Scripts(point Point) ([]string, error) {
	dir := filepath.Join(r.opts.Dir, string(point))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hooks directory %s: %w", dir, err)
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, e.Name()))
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Run executes the scripts of point with env added to the process
// environment. Only abort mode returns script failures.
func (r *Runner) Run(ctx context.Context, point Point, env map[string]string) error {
	if !r.opts.Enabled || r.opts.Disabled[point] {
		return nil
	}
	scripts, err := r.Scripts(point)
	if err != nil || len(scripts) == 0 {
		return err
	}

	environ := r.environ(point, env)
	r.opts.Logger.Debug("running hooks", "point", string(point), "scripts", len(scripts))
	for _, script := range scripts {
		if r.opts.Async {
			r.startAsync(script, environ)
			continue
		}
		if err := r.runSync(ctx, script, environ); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) environ(point Point, env map[string]string) []string {
	environ := os.Environ()
	environ = append(environ,
		"HOOK_POINT="+string(point),
		"HOOK_TIMESTAMP="+time.Now().UTC().Format(time.RFC3339),
		config.EnvPrefix+"HOOKS_FAILURE_MODE="+string(r.opts.FailureMode),
	)
	if exe, err := os.Executable(); err == nil {
		environ = append(environ, config.EnvPrefix+"BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}
	return environ
}

func (r *Runner) runSync(ctx context.Context, script string, environ []string) error {
	name := filepath.Base(script)
	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		_, _ = r.opts.Output.Write(output)
	}
	if err == nil {
		r.opts.Logger.Debug("hook completed", "script", name, "duration", time.Since(start).String())
		return nil
	}

	switch r.opts.FailureMode {
	case FailureAbort:
		return fmt.Errorf("%w: %s: %v", ErrHookFailed, name, err)
	case FailureWarn:
		fmt.Fprintf(r.opts.Output, "warning: hook %s failed: %v\n", name, err)
		r.opts.Logger.Warn("hook failed", "script", name, "error", err)
	}
	return nil
}

func (r *Runner) startAsync(script string, environ []string) {
	name := filepath.Base(script)
	r.mu.Lock()
	if r.pending >= r.opts.MaxAsync {
		r.mu.Unlock()
		r.opts.Logger.Warn("too many async hooks pending, skipping", "script", name, "max", r.opts.MaxAsync)
		return
	}
	r.pending++
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.pending--
			r.mu.Unlock()
			r.wg.Done()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.opts.AsyncTimeout)
		defer cancel()
		cmd := exec.CommandContext(ctx, script)
		cmd.Env = environ
		cmd.Stdout = r.opts.Output
		cmd.Stderr = r.opts.Output
		start := time.Now()
		err := cmd.Run()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			r.opts.Logger.Warn("async hook timed out", "script", name, "timeout", r.opts.AsyncTimeout.String())
			return
		}
		if err != nil {
			if r.opts.FailureMode != FailureIgnore {
				r.opts.Logger.Warn("async hook failed", "script", name, "error", err)
			}
			return
		}
		r.opts.Logger.Debug("async hook completed", "script", name, "duration", time.Since(start).String())
	}()
}

// Pending returns the number of async scripts still running.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Wait blocks until every async script has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// OnMessageEvent runs the hook point matching ev. Hidden events have no hook
// point. Failures are logged; they never reach the queue.
func (r *Runner) OnMessageEvent(ev messages.Event) {
	var point Point
	switch ev.Type {
	case messages.EventEnqueued:
		point = PointEnqueued
	case messages.EventShown:
		point = PointShown
	case messages.EventDismissed:
		point = PointDismissed
	default:
		return
	}
	if err := r.Run(context.Background(), point, EventEnv(ev)); err != nil {
		r.opts.Logger.Error("hook aborted", "point", string(point), "key", ev.Key, "error", err)
	}
}

// EventEnv builds the script environment describing ev.
func EventEnv(ev messages.Event) map[string]string {
	title, severity := messages.Describe(ev)
	return map[string]string{
		config.EnvPrefix + "MESSAGE_KEY":      ev.Key,
		config.EnvPrefix + "MESSAGE_TITLE":    title,
		config.EnvPrefix + "MESSAGE_LEVEL":    severity,
		config.EnvPrefix + "MESSAGE_POSITION": ev.Position.String(),
		config.EnvPrefix + "MESSAGE_EVENT":    string(ev.Type),
	}
}
