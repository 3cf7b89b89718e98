package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/cristianoliveira/msgstack/internal/config"
	"github.com/cristianoliveira/msgstack/internal/hooks"
	"github.com/cristianoliveira/msgstack/internal/journal"
	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/cristianoliveira/msgstack/internal/messages"
	"github.com/cristianoliveira/msgstack/internal/metrics"
	"github.com/cristianoliveira/msgstack/internal/scenario"
	"github.com/cristianoliveira/msgstack/internal/tui"
)

// HostOptions returns the terminal host options from the configuration.
// stacking forces stacking mode on when the configuration leaves it off.
func HostOptions(stacking bool) tui.Options {
	return tui.Options{
		Stacking:      stacking || config.GetBool("stacking", false),
		EnterDuration: config.GetDuration("enter_duration", 250*time.Millisecond),
		ExitDuration:  config.GetDuration("exit_duration", 200*time.Millisecond),
		BackDelay:     config.GetDuration("back_delay", messages.BackMessageStartDelay),
		StatusTTL:     config.GetDuration("status_ttl", 5*time.Second),
	}
}

// RunHost runs the terminal host until the user quits or ctx ends. Producers
// feed it from their own goroutines.
func (c *Core) RunHost(ctx context.Context, stacking bool, producers ...tui.Producer) error {
	opts := HostOptions(stacking)
	log := logging.With("component", "host")
	opts.Observers = append(opts.Observers, logging.QueueObserver(log))

	if config.GetBool("journal_enabled", true) {
		j, err := journal.Open(c.journalPath(), journal.WithClock(c.now), journal.WithLogger(log))
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		log.Info("journal session started", "session", j.Session())
		opts.Observers = append(opts.Observers, j)
	}

	hookOpts := hooks.OptionsFromConfig()
	hookOutput := newLogWriter(log.With("source", "hook"))
	defer hookOutput.Close()
	hookOpts.Output = hookOutput
	hookOpts.Logger = log
	runner := hooks.NewRunner(hookOpts)
	defer runner.Wait()
	opts.Observers = append(opts.Observers, runner)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var serveErr chan error
	if addr := config.Get("metrics_addr", ""); addr != "" {
		rec := metrics.New(metrics.WithClock(c.now))
		opts.Observers = append(opts.Observers, rec)
		opts.OnSlots = rec.ObserveSlots
		serveErr = make(chan error, 1)
		go func() {
			serveErr <- rec.Serve(ctx, addr)
		}()
	}

	defaultDismiss := config.GetDuration("autodismiss", 0)
	wrapped := make([]tui.Producer, len(producers))
	for i, p := range producers {
		run := p.Run
		wrapped[i] = tui.Producer{
			Name: p.Name,
			Run: func(ctx context.Context, sink scenario.Sink) error {
				return run(ctx, withAutoDismiss(sink, defaultDismiss))
			},
		}
	}

	err := c.run(ctx, tui.NewModel(opts), wrapped...)
	cancel()
	if serveErr != nil {
		if serr := <-serveErr; serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

// autoDismissSink applies the configured auto-dismiss to messages that do
// not set their own.
type autoDismissSink struct {
	scenario.Sink
	after time.Duration
}

func withAutoDismiss(sink scenario.Sink, after time.Duration) scenario.Sink {
	if after <= 0 {
		return sink
	}
	return autoDismissSink{Sink: sink, after: after}
}

func (s autoDismissSink) Enqueue(key string, opts banner.Options) {
	if opts.AutoDismiss == 0 {
		opts.AutoDismiss = s.after
	}
	s.Sink.Enqueue(key, opts)
}

// logWriter turns written output into one log entry per line, so hook
// scripts never write over the terminal host.
type logWriter struct {
	pw   *io.PipeWriter
	done chan struct{}
	once sync.Once
}

func newLogWriter(l logging.Logger) *logWriter {
	pr, pw := io.Pipe()
	w := &logWriter{pw: pw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				l.Info("hook output", "line", line)
			}
		}
		_ = pr.CloseWithError(scanner.Err())
	}()
	return w
}

func (w *logWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

// Close flushes pending lines and stops the writer.
func (w *logWriter) Close() error {
	w.once.Do(func() {
		_ = w.pw.Close()
		<-w.done
	})
	return nil
}
