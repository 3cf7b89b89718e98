package scenario

import (
	"context"
	"time"

	"github.com/cristianoliveira/msgstack/internal/animation"
	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

// Sink receives producer requests.
type Sink interface {
	Enqueue(key string, opts banner.Options)
	Dismiss(key string)
	DismissAll()
	// Suspend and Resume pair by name. Resume with an empty name releases the
	// most recent suspension.
	Suspend(name string)
	Resume(name string)
}

// Apply sends st to sink.
func Apply(sink Sink, st Step) {
	switch st.Action {
	case ActionEnqueue:
		sink.Enqueue(st.Key, st.Options())
	case ActionDismiss:
		sink.Dismiss(st.Key)
	case ActionDismissAll:
		sink.DismissAll()
	case ActionSuspend:
		sink.Suspend(st.Key)
	case ActionResume:
		sink.Resume(st.Key)
	}
}

// Play sends every step to sink at its offset from now, in real time. It
// returns ctx.Err() if ctx ends first.
func Play(ctx context.Context, sc *Scenario, sink Sink) error {
	start := time.Now()
	for _, st := range sc.Steps {
		if wait := time.Until(start.Add(st.At)); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		Apply(sink, st)
	}
	return nil
}

// QueueSink applies requests to a queue directly. It must be used from the
// goroutine that owns the queue.
type QueueSink struct {
	rt         *animation.Runtime
	queue      *messages.QueueManager
	enter      time.Duration
	exit       time.Duration
	wrap       func(key string, b *banner.Banner) messages.Handler
	onEnqueued func(key string, b *banner.Banner)
	onError    func(error)

	tokens map[string]int
	order  []string
}

// SinkOption configures a QueueSink.
type SinkOption func(*QueueSink)

// WithDurations sets the enter and exit durations of created banners.
func WithDurations(enter, exit time.Duration) SinkOption {
	return func(s *QueueSink) {
		s.enter, s.exit = enter, exit
	}
}

// WithWrap lets the caller decorate each banner before it is enqueued.
func WithWrap(fn func(key string, b *banner.Banner) messages.Handler) SinkOption {
	return func(s *QueueSink) {
		s.wrap = fn
	}
}

// WithOnEnqueued runs fn for every banner the queue accepted.
func WithOnEnqueued(fn func(key string, b *banner.Banner)) SinkOption {
	return func(s *QueueSink) {
		s.onEnqueued = fn
	}
}

// WithErrorHandler receives enqueue failures.
func WithErrorHandler(fn func(error)) SinkOption {
	return func(s *QueueSink) {
		s.onError = fn
	}
}

// NewQueueSink creates a sink feeding q with banners animated on rt.
func NewQueueSink(rt *animation.Runtime, q *messages.QueueManager, opts ...SinkOption) *QueueSink {
	s := &QueueSink{
		rt:      rt,
		queue:   q,
		onError: func(error) {},
		tokens:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QueueSink) Enqueue(key string, opts banner.Options) {
	if opts.EnterDuration == 0 {
		opts.EnterDuration = s.enter
	}
	if opts.ExitDuration == 0 {
		opts.ExitDuration = s.exit
	}
	b := banner.New(s.rt, opts)
	var h messages.Handler = b
	if s.wrap != nil {
		h = s.wrap(key, b)
	}
	if err := s.queue.Enqueue(h, key); err != nil {
		s.onError(err)
		return
	}
	if s.onEnqueued != nil {
		s.onEnqueued(key, b)
	}
}

func (s *QueueSink) Dismiss(key string) {
	s.queue.Dismiss(key)
}

func (s *QueueSink) DismissAll() {
	s.queue.DismissAll()
}

// Suspend is a no-op if name is already suspended.
func (s *QueueSink) Suspend(name string) {
	if _, ok := s.tokens[name]; ok {
		return
	}
	s.tokens[name] = s.queue.Suspend()
	s.order = append(s.order, name)
}

func (s *QueueSink) Resume(name string) {
	if name == "" {
		if len(s.order) == 0 {
			return
		}
		name = s.order[len(s.order)-1]
	}
	token, ok := s.tokens[name]
	if !ok {
		return
	}
	delete(s.tokens, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.queue.Resume(token)
}

// Suspensions returns the outstanding suspension names, oldest first.
func (s *QueueSink) Suspensions() []string {
	return append([]string(nil), s.order...)
}
