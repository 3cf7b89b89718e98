// Package metrics exposes queue activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/cristianoliveira/msgstack/internal/messages"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "msgstack"

// Recorder collects queue metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	now      func() time.Time

	events    map[messages.EventType]*prometheus.CounterVec
	length    prometheus.Gauge
	displayed *prometheus.GaugeVec
	onScreen  prometheus.Histogram

	shownAt map[string]time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock replaces time.Now for display-time measurements.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// New creates a Recorder with a private registry.
func New(opts ...Option) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	r := &Recorder{
		registry: reg,
		now:      time.Now,
		events:   make(map[messages.EventType]*prometheus.CounterVec),
		length: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "length",
			Help:      "Messages enqueued and not yet dismissed.",
		}),
		displayed: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "displayed",
			Help:      "Messages currently shown, by position.",
		}, []string{"position"}),
		onScreen: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "display_seconds",
			Help:      "Time from a message first being shown until it is dismissed.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		shownAt: make(map[string]time.Time),
	}
	for _, ev := range []messages.EventType{
		messages.EventEnqueued, messages.EventShown, messages.EventHidden, messages.EventDismissed,
	} {
		r.events[ev] = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      string(ev) + "_total",
			Help:      fmt.Sprintf("Messages %s, by level.", ev),
		}, []string{"level"})
	}
	for _, p := range []messages.Position{messages.Front, messages.Back} {
		r.displayed.WithLabelValues(p.String()).Set(0)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// OnMessageEvent updates the metrics for ev.
func (r *Recorder) OnMessageEvent(ev messages.Event) {
	_, level := messages.Describe(ev)
	if c, ok := r.events[ev.Type]; ok {
		c.WithLabelValues(level).Inc()
	}

	switch ev.Type {
	case messages.EventEnqueued:
		r.length.Inc()
	case messages.EventShown:
		if _, ok := r.shownAt[ev.Key]; !ok {
			r.shownAt[ev.Key] = r.now()
		}
	case messages.EventDismissed:
		r.length.Dec()
		if at, ok := r.shownAt[ev.Key]; ok {
			r.onScreen.Observe(r.now().Sub(at).Seconds())
			delete(r.shownAt, ev.Key)
		}
	}
}

// ObserveSlots records the displayed snapshot.
func (r *Recorder) ObserveSlots(s messages.Slots) {
	r.displayed.WithLabelValues(messages.Front.String()).Set(occupied(s.Front))
	r.displayed.WithLabelValues(messages.Back.String()).Set(occupied(s.Back))
}

func occupied(m *messages.Message) float64 {
	if m == nil {
		return 0
	}
	return 1
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	return r.serve(ctx, ln)
}

func (r *Recorder) serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info("metrics endpoint listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
