package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/msgstack/internal/animation"
	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

// maxSettleRounds bounds the deadlines processed after the last step.
const maxSettleRounds = 1000

var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ReplayOptions tunes a headless replay. Zero durations use the banner and
// coordinator defaults.
type ReplayOptions struct {
	Stacking      bool
	EnterDuration time.Duration
	ExitDuration  time.Duration
	BackDelay     time.Duration
}

// Entry is one transcript line.
type Entry struct {
	At   time.Duration
	Text string
}

func (e Entry) String() string {
	return fmt.Sprintf("%9s  %s", formatOffset(e.At), e.Text)
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("+%.3fs", d.Seconds())
}

// Transcript is the ordered record of a replay.
type Transcript []Entry

func (t Transcript) String() string {
	var b strings.Builder
	for _, e := range t {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Texts returns the entry texts without timestamps.
func (t Transcript) Texts() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Text
	}
	return out
}

type recorder struct {
	rt      *animation.Runtime
	entries Transcript
	slots   string
}

func (r *recorder) log(format string, args ...any) {
	r.entries = append(r.entries, Entry{At: r.rt.Now().Sub(replayEpoch), Text: fmt.Sprintf(format, args...)})
}

// Replay runs sc against a queue on a manual clock and records every handler
// call, container callback, animation set and displayed snapshot. Timers left
// after the last step are run to completion.
func Replay(sc *Scenario, opts ReplayOptions) Transcript {
	rt := animation.NewRuntime(replayEpoch)
	rec := &recorder{rt: rt, slots: formatSlots(messages.Slots{})}

	coord := messages.NewAnimationCoordinator(nil, func(a animation.Animation) {
		n := 1
		if set, ok := a.(*animation.Set); ok {
			n = set.Len()
		}
		rec.log("start animation set (%d)", n)
		a.Start()
	})
	if opts.BackDelay > 0 {
		coord.SetBackMessageDelay(opts.BackDelay)
	}
	q := messages.NewQueueManager(coord, messages.WithStacking(opts.Stacking || sc.Stacking))
	q.AddObserver(banner.NewAutoDismisser(rt, q))
	q.AddObserver(messages.ObserverFunc(func(ev messages.Event) {
		rec.log("event %s %s", ev.Type, ev.Key)
		if s := formatSlots(q.Displayed()); s != rec.slots {
			rec.slots = s
			rec.log("slots %s", s)
		}
	}))
	q.SetDelegate(recordingDelegate{rec: rec})

	sink := NewQueueSink(rt, q,
		WithDurations(opts.EnterDuration, opts.ExitDuration),
		WithWrap(func(key string, b *banner.Banner) messages.Handler {
			return &recordedBanner{Banner: b, key: key, rec: rec}
		}),
		WithErrorHandler(func(err error) { rec.log("error %v", err) }),
	)

	for _, st := range sc.Steps {
		rt.Advance(replayEpoch.Add(st.At))
		rec.log("step %s", describeStep(st))
		Apply(sink, st)
	}
	for i := 0; i < maxSettleRounds; i++ {
		next, ok := rt.NextDeadline()
		if !ok {
			break
		}
		rt.Advance(next)
	}
	return rec.entries
}

func describeStep(st Step) string {
	switch st.Action {
	case ActionEnqueue:
		return fmt.Sprintf("enqueue %s %q", st.Key, st.Title)
	case ActionDismissAll:
		return string(st.Action)
	default:
		if st.Key == "" {
			return string(st.Action)
		}
		return fmt.Sprintf("%s %s", st.Action, st.Key)
	}
}

func formatSlots(s messages.Slots) string {
	name := func(m *messages.Message) string {
		if m == nil {
			return "-"
		}
		return m.Key
	}
	return fmt.Sprintf("[front=%s back=%s]", name(s.Front), name(s.Back))
}

type recordingDelegate struct {
	rec *recorder
}

func (d recordingDelegate) OnStartShowing(next func()) {
	d.rec.log("container start showing")
	next()
}

func (d recordingDelegate) OnFinishHiding() {
	d.rec.log("container finish hiding")
}

// recordedBanner logs the queue's calls before forwarding them.
type recordedBanner struct {
	*banner.Banner
	key string
	rec *recorder
}

func (b *recordedBanner) Show(from, to messages.Position) animation.Animation {
	b.rec.log("show %s %s->%s", b.key, from, to)
	return b.Banner.Show(from, to)
}

func (b *recordedBanner) Hide(from, to messages.Position, animate bool) animation.Animation {
	b.rec.log("hide %s %s->%s animate=%t", b.key, from, to, animate)
	return b.Banner.Hide(from, to, animate)
}

func (b *recordedBanner) Dismiss() {
	b.rec.log("dismiss %s", b.key)
	b.Banner.Dismiss()
}
