package animation

import (
	"time"
)

// maxFiresPerAdvance bounds the work done by a single Advance call so that a
// listener which keeps scheduling zero-length work cannot spin forever.
const maxFiresPerAdvance = 10000

// Runtime drives Timed animations and one-shot timers on the caller's goroutine.
// It is not safe for concurrent use; the host advances it from its UI loop.
type Runtime struct {
	now     time.Time
	seq     uint64
	pending []*entry
}

type entry struct {
	at    time.Time
	seq   uint64
	fire  func()
	owner any
}

// NewRuntime creates a runtime whose clock starts at now.
func NewRuntime(now time.Time) *Runtime {
	return &Runtime{now: now}
}

// Now returns the runtime clock.
func (r *Runtime) Now() time.Time {
	return r.now
}

// Pending returns the number of scheduled animations and timers.
func (r *Runtime) Pending() int {
	return len(r.pending)
}

// NextDeadline returns the earliest scheduled time, if any.
func (r *Runtime) NextDeadline() (time.Time, bool) {
	e := r.earliest()
	if e == nil {
		return time.Time{}, false
	}
	return e.at, true
}

// Advance moves the clock to now, firing everything due in chronological order.
// Work scheduled by a firing callback is picked up in the same call if it falls
// due before now.
func (r *Runtime) Advance(now time.Time) {
	for i := 0; i < maxFiresPerAdvance; i++ {
		e := r.earliest()
		if e == nil || e.at.After(now) {
			break
		}
		r.remove(e.owner)
		if e.at.After(r.now) {
			r.now = e.at
		}
		e.fire()
	}
	if now.After(r.now) {
		r.now = now
	}
}

// AdvanceBy moves the clock forward by d.
func (r *Runtime) AdvanceBy(d time.Duration) {
	r.Advance(r.now.Add(d))
}

// AfterFunc schedules fn to run once the clock passes d from now.
func (r *Runtime) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{rt: r}
	r.schedule(t, r.now.Add(d), func() {
		t.fired = true
		fn()
	})
	return t
}

// NewTimed creates an unstarted animation lasting duration.
func (r *Runtime) NewTimed(duration time.Duration) *Timed {
	return &Timed{rt: r, duration: duration}
}

func (r *Runtime) schedule(owner any, at time.Time, fire func()) {
	r.seq++
	r.pending = append(r.pending, &entry{at: at, seq: r.seq, fire: fire, owner: owner})
}

func (r *Runtime) remove(owner any) bool {
	for i, e := range r.pending {
		if e.owner == owner {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Runtime) earliest() *entry {
	var best *entry
	for _, e := range r.pending {
		if best == nil || e.at.Before(best.at) || (e.at.Equal(best.at) && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

// Timer is a one-shot callback scheduled on a Runtime.
type Timer struct {
	rt    *Runtime
	fired bool
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil || t.fired {
		return false
	}
	return t.rt.remove(t)
}

// Timed is a linear animation with an optional start delay.
type Timed struct {
	rt        *Runtime
	delay     time.Duration
	duration  time.Duration
	startedAt time.Time
	started   bool
	done      bool
	listeners listeners
}

// SetStartDelay postpones the animation by d once started.
func (t *Timed) SetStartDelay(d time.Duration) {
	t.delay = d
}

// StartDelay returns the configured start delay.
func (t *Timed) StartDelay() time.Duration {
	return t.delay
}

// Duration returns the animation length excluding the start delay.
func (t *Timed) Duration() time.Duration {
	return t.duration
}

// Start schedules the animation's end on the runtime.
func (t *Timed) Start() {
	if t.started || t.done {
		return
	}
	t.started = true
	t.startedAt = t.rt.now
	t.rt.schedule(t, t.startedAt.Add(t.delay+t.duration), t.end)
}

func (t *Timed) end() {
	t.started = false
	t.done = true
	t.listeners.fire()
}

// Cancel unschedules the animation. End listeners do not fire.
func (t *Timed) Cancel() {
	if t.done {
		return
	}
	t.rt.remove(t)
	t.started = false
	t.done = true
}

// IsStarted reports whether the animation is running, including its delay.
func (t *Timed) IsStarted() bool {
	return t.started
}

// Done reports whether the animation ended or was canceled.
func (t *Timed) Done() bool {
	return t.done
}

// Progress returns the completed fraction in [0, 1].
func (t *Timed) Progress() float64 {
	if t.done {
		return 1
	}
	if !t.started {
		return 0
	}
	elapsed := t.rt.now.Sub(t.startedAt) - t.delay
	if elapsed <= 0 {
		return 0
	}
	if t.duration <= 0 || elapsed >= t.duration {
		return 1
	}
	return float64(elapsed) / float64(t.duration)
}

// AddEndListener registers fn to run when the animation ends.
func (t *Timed) AddEndListener(fn func()) {
	t.listeners.add(fn)
}

// RemoveAllListeners drops every end listener.
func (t *Timed) RemoveAllListeners() {
	t.listeners.clear()
}
