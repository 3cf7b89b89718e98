// Package animation provides the animation handles exchanged between the
// message coordinator and the handlers it drives, plus a single-threaded
// runtime that advances them.
package animation

import "time"

// Animation is an opaque handle for a running or pending visual transition.
type Animation interface {
	// Start begins the animation. Starting an already started animation is a no-op.
	Start()
	// Cancel stops the animation without firing end listeners.
	Cancel()
	// IsStarted reports whether the animation was started and has not yet ended or been canceled.
	IsStarted() bool
	// AddEndListener registers fn to run once when the animation ends.
	AddEndListener(fn func())
	// RemoveAllListeners drops every registered end listener.
	RemoveAllListeners()
}

// Delayable is implemented by animations whose start can be postponed.
type Delayable interface {
	SetStartDelay(d time.Duration)
}

// listeners is the end-listener bookkeeping shared by the concrete animations.
type listeners struct {
	fns []func()
}

func (l *listeners) add(fn func()) {
	if fn == nil {
		return
	}
	l.fns = append(l.fns, fn)
}

func (l *listeners) clear() {
	l.fns = nil
}

// fire runs listeners in registration order. The list is detached first so a
// listener that registers new listeners does not see them fire in this pass.
func (l *listeners) fire() {
	fns := l.fns
	l.fns = nil
	for _, fn := range fns {
		fn()
	}
}
