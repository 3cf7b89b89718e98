package banner

import (
	"time"

	"github.com/cristianoliveira/msgstack/internal/animation"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

// Dismisser removes a message by key.
type Dismisser interface {
	Dismiss(key string)
}

// AutoDismisser dismisses banners a fixed time after they were first shown.
// Register it as a queue observer.
type AutoDismisser struct {
	rt     *animation.Runtime
	target Dismisser
	timers map[string]*animation.Timer
}

// NewAutoDismisser creates an AutoDismisser scheduling on rt.
func NewAutoDismisser(rt *animation.Runtime, target Dismisser) *AutoDismisser {
	return &AutoDismisser{rt: rt, target: target, timers: make(map[string]*animation.Timer)}
}

// Pending returns the number of scheduled dismissals.
func (a *AutoDismisser) Pending() int {
	return len(a.timers)
}

// OnMessageEvent schedules on the first shown event and cancels on dismissal.
func (a *AutoDismisser) OnMessageEvent(ev messages.Event) {
	switch ev.Type {
	case messages.EventShown:
		b, ok := ev.Handler.(interface{ AutoDismiss() time.Duration })
		if !ok || b.AutoDismiss() <= 0 {
			return
		}
		if _, scheduled := a.timers[ev.Key]; scheduled {
			return
		}
		key := ev.Key
		a.timers[key] = a.rt.AfterFunc(b.AutoDismiss(), func() {
			delete(a.timers, key)
			a.target.Dismiss(key)
		})
	case messages.EventDismissed:
		if t, ok := a.timers[ev.Key]; ok {
			t.Stop()
			delete(a.timers, ev.Key)
		}
	}
}
