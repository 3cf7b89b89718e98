package messages

import (
	"time"

	"github.com/cristianoliveira/msgstack/internal/animation"
)

// BackMessageStartDelay postpones the back message's entrance so that it does
// not overtake the front message's own enter animation.
const BackMessageStartDelay = 600 * time.Millisecond

// AnimationCoordinator reconciles what is displayed with what the queue wants
// displayed and issues the show/hide requests that get there.
//
// At most one animation set is active at a time. While it plays, reconcile
// calls are dropped unless the caller is suspended, in which case the running
// set is canceled and state settles immediately.
type AnimationCoordinator struct {
	layout    LayoutWaiter
	start     AnimationStarter
	delegate  Delegate
	backDelay time.Duration

	set       *animation.Set
	slots     Slots
	lastShown *Message

	onSlotsChanged func(prev, next Slots)
}

// NewAnimationCoordinator creates a coordinator bound to its container's
// layout barrier and animation sink. A nil starter starts animations directly.
func NewAnimationCoordinator(layout LayoutWaiter, start AnimationStarter) *AnimationCoordinator {
	if layout == nil {
		layout = LayoutWaiterFunc(func(fn func()) { fn() })
	}
	if start == nil {
		start = func(a animation.Animation) { a.Start() }
	}
	return &AnimationCoordinator{
		layout:    layout,
		start:     start,
		delegate:  nopDelegate{},
		backDelay: BackMessageStartDelay,
		set:       animation.Together(),
	}
}

// SetDelegate attaches the container delegate. Nil restores a delegate that
// proceeds immediately and ignores hide notifications.
func (c *AnimationCoordinator) SetDelegate(d Delegate) {
	if d == nil {
		d = nopDelegate{}
	}
	c.delegate = d
}

// SetBackMessageDelay overrides BackMessageStartDelay.
func (c *AnimationCoordinator) SetBackMessageDelay(d time.Duration) {
	c.backDelay = d
}

// OnSlotsChanged registers fn to observe every change of the displayed snapshot.
func (c *AnimationCoordinator) OnSlotsChanged(fn func(prev, next Slots)) {
	c.onSlotsChanged = fn
}

// Displayed returns the recorded displayed-slot snapshot.
func (c *AnimationCoordinator) Displayed() Slots {
	return c.slots
}

// Animating reports whether an animation set is in flight.
func (c *AnimationCoordinator) Animating() bool {
	return c.set != nil && c.set.IsStarted()
}

// UpdateWithoutStacking shows at most one message at a time. A displayed
// message is hidden before anything else can take its place.
//
// A show calls onFinished once when it is committed, and again as reevaluate
// when the show animation ends, so requests dropped while it played are
// retried. A hide calls onFinished once after it settles.
func (c *AnimationCoordinator) UpdateWithoutStacking(candidate *Message, suspended bool, onFinished func()) {
	onFinished = orNop(onFinished)
	current := c.slots.Front
	if current == candidate {
		return
	}
	if !suspended && c.Animating() {
		return
	}

	if current == nil {
		c.setSlots(Slots{Front: candidate})
		c.delegate.OnStartShowing(func() {
			shown := c.slots.Front
			if shown == nil {
				return
			}
			c.lastShown = shown
			anim := shown.Handler.Show(Invisible, Front)
			c.layout.RunAfterInitialMessageLayout(func() {
				if c.slots.Front != shown {
					return
				}
				reevaluate := onFinished
				c.play(reevaluate, anim)
			})
			onFinished()
		})
		return
	}

	finalize := func() {
		c.delegate.OnFinishHiding()
		c.lastShown = nil
		c.setSlots(Slots{})
		onFinished()
	}
	// The container never got to show the current message.
	if c.lastShown != current {
		finalize()
		return
	}
	c.resetSet()
	c.play(finalize, current.Handler.Hide(Front, Invisible, !suspended))
}

// UpdateWithStacking moves the displayed [front, back] pair towards candidates.
//
// No more than two handlers are driven per round. Transitions that would need
// a third are staged: the recorded snapshot holds the intermediate state and
// onFinished lets the caller run a follow-up round once the animations end.
func (c *AnimationCoordinator) UpdateWithStacking(candidates Slots, suspended bool, onFinished func()) {
	onFinished = orNop(onFinished)
	if !suspended && c.Animating() {
		return
	}
	cf, cb := c.slots.Front, c.slots.Back
	nf, nb := candidates.Front, candidates.Back
	if cf == nf && cb == nb {
		return
	}
	if !c.slots.valid() || !candidates.valid() {
		panic("messages: back slot populated without a front message")
	}
	c.resetSet()

	if cf == nil {
		c.showStacked(nf, nb, onFinished)
		return
	}

	var front, back animation.Animation
	switch {
	case cf != nf && cf != nb:
		front = cf.Handler.Hide(Front, Invisible, !suspended)
		switch {
		case cb != nil && cb == nf:
			back = cb.Handler.Show(Back, Front)
			nb = nil
		case cb != nil:
			back = cb.Handler.Hide(Back, Front, !suspended)
			nf, nb = nil, nil
		default:
			nf, nb = nil, nil
		}
	case cf == nf:
		if cb != nil {
			back = cb.Handler.Hide(Back, Front, !suspended)
			nb = nil
		} else {
			back = nb.Handler.Show(Front, Back)
		}
	default: // cf == nb
		if cb != nil {
			back = cb.Handler.Hide(Back, Front, !suspended)
			nf, nb = cf, nil
		} else {
			back = cf.Handler.Show(Front, Back)
			front = nf.Handler.Show(Invisible, Front)
		}
	}

	fullyHidden := nf == nil
	c.setSlots(Slots{Front: nf, Back: nb})
	c.play(func() {
		if fullyHidden {
			c.delegate.OnFinishHiding()
		}
		onFinished()
	}, front, back)
}

// showStacked handles the transition from an empty screen.
func (c *AnimationCoordinator) showStacked(nf, nb *Message, onFinished func()) {
	target := Slots{Front: nf, Back: nb}
	c.setSlots(target)
	c.delegate.OnStartShowing(func() {
		if c.slots != target {
			return
		}
		c.lastShown = nf
		front := nf.Handler.Show(Invisible, Front)
		var back animation.Animation
		if nb != nil {
			back = nb.Handler.Show(Front, Back)
			if d, ok := back.(animation.Delayable); ok {
				d.SetStartDelay(c.backDelay)
			}
		}
		c.layout.RunAfterInitialMessageLayout(func() {
			if c.slots != target {
				return
			}
			c.play(onFinished, front, back)
		})
	})
}

// play replaces the active set with one made of anims. onEnd runs when the set
// ends, or right away when there is nothing to animate.
func (c *AnimationCoordinator) play(onEnd func(), anims ...animation.Animation) {
	c.resetSet()
	set := animation.Together(anims...)
	c.set = set
	if set.Len() == 0 {
		onEnd()
		return
	}
	set.AddEndListener(onEnd)
	c.start(set)
}

func (c *AnimationCoordinator) resetSet() {
	if c.set == nil {
		return
	}
	c.set.RemoveAllListeners()
	c.set.Cancel()
}

func (c *AnimationCoordinator) setSlots(next Slots) {
	prev := c.slots
	c.slots = next
	if prev != next && c.onSlotsChanged != nil {
		c.onSlotsChanged(prev, next)
	}
}

type nopDelegate struct{}

func (nopDelegate) OnStartShowing(next func()) { next() }
func (nopDelegate) OnFinishHiding()            {}

func orNop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
