package messages

import "github.com/cristianoliveira/msgstack/internal/animation"

//go:generate mockgen -source=delegate.go -destination=mock_delegate_test.go -package=messages

// Delegate lets the hosting container prepare for the first banner and react
// when the last one is gone.
type Delegate interface {
	// OnStartShowing is called before anything becomes visible. The container
	// calls next once it is ready; it may do so synchronously.
	OnStartShowing(next func())
	// OnFinishHiding is called after every message has been hidden.
	OnFinishHiding()
}

// LayoutWaiter is the layout-ready barrier of the hosting container.
type LayoutWaiter interface {
	// RunAfterInitialMessageLayout runs fn once the container has completed its
	// first layout pass, immediately if that already happened.
	RunAfterInitialMessageLayout(fn func())
}

// AnimationStarter receives a fully assembled animation ready to be played.
// The host is responsible for starting it.
type AnimationStarter func(a animation.Animation)

// LayoutWaiterFunc adapts a function to LayoutWaiter.
type LayoutWaiterFunc func(fn func())

// RunAfterInitialMessageLayout calls f(fn).
func (f LayoutWaiterFunc) RunAfterInitialMessageLayout(fn func()) {
	f(fn)
}
