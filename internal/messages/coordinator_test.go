package messages

import (
	"testing"
	"time"

	"github.com/cristianoliveira/msgstack/internal/animation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var epoch = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

type coordinatorHarness struct {
	ctrl        *gomock.Controller
	delegate    *MockDelegate
	rt          *animation.Runtime
	coordinator *AnimationCoordinator
	started     []animation.Animation
	autoStart   bool
}

func newCoordinatorHarness(t *testing.T) *coordinatorHarness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &coordinatorHarness{
		ctrl:     ctrl,
		delegate: NewMockDelegate(ctrl),
		rt:       animation.NewRuntime(epoch),
	}
	h.coordinator = NewAnimationCoordinator(nil, func(a animation.Animation) {
		h.started = append(h.started, a)
		if h.autoStart {
			a.Start()
		}
	})
	h.coordinator.SetDelegate(h.delegate)
	return h
}

func (h *coordinatorHarness) showImmediately() {
	h.delegate.EXPECT().OnStartShowing(gomock.Any()).Do(func(next func()) { next() }).AnyTimes()
}

func (h *coordinatorHarness) message(key string) (*Message, *MockHandler) {
	handler := NewMockHandler(h.ctrl)
	return &Message{Key: key, Handler: handler}, handler
}

// stack puts [front, back] on screen with instant animations.
func (h *coordinatorHarness) stack(front *Message, fh *MockHandler, back *Message, bh *MockHandler) {
	fh.EXPECT().Show(Invisible, Front).Return(nil)
	if back != nil {
		bh.EXPECT().Show(Front, Back).Return(nil)
	}
	h.coordinator.UpdateWithStacking(Slots{Front: front, Back: back}, false, nil)
}

func counter() (*int, func()) {
	n := 0
	return &n, func() { n++ }
}

func TestWithoutStackingShowsCandidate(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")

	anim := h.rt.NewTimed(200 * time.Millisecond)
	h1.EXPECT().Show(Invisible, Front).Return(anim)

	finished, onFinished := counter()
	h.coordinator.UpdateWithoutStacking(m1, false, onFinished)

	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())
	assert.Equal(t, 1, *finished)
	require.Len(t, h.started, 1)
	set := h.started[0].(*animation.Set)
	assert.Equal(t, []animation.Animation{anim}, set.Members())
}

func TestWithoutStackingShowReevaluatesWhenAnimationEnds(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.autoStart = true
	h.showImmediately()
	m1, h1 := h.message("m1")
	h1.EXPECT().Show(Invisible, Front).Return(h.rt.NewTimed(200 * time.Millisecond))

	finished, onFinished := counter()
	h.coordinator.UpdateWithoutStacking(m1, false, onFinished)
	assert.Equal(t, 1, *finished, "committed show")

	h.rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 1, *finished)

	h.rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 2, *finished, "re-evaluation after the show animation")
	assert.False(t, h.coordinator.Animating())

	h.rt.AdvanceBy(time.Second)
	assert.Equal(t, 2, *finished)
}

func TestWithoutStackingSameCandidateIsNoop(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.autoStart = true
	h.showImmediately()
	m1, h1 := h.message("m1")
	h1.EXPECT().Show(Invisible, Front).Return(h.rt.NewTimed(time.Second)).Times(1)

	h.coordinator.UpdateWithoutStacking(m1, false, nil)
	require.True(t, h.coordinator.Animating())

	h.coordinator.UpdateWithoutStacking(m1, false, nil)
	h.coordinator.UpdateWithoutStacking(m1, true, nil)
	assert.Len(t, h.started, 1)
}

func TestWithoutStackingHideWithoutAnimationFinalizes(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	h1.EXPECT().Show(Invisible, Front).Return(nil)
	h.coordinator.UpdateWithoutStacking(m1, false, nil)

	h1.EXPECT().Hide(Front, Invisible, true).Return(nil)
	h.delegate.EXPECT().OnFinishHiding()
	finished, onFinished := counter()
	h.coordinator.UpdateWithoutStacking(nil, false, onFinished)

	assert.True(t, h.coordinator.Displayed().Empty())
	assert.Equal(t, 1, *finished)
}

func TestWithoutStackingHideWaitsForAnimation(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.autoStart = true
	h.showImmediately()
	m1, h1 := h.message("m1")
	h1.EXPECT().Show(Invisible, Front).Return(nil)
	h.coordinator.UpdateWithoutStacking(m1, false, nil)

	h1.EXPECT().Hide(Front, Invisible, true).Return(h.rt.NewTimed(300 * time.Millisecond))
	finished, onFinished := counter()
	h.coordinator.UpdateWithoutStacking(nil, false, onFinished)

	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())
	assert.Equal(t, 0, *finished)

	h.delegate.EXPECT().OnFinishHiding()
	h.rt.AdvanceBy(300 * time.Millisecond)
	assert.True(t, h.coordinator.Displayed().Empty())
	assert.Equal(t, 1, *finished)
}

func TestWithoutStackingDropsRequestsWhileAnimating(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.autoStart = true
	h.showImmediately()
	m1, h1 := h.message("m1")
	h1.EXPECT().Show(Invisible, Front).Return(h.rt.NewTimed(time.Second))
	h.coordinator.UpdateWithoutStacking(m1, false, nil)

	// no Hide expectation: the call is dropped
	h.coordinator.UpdateWithoutStacking(nil, false, nil)
	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())

	h1.EXPECT().Hide(Front, Invisible, false).Return(nil)
	h.delegate.EXPECT().OnFinishHiding()
	h.coordinator.UpdateWithoutStacking(nil, true, nil)
	assert.True(t, h.coordinator.Displayed().Empty())
	assert.False(t, h.coordinator.Animating())
}

func TestWithoutStackingStaleHideSkipsAnimation(t *testing.T) {
	h := newCoordinatorHarness(t)
	m1, _ := h.message("m1")

	var pending func()
	h.delegate.EXPECT().OnStartShowing(gomock.Any()).Do(func(next func()) { pending = next })
	h.coordinator.UpdateWithoutStacking(m1, false, nil)
	require.NotNil(t, pending)

	// the container never got ready, so m1 was never asked to show
	h.delegate.EXPECT().OnFinishHiding()
	finished, onFinished := counter()
	h.coordinator.UpdateWithoutStacking(nil, false, onFinished)
	assert.True(t, h.coordinator.Displayed().Empty())
	assert.Equal(t, 1, *finished)

	// a late continuation must not resurrect the message
	pending()
	assert.Empty(t, h.started)
}

func TestWithoutStackingWaitsForInitialLayout(t *testing.T) {
	ctrl := gomock.NewController(t)
	layout := NewMockLayoutWaiter(ctrl)
	delegate := NewMockDelegate(ctrl)
	var started []animation.Animation
	c := NewAnimationCoordinator(layout, func(a animation.Animation) { started = append(started, a) })
	c.SetDelegate(delegate)

	handler := NewMockHandler(ctrl)
	m1 := &Message{Key: "m1", Handler: handler}

	var afterLayout func()
	delegate.EXPECT().OnStartShowing(gomock.Any()).Do(func(next func()) { next() })
	handler.EXPECT().Show(Invisible, Front).Return(animation.NewRuntime(epoch).NewTimed(time.Second))
	layout.EXPECT().RunAfterInitialMessageLayout(gomock.Any()).Do(func(fn func()) { afterLayout = fn })

	c.UpdateWithoutStacking(m1, false, nil)
	assert.Empty(t, started)

	afterLayout()
	assert.Len(t, started, 1)
}

func TestWithStackingShowsFrontThenDelayedBack(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")

	front := h.rt.NewTimed(300 * time.Millisecond)
	back := h.rt.NewTimed(300 * time.Millisecond)
	h1.EXPECT().Show(Invisible, Front).Return(front)
	h2.EXPECT().Show(Front, Back).Return(back)

	h.coordinator.UpdateWithStacking(Slots{Front: m1, Back: m2}, false, nil)

	assert.Equal(t, Slots{Front: m1, Back: m2}, h.coordinator.Displayed())
	assert.Equal(t, time.Duration(0), front.StartDelay())
	assert.Equal(t, BackMessageStartDelay, back.StartDelay())
	require.Len(t, h.started, 1)
	assert.Equal(t, 2, h.started[0].(*animation.Set).Len())
}

func TestWithStackingIdenticalCandidatesIsNoop(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	h1.EXPECT().Show(Invisible, Front).Return(nil).Times(1)
	h2.EXPECT().Show(Front, Back).Return(nil).Times(1)

	h.coordinator.UpdateWithStacking(Slots{Front: m1, Back: m2}, false, nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m1, Back: m2}, false, nil)
}

func TestWithStackingPromotesBackWhenFrontHides(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	h.stack(m1, h1, m2, h2)

	h1.EXPECT().Hide(Front, Invisible, true).Return(nil).Times(1)
	h2.EXPECT().Show(Back, Front).Return(nil).Times(1)
	h.coordinator.UpdateWithStacking(Slots{Front: m2}, false, nil)

	assert.Equal(t, Slots{Front: m2}, h.coordinator.Displayed())
}

func TestWithStackingConvergesInTwoRounds(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	m3, h3 := h.message("m3")
	h.stack(m1, h1, m2, h2)

	h1.EXPECT().Hide(Front, Invisible, true).Return(nil)
	h2.EXPECT().Show(Back, Front).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m2, Back: m3}, false, nil)
	assert.Equal(t, Slots{Front: m2}, h.coordinator.Displayed())

	h3.EXPECT().Show(Front, Back).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m2, Back: m3}, false, nil)
	assert.Equal(t, Slots{Front: m2, Back: m3}, h.coordinator.Displayed())
}

func TestWithStackingHidesBackOnly(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	h.stack(m1, h1, m2, h2)

	h2.EXPECT().Hide(Back, Front, true).Return(nil).Times(1)
	h.coordinator.UpdateWithStacking(Slots{Front: m1}, false, nil)

	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())
}

func TestWithStackingReplacedBackNeedsFollowUp(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	m3, h3 := h.message("m3")
	h.stack(m1, h1, m2, h2)

	h2.EXPECT().Hide(Back, Front, true).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m1, Back: m3}, false, nil)
	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())

	h3.EXPECT().Show(Front, Back).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m1, Back: m3}, false, nil)
	assert.Equal(t, Slots{Front: m1, Back: m3}, h.coordinator.Displayed())
}

func TestWithStackingDemotesFrontToBack(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	h.stack(m1, h1, nil, nil)

	h1.EXPECT().Show(Front, Back).Return(nil)
	h2.EXPECT().Show(Invisible, Front).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m2, Back: m1}, false, nil)

	assert.Equal(t, Slots{Front: m2, Back: m1}, h.coordinator.Displayed())
}

func TestWithStackingDemotionWithBackStagesIntermediateState(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	m3, h3 := h.message("m3")
	h.stack(m1, h1, m2, h2)

	h2.EXPECT().Hide(Back, Front, true).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m3, Back: m1}, false, nil)
	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())

	h1.EXPECT().Show(Front, Back).Return(nil)
	h3.EXPECT().Show(Invisible, Front).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m3, Back: m1}, false, nil)
	assert.Equal(t, Slots{Front: m3, Back: m1}, h.coordinator.Displayed())
}

func TestWithStackingReplacingBothHidesFirst(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	m3, _ := h.message("m3")
	m4, _ := h.message("m4")
	h.stack(m1, h1, m2, h2)

	h1.EXPECT().Hide(Front, Invisible, true).Return(nil)
	h2.EXPECT().Hide(Back, Front, true).Return(nil)
	h.delegate.EXPECT().OnFinishHiding()
	h.coordinator.UpdateWithStacking(Slots{Front: m3, Back: m4}, false, nil)

	assert.True(t, h.coordinator.Displayed().Empty())
}

func TestWithStackingFullHideNotifiesAfterAnimation(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.autoStart = true
	h.showImmediately()
	m1, h1 := h.message("m1")
	m2, h2 := h.message("m2")
	h.stack(m1, h1, m2, h2)

	h1.EXPECT().Hide(Front, Invisible, true).Return(h.rt.NewTimed(200 * time.Millisecond))
	h2.EXPECT().Hide(Back, Front, true).Return(h.rt.NewTimed(100 * time.Millisecond))
	finished, onFinished := counter()
	h.coordinator.UpdateWithStacking(Slots{}, false, onFinished)

	assert.True(t, h.coordinator.Displayed().Empty())
	assert.True(t, h.coordinator.Animating())

	h.rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 0, *finished)

	h.delegate.EXPECT().OnFinishHiding()
	h.rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 1, *finished)
}

func TestWithStackingSuspendedInterruptsAnimation(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.autoStart = true
	h.showImmediately()
	m1, h1 := h.message("m1")
	show := h.rt.NewTimed(time.Second)
	h1.EXPECT().Show(Invisible, Front).Return(show)
	h.coordinator.UpdateWithStacking(Slots{Front: m1}, false, nil)
	require.True(t, h.coordinator.Animating())

	// dropped while animating
	h.coordinator.UpdateWithStacking(Slots{}, false, nil)
	assert.Equal(t, Slots{Front: m1}, h.coordinator.Displayed())

	h1.EXPECT().Hide(Front, Invisible, false).Return(nil)
	h.delegate.EXPECT().OnFinishHiding()
	h.coordinator.UpdateWithStacking(Slots{}, true, nil)

	assert.True(t, h.coordinator.Displayed().Empty())
	assert.True(t, show.Done())
	assert.False(t, h.coordinator.Animating())
}

func TestWithStackingRejectsBackWithoutFront(t *testing.T) {
	h := newCoordinatorHarness(t)
	m1, _ := h.message("m1")
	assert.Panics(t, func() {
		h.coordinator.UpdateWithStacking(Slots{Back: m1}, false, nil)
	})
}

func TestSlotsChangedListener(t *testing.T) {
	h := newCoordinatorHarness(t)
	h.showImmediately()
	m1, h1 := h.message("m1")

	var changes [][2]Slots
	h.coordinator.OnSlotsChanged(func(prev, next Slots) {
		changes = append(changes, [2]Slots{prev, next})
	})

	h1.EXPECT().Show(Invisible, Front).Return(nil)
	h.coordinator.UpdateWithStacking(Slots{Front: m1}, false, nil)
	h1.EXPECT().Hide(Front, Invisible, true).Return(nil)
	h.delegate.EXPECT().OnFinishHiding()
	h.coordinator.UpdateWithStacking(Slots{}, false, nil)

	assert.Equal(t, [][2]Slots{
		{{}, {Front: m1}},
		{{Front: m1}, {}},
	}, changes)
}
