package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestTimedEndsAfterDelayAndDuration(t *testing.T) {
	rt := NewRuntime(epoch)
	a := rt.NewTimed(200 * time.Millisecond)
	a.SetStartDelay(100 * time.Millisecond)

	ended := 0
	a.AddEndListener(func() { ended++ })
	a.Start()
	require.True(t, a.IsStarted())

	rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 0.0, a.Progress())

	rt.AdvanceBy(100 * time.Millisecond)
	assert.InDelta(t, 0.5, a.Progress(), 0.001)
	assert.Equal(t, 0, ended)

	rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 1, ended)
	assert.False(t, a.IsStarted())
	assert.True(t, a.Done())
	assert.Equal(t, 1.0, a.Progress())
}

func TestTimedCancelSkipsListeners(t *testing.T) {
	rt := NewRuntime(epoch)
	a := rt.NewTimed(time.Second)
	a.AddEndListener(func() { t.Fatal("listener must not fire") })
	a.Start()
	a.Cancel()

	rt.AdvanceBy(2 * time.Second)
	assert.False(t, a.IsStarted())
	assert.Equal(t, 0, rt.Pending())
}

func TestTimedRemoveAllListeners(t *testing.T) {
	rt := NewRuntime(epoch)
	a := rt.NewTimed(time.Second)
	a.AddEndListener(func() { t.Fatal("listener must not fire") })
	a.RemoveAllListeners()
	a.Start()
	rt.AdvanceBy(time.Second)
	assert.True(t, a.Done())
}

func TestRuntimeFiresInChronologicalOrder(t *testing.T) {
	rt := NewRuntime(epoch)
	var order []string
	var seenAt []time.Duration

	slow := rt.NewTimed(300 * time.Millisecond)
	slow.AddEndListener(func() {
		order = append(order, "slow")
		seenAt = append(seenAt, rt.Now().Sub(epoch))
	})
	fast := rt.NewTimed(100 * time.Millisecond)
	fast.AddEndListener(func() {
		order = append(order, "fast")
		seenAt = append(seenAt, rt.Now().Sub(epoch))
		// work scheduled from a listener is due before the target time
		rt.AfterFunc(50*time.Millisecond, func() {
			order = append(order, "timer")
			seenAt = append(seenAt, rt.Now().Sub(epoch))
		})
	})
	slow.Start()
	fast.Start()

	rt.AdvanceBy(time.Second)
	assert.Equal(t, []string{"fast", "timer", "slow"}, order)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 150 * time.Millisecond, 300 * time.Millisecond}, seenAt)
	assert.Equal(t, epoch.Add(time.Second), rt.Now())
}

func TestTimerStop(t *testing.T) {
	rt := NewRuntime(epoch)
	fired := false
	timer := rt.AfterFunc(time.Second, func() { fired = true })

	deadline, ok := rt.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, epoch.Add(time.Second), deadline)

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	rt.AdvanceBy(2 * time.Second)
	assert.False(t, fired)

	_, ok = rt.NextDeadline()
	assert.False(t, ok)
}

func TestSetEndsWhenAllMembersEnd(t *testing.T) {
	rt := NewRuntime(epoch)
	a := rt.NewTimed(100 * time.Millisecond)
	b := rt.NewTimed(300 * time.Millisecond)
	set := Together(a, nil, b)
	require.Equal(t, 2, set.Len())

	ended := 0
	set.AddEndListener(func() { ended++ })
	set.Start()
	assert.True(t, set.IsStarted())

	rt.AdvanceBy(200 * time.Millisecond)
	assert.Equal(t, 0, ended)
	assert.True(t, set.IsStarted())

	rt.AdvanceBy(100 * time.Millisecond)
	assert.Equal(t, 1, ended)
	assert.False(t, set.IsStarted())
}

func TestEmptySetEndsOnStart(t *testing.T) {
	set := Together(nil, nil)
	ended := false
	set.AddEndListener(func() { ended = true })
	set.Start()
	assert.True(t, ended)
	assert.False(t, set.IsStarted())
}

func TestSetCancelCancelsMembers(t *testing.T) {
	rt := NewRuntime(epoch)
	a := rt.NewTimed(100 * time.Millisecond)
	set := Together(a)
	set.AddEndListener(func() { t.Fatal("set listener must not fire") })
	set.Start()
	set.Cancel()

	assert.False(t, set.IsStarted())
	assert.True(t, a.Done())
	rt.AdvanceBy(time.Second)
}
