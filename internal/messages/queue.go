package messages

import (
	"fmt"
)

// QueueManager owns the live messages of one container and decides which of
// them the coordinator should display. Messages are promoted in FIFO order and
// a displayed message is never preempted by a later one.
type QueueManager struct {
	coordinator *AnimationCoordinator
	stacking    bool
	delegate    Delegate

	queue []*Message
	byKey map[string]*Message

	suspensions map[int]struct{}
	nextToken   int
	destroyed   bool

	observers observerList
}

// QueueOption configures a QueueManager.
type QueueOption func(*QueueManager)

// WithStacking enables the two-slot front/back display policy.
func WithStacking(enabled bool) QueueOption {
	return func(q *QueueManager) {
		q.stacking = enabled
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) QueueOption {
	return func(q *QueueManager) {
		q.observers.add(o)
	}
}

// NewQueueManager creates a queue driving the given coordinator.
func NewQueueManager(coordinator *AnimationCoordinator, opts ...QueueOption) *QueueManager {
	if coordinator == nil {
		panic("NewQueueManager: coordinator dependency cannot be nil")
	}
	q := &QueueManager{
		coordinator: coordinator,
		byKey:       make(map[string]*Message),
		suspensions: make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	coordinator.OnSlotsChanged(q.slotsChanged)
	return q
}

// AddObserver registers o and returns a function that unregisters it.
func (q *QueueManager) AddObserver(o Observer) func() {
	return q.observers.add(o)
}

// Stacking reports whether the two-slot policy is active.
func (q *QueueManager) Stacking() bool {
	return q.stacking
}

// SetDelegate attaches the container. Messages are only displayed while a
// delegate is attached; detaching hides whatever is on screen immediately.
func (q *QueueManager) SetDelegate(d Delegate) {
	if q.delegate != nil {
		q.reconcile(Slots{}, true, nil)
	}
	q.delegate = d
	q.coordinator.SetDelegate(d)
	q.updateDisplayed()
}

// Enqueue appends a message to the queue. It fails with ErrDuplicateKey if key
// is still live, in which case handler is left untouched.
func (q *QueueManager) Enqueue(handler Handler, key string) error {
	if handler == nil {
		return fmt.Errorf("enqueue %q: handler cannot be nil", key)
	}
	if q.destroyed {
		return fmt.Errorf("enqueue %q: queue destroyed", key)
	}
	if _, exists := q.byKey[key]; exists {
		return fmt.Errorf("enqueue %q: %w", key, ErrDuplicateKey)
	}
	m := &Message{Key: key, Handler: handler}
	q.byKey[key] = m
	q.queue = append(q.queue, m)
	q.observers.notify(Event{Type: EventEnqueued, Key: key, Handler: handler, Position: Invisible})
	q.updateDisplayed()
	return nil
}

// MustEnqueue is like Enqueue but panics on error.
func (q *QueueManager) MustEnqueue(handler Handler, key string) {
	if err := q.Enqueue(handler, key); err != nil {
		panic(err)
	}
}

// Dismiss removes the message with key. Unknown keys are ignored, so repeated
// dismissals are safe. The handler's Dismiss runs exactly once.
func (q *QueueManager) Dismiss(key string) {
	m, ok := q.byKey[key]
	if !ok {
		return
	}
	delete(q.byKey, key)
	for i, queued := range q.queue {
		if queued == m {
			q.queue = append(q.queue[:i], q.queue[i+1:]...)
			break
		}
	}
	q.updateDisplayed()
	m.Handler.Dismiss()
	q.observers.notify(Event{Type: EventDismissed, Key: key, Handler: m.Handler, Position: Invisible})
}

// DismissAll dismisses every live message, oldest first.
func (q *QueueManager) DismissAll() {
	keys := make([]string, 0, len(q.queue))
	for _, m := range q.queue {
		keys = append(keys, m.Key)
	}
	for _, key := range keys {
		q.Dismiss(key)
	}
}

// Suspend pauses display and returns a token for Resume. Displayed messages
// are hidden immediately without waiting for running animations.
func (q *QueueManager) Suspend() int {
	q.nextToken++
	token := q.nextToken
	q.suspensions[token] = struct{}{}
	q.updateDisplayed()
	return token
}

// Resume releases a token returned by Suspend. Display restarts once no token
// is outstanding. Unknown tokens are ignored.
func (q *QueueManager) Resume(token int) {
	if _, ok := q.suspensions[token]; !ok {
		return
	}
	delete(q.suspensions, token)
	q.updateDisplayed()
}

// IsSuspended reports whether any suspension token is outstanding.
func (q *QueueManager) IsSuspended() bool {
	return len(q.suspensions) > 0
}

// Destroy tears the queue down: display is settled without animation and every
// live message is dismissed. The queue rejects further messages.
func (q *QueueManager) Destroy() {
	if q.destroyed {
		return
	}
	q.Suspend()
	q.DismissAll()
	q.destroyed = true
	q.delegate = nil
	q.coordinator.SetDelegate(nil)
}

// Len returns the number of live messages.
func (q *QueueManager) Len() int {
	return len(q.queue)
}

// Keys returns live message keys in queue order.
func (q *QueueManager) Keys() []string {
	keys := make([]string, 0, len(q.queue))
	for _, m := range q.queue {
		keys = append(keys, m.Key)
	}
	return keys
}

// Handler returns the handler enqueued under key.
func (q *QueueManager) Handler(key string) (Handler, bool) {
	m, ok := q.byKey[key]
	if !ok {
		return nil, false
	}
	return m.Handler, true
}

// Displayed returns what the coordinator currently shows.
func (q *QueueManager) Displayed() Slots {
	return q.coordinator.Displayed()
}

// updateDisplayed recomputes the candidates and asks the coordinator to
// reconcile. It re-runs itself whenever a reconcile round settles.
func (q *QueueManager) updateDisplayed() {
	if q.delegate == nil {
		return
	}
	q.reconcile(q.candidates(), q.IsSuspended(), q.updateDisplayed)
}

func (q *QueueManager) reconcile(candidates Slots, suspended bool, onFinished func()) {
	if q.stacking {
		q.coordinator.UpdateWithStacking(candidates, suspended, onFinished)
		return
	}
	q.coordinator.UpdateWithoutStacking(candidates.Front, suspended, onFinished)
}

func (q *QueueManager) candidates() Slots {
	if q.IsSuspended() {
		return Slots{}
	}
	if !q.stacking {
		if current := q.coordinator.Displayed().Front; current != nil && q.live(current) {
			return Slots{Front: current}
		}
	}
	var next Slots
	for _, m := range q.queue {
		if !m.Handler.ShouldShow() {
			continue
		}
		if next.Front == nil {
			next.Front = m
			if !q.stacking {
				break
			}
			continue
		}
		next.Back = m
		break
	}
	return next
}

func (q *QueueManager) live(m *Message) bool {
	return q.byKey[m.Key] == m
}

func (q *QueueManager) slotsChanged(prev, next Slots) {
	for _, m := range []*Message{prev.Front, prev.Back} {
		if m != nil && !next.Contains(m) {
			q.observers.notify(Event{Type: EventHidden, Key: m.Key, Handler: m.Handler, Position: Invisible})
		}
	}
	if next.Front != nil && !prev.Contains(next.Front) {
		q.observers.notify(Event{Type: EventShown, Key: next.Front.Key, Handler: next.Front.Handler, Position: Front})
	}
	if next.Back != nil && !prev.Contains(next.Back) {
		q.observers.notify(Event{Type: EventShown, Key: next.Back.Key, Handler: next.Back.Handler, Position: Back})
	}
}
