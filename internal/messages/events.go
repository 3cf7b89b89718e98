package messages

// EventType names a queue lifecycle event.
type EventType string

const (
	EventEnqueued  EventType = "enqueued"
	EventShown     EventType = "shown"
	EventHidden    EventType = "hidden"
	EventDismissed EventType = "dismissed"
)

// Event describes something that happened to a message.
type Event struct {
	Type     EventType
	Key      string
	Handler  Handler
	Position Position
}

// Observer is notified of queue events synchronously, in registration order.
type Observer interface {
	OnMessageEvent(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// OnMessageEvent calls f(ev).
func (f ObserverFunc) OnMessageEvent(ev Event) {
	f(ev)
}

type observerList struct {
	observers []*registeredObserver
}

type registeredObserver struct {
	Observer
}

// add registers o and returns a function removing it again.
func (l *observerList) add(o Observer) func() {
	if o == nil {
		return func() {}
	}
	entry := &registeredObserver{Observer: o}
	l.observers = append(l.observers, entry)
	return func() {
		for i, existing := range l.observers {
			if existing == entry {
				l.observers = append(l.observers[:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

func (l *observerList) notify(ev Event) {
	for _, o := range l.observers {
		o.OnMessageEvent(ev)
	}
}

// Describer is implemented by handlers that carry human readable content.
// Observers use it to enrich what they record about an event.
type Describer interface {
	Title() string
	Description() string
	Severity() string
}

// Describe returns the title and severity of ev's handler, or empty strings
// when the handler does not implement Describer.
func Describe(ev Event) (title, severity string) {
	d, ok := ev.Handler.(Describer)
	if !ok {
		return "", ""
	}
	return d.Title(), d.Severity()
}
