package logging

import "github.com/cristianoliveira/msgstack/internal/messages"

// QueueObserver records queue events at debug level, except dismissals which
// are logged at info.
func QueueObserver(l Logger) messages.Observer {
	return messages.ObserverFunc(func(ev messages.Event) {
		title, severity := messages.Describe(ev)
		args := []any{"event", string(ev.Type), "key", ev.Key, "position", ev.Position.String()}
		if title != "" {
			args = append(args, "title", title, "level", severity)
		}
		if ev.Type == messages.EventDismissed {
			l.Info("message dismissed", args...)
			return
		}
		l.Debug("message "+string(ev.Type), args...)
	})
}
