package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/msgstack/internal/banner"
)

// EnqueueMsg asks the host to enqueue a banner.
type EnqueueMsg struct {
	Key     string
	Options banner.Options
}

// DismissMsg asks the host to dismiss the message with Key.
type DismissMsg struct {
	Key string
}

// DismissAllMsg asks the host to dismiss every message.
type DismissAllMsg struct{}

// SuspendMsg suspends display under Name until a matching ResumeMsg.
type SuspendMsg struct {
	Name string
}

// ResumeMsg releases the suspension Name, or the latest one when empty.
type ResumeMsg struct {
	Name string
}

// ProducerDoneMsg reports that a producer returned.
type ProducerDoneMsg struct {
	Name string
	Err  error
}

type tickMsg time.Time

// SendSink forwards producer requests as tea messages. It is safe to use
// from any goroutine when send is tea.Program.Send.
type SendSink struct {
	send func(tea.Msg)
}

// NewSendSink creates a sink delivering to send.
func NewSendSink(send func(tea.Msg)) *SendSink {
	return &SendSink{send: send}
}

func (s *SendSink) Enqueue(key string, opts banner.Options) {
	s.send(EnqueueMsg{Key: key, Options: opts})
}

func (s *SendSink) Dismiss(key string) { s.send(DismissMsg{Key: key}) }
func (s *SendSink) DismissAll()        { s.send(DismissAllMsg{}) }
func (s *SendSink) Suspend(name string) {
	s.send(SuspendMsg{Name: name})
}
func (s *SendSink) Resume(name string) { s.send(ResumeMsg{Name: name}) }
