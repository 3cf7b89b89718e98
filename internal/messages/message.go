// Package messages implements the message queue and the stacking animation
// coordinator that decides which banners are on screen and how they move.
//
// Every method in this package must be called from a single goroutine, the
// host's UI loop. Asynchrony is expressed through callbacks handed to the
// collaborators (Delegate, LayoutWaiter, AnimationStarter), never through
// blocking.
package messages

import (
	"errors"
	"fmt"

	"github.com/cristianoliveira/msgstack/internal/animation"
)

// ErrDuplicateKey is returned when a key is enqueued while it is still live.
var ErrDuplicateKey = errors.New("message key already enqueued")

// Position is an abstract display slot a message can occupy.
type Position int

const (
	// Invisible means the message is off screen.
	Invisible Position = iota
	// Front is the primary, fully visible slot.
	Front
	// Back is the secondary slot peeking behind the front message.
	Back
)

// String returns the lowercase name of the position.
func (p Position) String() string {
	switch p {
	case Invisible:
		return "invisible"
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

//go:generate mockgen -source=message.go -destination=mock_handler_test.go -package=messages

// Handler is the display capability set of a single message.
//
// Show and Hide return the animation moving the message between positions, or
// nil when nothing visually changes; a nil animation counts as instantly done.
type Handler interface {
	ShouldShow() bool
	Show(from, to Position) animation.Animation
	Hide(from, to Position, animate bool) animation.Animation
	Dismiss()
}

// Message binds a handler to the key it was enqueued with. Messages are
// compared by pointer identity.
type Message struct {
	Key     string
	Handler Handler
}

// Slots is the snapshot of what is on screen. Back is only set when Front is.
type Slots struct {
	Front *Message
	Back  *Message
}

// Empty reports whether nothing is displayed.
func (s Slots) Empty() bool {
	return s.Front == nil && s.Back == nil
}

// Contains reports whether m occupies either slot.
func (s Slots) Contains(m *Message) bool {
	return m != nil && (s.Front == m || s.Back == m)
}

// Keys returns the keys in [front, back] order, using "" for empty slots.
func (s Slots) Keys() [2]string {
	var keys [2]string
	if s.Front != nil {
		keys[0] = s.Front.Key
	}
	if s.Back != nil {
		keys[1] = s.Back.Key
	}
	return keys
}

func (s Slots) valid() bool {
	return s.Back == nil || s.Front != nil
}
