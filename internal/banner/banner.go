// Package banner provides the terminal message handler driven by the queue.
package banner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/msgstack/internal/animation"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

// Level is the severity of a banner.
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// ErrInvalidLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLevel = errors.New("invalid banner level")

// Levels lists the accepted level names.
func Levels() []string {
	return []string{string(LevelInfo), string(LevelWarning), string(LevelError), string(LevelCritical)}
}

// ParseLevel converts s to a Level. The empty string maps to LevelInfo.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return LevelInfo, nil
	case LevelInfo:
		return LevelInfo, nil
	case LevelWarning:
		return LevelWarning, nil
	case LevelError:
		return LevelError, nil
	case LevelCritical:
		return LevelCritical, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidLevel, s, strings.Join(Levels(), ", "))
	}
}

// Default animation lengths used when Options leaves them unset.
const (
	DefaultEnterDuration = 250 * time.Millisecond
	DefaultExitDuration  = 200 * time.Millisecond
)

// Options describes a banner.
type Options struct {
	Title       string
	Description string
	Level       Level
	// AutoDismiss is how long the banner stays up once shown. Zero keeps it
	// until it is dismissed explicitly.
	AutoDismiss time.Duration
	// EnterDuration and ExitDuration default when zero; negative values make
	// the transitions instant.
	EnterDuration time.Duration
	ExitDuration  time.Duration
	// Muted banners stay queued without being shown.
	Muted bool
	// OnDismiss runs once when the queue dismisses the banner.
	OnDismiss func()
}

type phase int

const (
	phaseHidden phase = iota
	phaseShowing
	phaseHiding
)

// Banner is a messages.Handler rendered as a box in the terminal.
type Banner struct {
	rt   *animation.Runtime
	opts Options

	phase     phase
	from, to  messages.Position
	anim      *animation.Timed
	dismissed bool
}

// New creates a banner whose animations run on rt.
func New(rt *animation.Runtime, opts Options) *Banner {
	if rt == nil {
		panic("banner.New: runtime dependency cannot be nil")
	}
	if opts.Level == "" {
		opts.Level = LevelInfo
	}
	if opts.EnterDuration == 0 {
		opts.EnterDuration = DefaultEnterDuration
	}
	if opts.ExitDuration == 0 {
		opts.ExitDuration = DefaultExitDuration
	}
	return &Banner{rt: rt, opts: opts}
}

// Title returns the headline.
func (b *Banner) Title() string { return b.opts.Title }

// Description returns the body text, possibly empty.
func (b *Banner) Description() string { return b.opts.Description }

// Level returns the banner level.
func (b *Banner) Level() Level { return b.opts.Level }

// Severity returns the level name.
func (b *Banner) Severity() string { return string(b.opts.Level) }

// AutoDismiss returns how long the banner should stay up once shown.
func (b *Banner) AutoDismiss() time.Duration { return b.opts.AutoDismiss }

// ShouldShow reports whether the banner is eligible for display.
func (b *Banner) ShouldShow() bool {
	return !b.opts.Muted && !b.dismissed
}

// Show moves the banner on screen or between slots.
func (b *Banner) Show(from, to messages.Position) animation.Animation {
	b.phase = phaseShowing
	b.from, b.to = from, to
	return b.transition(b.opts.EnterDuration, nil)
}

// Hide takes the banner off screen. Without animate it disappears at once and
// no animation is returned.
func (b *Banner) Hide(from, to messages.Position, animate bool) animation.Animation {
	b.from, b.to = from, to
	if !animate {
		b.settleHidden()
		return nil
	}
	b.phase = phaseHiding
	return b.transition(b.opts.ExitDuration, b.settleHidden)
}

// Dismiss marks the banner as gone and runs the dismiss callback once.
func (b *Banner) Dismiss() {
	if b.dismissed {
		return
	}
	b.dismissed = true
	if b.opts.OnDismiss != nil {
		b.opts.OnDismiss()
	}
}

// Dismissed reports whether the queue has dismissed the banner.
func (b *Banner) Dismissed() bool {
	return b.dismissed
}

// Visible reports whether the banner occupies screen space. A hide whose
// animation was canceled counts as finished.
func (b *Banner) Visible() bool {
	if b.phase == phaseHiding && b.anim != nil && b.anim.Done() {
		return false
	}
	return b.phase != phaseHidden
}

// Position returns the slot the banner is moving to, or Invisible.
func (b *Banner) Position() messages.Position {
	if b.phase != phaseShowing {
		return messages.Invisible
	}
	return b.to
}

// Progress returns how far the current transition has gone, in [0, 1].
func (b *Banner) Progress() float64 {
	if b.anim == nil {
		return 1
	}
	return b.anim.Progress()
}

func (b *Banner) transition(d time.Duration, onEnd func()) animation.Animation {
	b.anim = nil
	if d <= 0 {
		if onEnd != nil {
			onEnd()
		}
		return nil
	}
	a := b.rt.NewTimed(d)
	if onEnd != nil {
		a.AddEndListener(onEnd)
	}
	b.anim = a
	return a
}

func (b *Banner) settleHidden() {
	b.phase = phaseHidden
	b.anim = nil
}
