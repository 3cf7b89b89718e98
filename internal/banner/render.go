package banner

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

const (
	minBoxWidth = 24
	backIndent  = 2
	levelWidth  = 8
)

var levelIcons = map[Level]string{
	LevelInfo:     "ℹ",
	LevelWarning:  "⚠",
	LevelError:    "✗",
	LevelCritical: "‼",
}

func levelColor(l Level) lipgloss.Color {
	switch l {
	case LevelWarning:
		return lipgloss.Color(colors.ColorNumber(colors.Yellow))
	case LevelError, LevelCritical:
		return lipgloss.Color(colors.ColorNumber(colors.Red))
	default:
		return lipgloss.Color(colors.ColorNumber(colors.Blue))
	}
}

// Frame is the geometry of a banner at the current animation step.
type Frame struct {
	// Reveal is the fraction of the box rows on screen.
	Reveal float64
	// Indent is the left margin in columns.
	Indent int
	// Back selects the dimmed style of the back slot.
	Back bool
}

// Frame computes the banner geometry from its transition and progress.
func (b *Banner) Frame() Frame {
	p := b.Progress()
	switch b.phase {
	case phaseShowing:
		f := Frame{Reveal: 1}
		switch {
		case b.from == messages.Invisible:
			f.Reveal = p
			f.Back = b.to == messages.Back
			if f.Back {
				f.Indent = backIndent
			}
		case b.from == messages.Front && b.to == messages.Back:
			f.Back = true
			f.Indent = lerp(0, backIndent, p)
		case b.from == messages.Back && b.to == messages.Front:
			f.Back = p < 0.5
			f.Indent = lerp(backIndent, 0, p)
		}
		return f
	case phaseHiding:
		f := Frame{Reveal: 1 - p, Back: b.from == messages.Back}
		if f.Back {
			f.Indent = backIndent
		}
		return f
	default:
		return Frame{}
	}
}

// View renders the banner box for a terminal width. Hidden banners render as
// the empty string.
func (b *Banner) View(width int) string {
	frame := b.Frame()
	if frame.Reveal <= 0 {
		return ""
	}

	boxWidth := width - 4 - frame.Indent
	if boxWidth < minBoxWidth {
		boxWidth = minBoxWidth
	}

	var content strings.Builder
	icon := levelIcons[b.opts.Level]
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(levelColor(b.opts.Level))
	content.WriteString(labelStyle.Render(icon + " " + padRight(strings.ToUpper(string(b.opts.Level)), levelWidth)))
	content.WriteString(" ")
	content.WriteString(lipgloss.NewStyle().Bold(true).Render(b.opts.Title))
	if b.opts.Description != "" {
		content.WriteString("\n")
		content.WriteString(b.opts.Description)
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(levelColor(b.opts.Level)).
		Padding(0, 1).
		Width(boxWidth).
		MarginLeft(frame.Indent)
	if b.opts.Level == LevelCritical {
		boxStyle = boxStyle.Border(lipgloss.ThickBorder())
	}
	if frame.Back {
		boxStyle = boxStyle.Faint(true).BorderForeground(lipgloss.Color("8"))
	}

	return reveal(boxStyle.Render(content.String()), frame.Reveal)
}

// reveal keeps the bottom share of rows so the box slides down into view.
func reveal(box string, fraction float64) string {
	if fraction >= 1 {
		return box
	}
	lines := strings.Split(box, "\n")
	n := int(math.Ceil(fraction * float64(len(lines))))
	if n <= 0 {
		return ""
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

func lerp(from, to int, p float64) int {
	return from + int(math.Round(float64(to-from)*p))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
