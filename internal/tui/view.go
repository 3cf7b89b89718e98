package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/errors"
)

const defaultWidth = 80

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func statusColor(t errors.MessageType) lipgloss.Color {
	switch t {
	case errors.MessageTypeError:
		return lipgloss.Color(colors.ColorNumber(colors.Red))
	case errors.MessageTypeWarning:
		return lipgloss.Color(colors.ColorNumber(colors.Yellow))
	case errors.MessageTypeSuccess:
		return lipgloss.Color(colors.ColorNumber(colors.Green))
	default:
		return lipgloss.Color(colors.ColorNumber(colors.Blue))
	}
}

// View renders the header, the banner stack, the status line and the help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if stack := m.renderStack(width); stack != "" {
		b.WriteString(stack)
		b.WriteString("\n")
	}
	if status := m.renderStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader() string {
	mode := "single"
	if m.queue.Stacking() {
		mode = "stacking"
	}
	info := fmt.Sprintf("%d queued · %s", m.queue.Len(), mode)
	if m.queue.IsSuspended() {
		info += " · suspended"
	}
	return headerStyle.Render("msgstack") + "  " + mutedStyle.Render(info)
}

// renderStack draws back banners above front ones so the front box sits
// on top of the pile.
func (m *Model) renderStack(width int) string {
	var back, front []string
	for _, s := range m.banners {
		view := s.banner.View(width)
		if view == "" {
			continue
		}
		if s.banner.Frame().Back {
			back = append(back, view)
		} else {
			front = append(front, view)
		}
	}
	return strings.Join(append(back, front...), "\n")
}

func (m *Model) renderStatus() string {
	msg, ok := m.errorHandler.Latest()
	if !ok || msg.Expired(m.rt.Now(), m.statusTTL) {
		return ""
	}
	return lipgloss.NewStyle().Foreground(statusColor(msg.Type)).Render(msg.Text)
}
