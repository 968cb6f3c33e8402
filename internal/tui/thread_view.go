package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drift-im/drift/internal/core/chat"
)

// ThreadView is a custom renderer for the open message thread.
// Incoming messages are left-aligned with a sender header, outgoing
// messages are right-aligned with delivery ticks. It keeps the view
// pinned to the newest message until the user scrolls up.
type ThreadView struct {
	messages []chat.Message
	lines    []string
	width    int
	height   int
	offset   int  // index of first visible line
	sticky   bool // follow the newest message
}

// NewThreadView creates a new thread view.
func NewThreadView() *ThreadView {
	return &ThreadView{sticky: true}
}

// SetMessages sets the messages to display.
func (v *ThreadView) SetMessages(msgs []chat.Message) {
	v.messages = msgs
	v.rebuild()
}

// SetSize sets the viewport dimensions.
func (v *ThreadView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.rebuild()
}

// ScrollUp moves the viewport one line towards older messages.
func (v *ThreadView) ScrollUp() {
	if v.offset > 0 {
		v.offset--
		v.sticky = false
	}
}

// ScrollDown moves the viewport one line towards newer messages.
func (v *ThreadView) ScrollDown() {
	if v.offset < v.maxOffset() {
		v.offset++
	}
	if v.offset == v.maxOffset() {
		v.sticky = true
	}
}

// ScrollToBottom jumps to the newest message and re-enables following.
func (v *ThreadView) ScrollToBottom() {
	v.sticky = true
	v.offset = v.maxOffset()
}

func (v *ThreadView) visibleLines() int {
	if v.height < 1 {
		return 1
	}
	return v.height
}

func (v *ThreadView) maxOffset() int {
	max := len(v.lines) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// rebuild re-renders all message lines and clamps the viewport.
func (v *ThreadView) rebuild() {
	v.lines = v.lines[:0]

	for i, m := range v.messages {
		if i > 0 {
			v.lines = append(v.lines, "")
		}
		v.lines = append(v.lines, v.renderMessage(m)...)
	}

	if v.sticky || v.offset > v.maxOffset() {
		v.offset = v.maxOffset()
	}
}

// renderMessage renders one message as a header line plus content lines.
func (v *ThreadView) renderMessage(m chat.Message) []string {
	body := wrapContent(m.Content, v.contentWidth())

	if m.Outgoing {
		header := subtleStyle.Render(m.Timestamp.Format("15:04")) + " " + statusTicks(m.Status)
		lines := []string{lipgloss.PlaceHorizontal(v.width, lipgloss.Right, header)}
		if badge := attachmentBadge(m); badge != "" {
			lines = append(lines, lipgloss.PlaceHorizontal(v.width, lipgloss.Right, badge))
		}
		for _, l := range body {
			lines = append(lines, lipgloss.PlaceHorizontal(v.width, lipgloss.Right, outgoingStyle.Render(l)))
		}
		return lines
	}

	header := " " + senderStyle.Render(m.Sender.Name) + "  " + subtleStyle.Render(m.Timestamp.Format("15:04"))
	lines := []string{header}
	if badge := attachmentBadge(m); badge != "" {
		lines = append(lines, " "+badge)
	}
	for _, l := range body {
		lines = append(lines, " "+messageStyle.Render(l))
	}
	return lines
}

func (v *ThreadView) contentWidth() int {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the visible window of the thread.
func (v *ThreadView) View() string {
	if len(v.messages) == 0 {
		return subtleStyle.Render(" No messages yet. Say hello!")
	}

	visible := v.visibleLines()
	end := v.offset + visible
	if end > len(v.lines) {
		end = len(v.lines)
	}

	window := v.lines[v.offset:end]

	// Pad above so short threads sit at the bottom of the viewport
	var b strings.Builder
	for i := len(window); i < visible; i++ {
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(window, "\n"))
	return b.String()
}

// attachmentBadge returns the styled badge line for non-text kinds,
// or an empty string for plain text.
func attachmentBadge(m chat.Message) string {
	switch m.Kind {
	case chat.KindImage:
		return attachmentStyle.Render("[image]")
	case chat.KindFile:
		return attachmentStyle.Render("[file]")
	case chat.KindAudio:
		return attachmentStyle.Render(fmt.Sprintf("[audio %s]", formatDuration(m.DurationSecs)))
	default:
		return ""
	}
}

// statusTicks returns the styled delivery indicator for an outgoing message.
func statusTicks(s chat.Status) string {
	switch s {
	case chat.StatusSending:
		return tickSentStyle.Render("◌")
	case chat.StatusSent:
		return tickSentStyle.Render("✓")
	case chat.StatusDelivered:
		return tickSentStyle.Render("✓✓")
	case chat.StatusRead:
		return tickReadStyle.Render("✓✓")
	case chat.StatusFailed:
		return tickFailedStyle.Render("✗")
	default:
		return ""
	}
}

// formatDuration formats seconds as m:ss.
func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// wrapContent splits text into lines no wider than width, breaking on
// spaces where possible.
func wrapContent(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		runes := []rune(paragraph)
		for len(runes) > width {
			cut := width
			for i := width; i > 0; i-- {
				if runes[i-1] == ' ' {
					cut = i
					break
				}
			}
			lines = append(lines, strings.TrimRight(string(runes[:cut]), " "))
			runes = runes[cut:]
		}
		lines = append(lines, string(runes))
	}
	return lines
}
