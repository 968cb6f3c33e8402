package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/drift-im/drift/internal/core/chat"
)

// ConversationItem wraps a conversation for the list component.
type ConversationItem struct {
	Conv chat.Conversation
}

// FilterValue returns the value used for filtering.
func (i ConversationItem) FilterValue() string {
	return i.Conv.Name
}

// ConversationDelegate handles rendering of conversation items in the list.
type ConversationDelegate struct {
	Styles ConversationDelegateStyles
}

// ConversationDelegateStyles defines the styles for the delegate.
type ConversationDelegateStyles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Preview  lipgloss.Style
	Unread   lipgloss.Style
}

// DefaultConversationDelegateStyles returns the default styles.
func DefaultConversationDelegateStyles() ConversationDelegateStyles {
	return ConversationDelegateStyles{
		Normal:   normalStyle,
		Selected: selectedStyle,
		Preview:  subtleStyle,
		Unread:   unreadBadgeStyle,
	}
}

// NewConversationDelegate creates a new conversation delegate with default styles.
func NewConversationDelegate() ConversationDelegate {
	return ConversationDelegate{
		Styles: DefaultConversationDelegateStyles(),
	}
}

// Height returns the height of each item.
func (d ConversationDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d ConversationDelegate) Spacing() int {
	return 1
}

// Update handles item updates.
func (d ConversationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders a single item.
func (d ConversationDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	convItem, ok := item.(ConversationItem)
	if !ok {
		return
	}

	c := convItem.Conv
	isSelected := index == m.Index()

	// Title line: presence dot, name, unread badge, relative time
	title := presenceDot(c) + " " + c.Name
	if c.UnreadCount > 0 {
		title += " " + d.Styles.Unread.Render(fmt.Sprintf("%d", c.UnreadCount))
	}
	if c.LastMessage != nil {
		title += "  " + subtleStyle.Render(humanize.Time(c.LastMessage.Timestamp))
	}

	// Preview line: optional sender prefix, then content
	preview := previewLine(c, availableWidth(m.Width()))

	var cursor string
	var titleStyle lipgloss.Style
	if isSelected {
		cursor = selectedBorderStyle.Render("┃") + " "
		titleStyle = d.Styles.Selected
	} else {
		cursor = "  "
		titleStyle = d.Styles.Normal
	}

	_, _ = fmt.Fprintf(w, "%s%s\n", cursor, titleStyle.Render(title))
	_, _ = fmt.Fprintf(w, "  %s", d.Styles.Preview.Render(preview))
}

// presenceDot returns the styled presence indicator for a conversation.
func presenceDot(c chat.Conversation) string {
	if c.Group {
		return presenceGroupStyle.Render("◆")
	}
	switch c.Presence {
	case chat.PresenceOnline:
		return presenceOnlineStyle.Render("●")
	case chat.PresenceAway:
		return presenceAwayStyle.Render("◐")
	default:
		return presenceOfflineStyle.Render("○")
	}
}

// previewLine builds the last-message preview, truncated to width.
func previewLine(c chat.Conversation, width int) string {
	if c.LastMessage == nil {
		return "No messages yet"
	}

	preview := c.LastMessage.Content
	if c.LastMessage.Sender != "" {
		preview = c.LastMessage.Sender + ": " + preview
	}

	preview = strings.ReplaceAll(preview, "\n", " ")
	runes := []rune(preview)
	if width > 1 && len(runes) > width {
		preview = string(runes[:width-1]) + "…"
	}
	return preview
}

// availableWidth returns the width left for the preview line.
func availableWidth(listWidth int) int {
	w := listWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}
