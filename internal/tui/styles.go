// Package tui implements the Bubble Tea TUI for drift.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
	colorRed    = lipgloss.Color("#f38ba8") // red
)

// Styles used for rendering the TUI.
var (
	// Selected item style (matches border color).
	selectedStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// Normal item style (no color, uses terminal default).
	normalStyle = lipgloss.NewStyle()

	// Subtle style for secondary text like previews and timestamps.
	subtleStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	// Unread badge for the conversation list.
	unreadBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1b26")).
				Background(colorBlue).
				Bold(true).
				Padding(0, 1)

	// Selected border style for left accent bar.
	selectedBorderStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	// Spinner style.
	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	// Error toast shown below the active screen.
	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			PaddingLeft(1)
)

// Presence styles.
var (
	presenceOnlineStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	presenceAwayStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	presenceOfflineStyle = lipgloss.NewStyle().Foreground(colorGray)
	presenceGroupStyle   = lipgloss.NewStyle().Foreground(colorBlue)
)

// Thread styles.
var (
	senderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	outgoingStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	tickSentStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	tickReadStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	tickFailedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	attachmentStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// Tab bar styles.
var (
	tabSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	tabNormalStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// Modal styles.
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	modalHelpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	modalButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("#3b4261")).
				Foreground(lipgloss.Color("#a9b1d6"))

	modalButtonSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(colorBlue).
					Foreground(lipgloss.Color("#1a1b26")).
					Bold(true)
)

// Composer styles for the thread input line.
var (
	composerPromptStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	composerBarStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				BorderForeground(colorGray)
)

// Help line pinned to the bottom of each screen.
var helpStyle = lipgloss.NewStyle().
	Foreground(colorGray).
	PaddingLeft(1)
