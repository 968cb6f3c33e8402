// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
	ColorRed    = lipgloss.Color("#f38ba8")
)

// Banner ASCII art for the header.
const Banner = `
 ╔╦╗╦═╗╦╔═╗╔╦╗
  ║║╠╦╝║╠╣  ║
 ═╩╝╩╚═╩╚   ╩`

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true).
	PaddingLeft(1).
	PaddingBottom(1)

// FormTheme returns the huh form theme matching the TUI palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorBlue)
	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorRed)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorBlue)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorBlue)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Background(ColorBlue).
		Foreground(lipgloss.Color("#1a1b26")).
		Bold(true)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Background(lipgloss.Color("#3b4261")).
		Foreground(lipgloss.Color("#a9b1d6"))
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorBlue)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorBlue)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(ColorGray)

	t.Blurred.Title = t.Blurred.Title.Foreground(ColorGray)
	t.Blurred.TextInput.Placeholder = t.Blurred.TextInput.Placeholder.Foreground(ColorGray)

	return t
}
