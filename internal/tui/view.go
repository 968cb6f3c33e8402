package tui

// Screen represents which screen is active.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRoster
	ScreenThread
	ScreenProfile
)
