package tui

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/drift-im/drift/internal/styles"
)

// LoginForm wraps a huh.Form for signing in.
type LoginForm struct {
	form     *huh.Form
	username string
	password string
}

// NewLoginForm creates a fresh login form.
func NewLoginForm() *LoginForm {
	f := &LoginForm{}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("your handle").
				Value(&f.username).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *LoginForm) Form() *huh.Form {
	return f.form
}

// SetForm stores the updated form returned by huh's Update.
func (f *LoginForm) SetForm(form *huh.Form) {
	f.form = form
}

// Completed returns true once the user submitted the form.
func (f *LoginForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Credentials returns the entered username and password.
func (f *LoginForm) Credentials() (username, password string) {
	return f.username, f.password
}

// View renders the form.
func (f *LoginForm) View() string {
	return f.form.View()
}
