package tui

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/drift-im/drift/internal/core/identity"
	"github.com/drift-im/drift/internal/styles"
	"github.com/drift-im/drift/pkg/randid"
)

// Status options offered in the profile editor.
var statusOptions = []string{"Available", "Away", "Busy", "Do Not Disturb"}

// ProfileForm wraps a huh.Form for editing the signed-in profile.
type ProfileForm struct {
	form        *huh.Form
	displayName string
	status      string
	newAvatar   bool
}

// NewProfileForm creates a profile form pre-filled from the user.
func NewProfileForm(u identity.User) *ProfileForm {
	f := &ProfileForm{
		displayName: u.DisplayName,
		status:      u.Status,
	}

	options := make([]huh.Option[string], len(statusOptions))
	for i, s := range statusOptions {
		options[i] = huh.NewOption(s, s)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Display Name").
				Value(&f.displayName).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("display name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(options...).
				Value(&f.status),
			huh.NewConfirm().
				Title("Regenerate avatar?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.newAvatar),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *ProfileForm) Form() *huh.Form {
	return f.form
}

// SetForm stores the updated form returned by huh's Update.
func (f *ProfileForm) SetForm(form *huh.Form) {
	f.form = form
}

// Completed returns true once the user submitted the form.
func (f *ProfileForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// Result returns the profile update to apply. A fresh random avatar
// seed is generated when the user asked for one.
func (f *ProfileForm) Result() identity.ProfileUpdate {
	update := identity.ProfileUpdate{
		DisplayName: f.displayName,
		Status:      f.status,
	}
	if f.newAvatar {
		update.Avatar = identity.AvatarURL(randid.Generate(8))
	}
	return update
}

// View renders the form.
func (f *ProfileForm) View() string {
	return f.form.View()
}
