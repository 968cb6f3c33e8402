// Package identity manages the session user: who outgoing messages are
// attributed to, and the single record persisted between runs.
package identity

import "fmt"

// avatarBaseURL generates deterministic placeholder avatars from a seed.
const avatarBaseURL = "https://avatar.vercel.sh/"

// User is the logged-in identity.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Sender returns the display name to stamp on outgoing messages.
func (u User) Sender() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// ProfileUpdate is a partial profile edit. Empty fields keep their
// existing values.
type ProfileUpdate struct {
	DisplayName string
	Avatar      string
	Status      string
}

// Apply merges the update into u and returns the result.
func (p ProfileUpdate) Apply(u User) User {
	if p.DisplayName != "" {
		u.DisplayName = p.DisplayName
	}
	if p.Avatar != "" {
		u.Avatar = p.Avatar
	}
	if p.Status != "" {
		u.Status = p.Status
	}
	return u
}

// AvatarURL returns the placeholder avatar for the given seed.
func AvatarURL(seed string) string {
	return fmt.Sprintf("%s%s", avatarBaseURL, seed)
}
