package chat

import "time"

// Presence represents the availability of a direct conversation's peer.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceOffline Presence = "offline"
)

// LastMessage is the denormalized summary of a conversation's most
// recent message, used for list rendering.
type LastMessage struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender,omitempty"` // display label, group chats only
	Read      bool      `json:"read"`
}

// Conversation is a named thread, direct or group.
type Conversation struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar,omitempty"`
	Group       bool         `json:"group"`
	Presence    Presence     `json:"presence,omitempty"`
	UnreadCount int          `json:"unread_count,omitempty"`
	LastMessage *LastMessage `json:"last_message,omitempty"`
}

// PresenceLabel returns the human readable presence for the header line.
// Group conversations have no presence.
func (c Conversation) PresenceLabel() string {
	switch c.Presence {
	case PresenceOnline:
		return "Online"
	case PresenceAway:
		return "Away"
	case PresenceOffline:
		return "Offline"
	}
	return ""
}
