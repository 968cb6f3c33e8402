// Package chat defines the conversation and message domain types.
package chat

import "time"

// Status represents the delivery lifecycle stage of a message.
type Status string

const (
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
)

// statusRank orders the happy-path statuses for monotonicity checks.
var statusRank = map[Status]int{
	StatusSending:   0,
	StatusSent:      1,
	StatusDelivered: 2,
	StatusRead:      3,
}

// CanAdvanceTo reports whether a message may transition from s to next.
// Statuses only move forward one step at a time along
// sending -> sent -> delivered -> read. Failed is absorbing and may be
// entered from any non-failed status.
func (s Status) CanAdvanceTo(next Status) bool {
	if s == StatusFailed {
		return false
	}
	if next == StatusFailed {
		return true
	}

	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}

	return to == from+1
}

// Kind discriminates the content variant of a message.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
	KindAudio Kind = "audio"
)

// Valid reports whether k is a known content kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindImage, KindFile, KindAudio:
		return true
	}
	return false
}

// Sender identifies the author of a message.
type Sender struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Message is a single entry in a conversation thread.
//
// Kind discriminates the payload: DurationSecs is only meaningful for
// audio messages and is zero otherwise.
type Message struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Sender       Sender    `json:"sender"`
	Outgoing     bool      `json:"outgoing"`
	Timestamp    time.Time `json:"timestamp"`
	Status       Status    `json:"status"`
	Kind         Kind      `json:"kind"`
	DurationSecs int       `json:"duration_secs,omitempty"`
}

// IsAudio reports whether the message carries an audio payload.
func (m Message) IsAudio() bool {
	return m.Kind == KindAudio
}

// Terminal reports whether the message status can no longer change.
func (m Message) Terminal() bool {
	return m.Status == StatusRead || m.Status == StatusFailed
}
