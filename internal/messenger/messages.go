package messenger

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/identity"
)

// MessageStore owns the in-memory message sequence for the single open
// conversation. Switching conversations discards the previous sequence.
//
// Mutations are copy-on-write: the stored slice is never modified in
// place, so snapshots handed out earlier stay valid. Each Load/Reset
// bumps a generation counter; timer callbacks carry the generation they
// were scheduled under and are dropped on mismatch, which is what makes
// a cancelled timer that already fired harmless.
type MessageStore struct {
	log zerolog.Logger

	mu     sync.RWMutex
	convID string
	gen    uint64
	msgs   []chat.Message
}

// NewMessageStore creates an empty message store.
func NewMessageStore(log zerolog.Logger) *MessageStore {
	return &MessageStore{log: log}
}

// Load replaces the sequence wholesale with the given conversation
// history and returns the new generation.
func (s *MessageStore) Load(conversationID string, history []chat.Message) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.convID = conversationID
	s.msgs = slices.Clone(history)
	s.gen++

	s.log.Debug().
		Str("conversation_id", conversationID).
		Int("messages", len(history)).
		Msg("loaded conversation")

	return s.gen
}

// Reset evicts the current sequence. Pending timer callbacks scheduled
// against the old generation become no-ops.
func (s *MessageStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.convID = ""
	s.msgs = nil
	s.gen++
}

// ConversationID returns the id of the currently open conversation, or
// empty when none is open.
func (s *MessageStore) ConversationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.convID
}

// Generation returns the current load generation.
func (s *MessageStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Snapshot returns a copy of the current sequence in display order.
func (s *MessageStore) Snapshot() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.msgs)
}

// AppendOutgoing constructs a message in "sending" state authored by
// the session user, appends it, and returns the created record.
func (s *MessageStore) AppendOutgoing(content string, kind chat.Kind, user identity.User) chat.Message {
	msg := chat.Message{
		ID:      uuid.NewString(),
		Content: content,
		Sender: chat.Sender{
			ID:     user.ID,
			Name:   user.Sender(),
			Avatar: user.Avatar,
		},
		Outgoing:  true,
		Timestamp: time.Now(),
		Status:    chat.StatusSending,
		Kind:      kind,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]chat.Message, 0, len(s.msgs)+1)
	next = append(next, s.msgs...)
	s.msgs = append(next, msg)

	return msg
}

// AppendIncoming appends a message authored by a remote party.
func (s *MessageStore) AppendIncoming(msg chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(msg)
}

// appendIncomingAt appends only if gen still matches the current load
// generation. Returns false when the conversation was torn down.
func (s *MessageStore) appendIncomingAt(gen uint64, msg chat.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	s.append(msg)
	return true
}

// append adds msg to a fresh copy of the sequence. Callers hold s.mu.
func (s *MessageStore) append(msg chat.Message) {
	next := make([]chat.Message, 0, len(s.msgs)+1)
	next = append(next, s.msgs...)
	s.msgs = append(next, msg)
}

// UpdateStatus replaces the status of the message with the given id.
// Returns chat.ErrStaleUpdate when the message is no longer present;
// illegal transitions (regressions, skips, updates to a failed message)
// are dropped silently.
func (s *MessageStore) UpdateStatus(id string, status chat.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateStatus(id, status)
}

// updateStatusAt applies the status change only if gen still matches
// the current load generation. Returns false when the update was
// dropped, which tells the delivery chain to stop.
func (s *MessageStore) updateStatusAt(gen uint64, id string, status chat.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	return s.updateStatus(id, status) == nil
}

// updateStatus performs the copy-on-write replacement. Callers hold s.mu.
func (s *MessageStore) updateStatus(id string, status chat.Status) error {
	idx := -1
	for i := range s.msgs {
		if s.msgs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return chat.ErrStaleUpdate
	}

	if !s.msgs[idx].Status.CanAdvanceTo(status) {
		s.log.Debug().
			Str("message_id", id).
			Str("from", string(s.msgs[idx].Status)).
			Str("to", string(status)).
			Msg("dropping illegal status transition")
		return nil
	}

	next := slices.Clone(s.msgs)
	next[idx].Status = status
	s.msgs = next

	return nil
}
