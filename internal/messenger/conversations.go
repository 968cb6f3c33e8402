package messenger

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/drift-im/drift/internal/core/chat"
)

// Partition selects the group/direct slice of the conversation list.
type Partition int

const (
	PartitionAll Partition = iota
	PartitionDirect
	PartitionGroups
)

// Filter narrows the conversation list. Query is a case-insensitive
// substring match against the display name.
type Filter struct {
	Query     string
	Partition Partition
}

func (f Filter) matches(c chat.Conversation) bool {
	switch f.Partition {
	case PartitionDirect:
		if c.Group {
			return false
		}
	case PartitionGroups:
		if !c.Group {
			return false
		}
	}

	if f.Query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Query))
}

// ConversationStore holds the conversation list and per-conversation
// metadata. Order is insertion order and is never re-sorted, keeping
// list output deterministic.
type ConversationStore struct {
	log zerolog.Logger

	mu       sync.RWMutex
	convs    []chat.Conversation
	activeID string
}

// NewConversationStore creates a store seeded with the given catalog.
func NewConversationStore(seed []chat.Conversation, log zerolog.Logger) *ConversationStore {
	convs := make([]chat.Conversation, len(seed))
	for i, c := range seed {
		convs[i] = cloneConversation(c)
	}
	return &ConversationStore{convs: convs, log: log}
}

// List returns the conversations matching the filter, in insertion order.
func (s *ConversationStore) List(f Filter) []chat.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []chat.Conversation
	for _, c := range s.convs {
		if f.matches(c) {
			out = append(out, cloneConversation(c))
		}
	}
	return out
}

// Get returns the conversation with the given id.
// Returns chat.ErrConversationNotFound if unknown.
func (s *ConversationStore) Get(id string) (chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.convs {
		if c.ID == id {
			return cloneConversation(c), nil
		}
	}
	return chat.Conversation{}, chat.ErrConversationNotFound
}

// SetActive marks the conversation as currently open. Incoming records
// for the active conversation are immediately visible and therefore
// marked read.
func (s *ConversationStore) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// ClearActive marks no conversation as open.
func (s *ConversationStore) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

// ActiveID returns the id of the currently open conversation.
func (s *ConversationStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// MarkRead zeroes the unread counter and marks the last-message summary
// read. Idempotent; unknown ids are a silent no-op.
func (s *ConversationStore) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return
	}

	c.UnreadCount = 0
	if c.LastMessage != nil {
		c.LastMessage.Read = true
	}
}

// RecordOutgoing replaces the last-message summary after the session
// user sends a message. Read is true since the author has seen it.
func (s *ConversationStore) RecordOutgoing(id, content string, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return
	}

	c.LastMessage = &chat.LastMessage{
		Content:   content,
		Timestamp: ts,
		Read:      true,
	}
}

// RecordIncoming replaces the last-message summary after a remote
// message arrives. Read reflects whether the conversation is currently
// open; closed conversations also gain an unread count.
func (s *ConversationStore) RecordIncoming(id, content, sender string, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return
	}

	open := id == s.activeID

	summary := &chat.LastMessage{
		Content:   content,
		Timestamp: ts,
		Read:      open,
	}
	if c.Group {
		summary.Sender = sender
	}
	c.LastMessage = summary

	if !open {
		c.UnreadCount++
	}
}

// find returns a pointer into the backing slice. Callers hold s.mu.
func (s *ConversationStore) find(id string) *chat.Conversation {
	for i := range s.convs {
		if s.convs[i].ID == id {
			return &s.convs[i]
		}
	}
	return nil
}

// cloneConversation copies c including its last-message summary so
// callers cannot mutate store state through the snapshot.
func cloneConversation(c chat.Conversation) chat.Conversation {
	if c.LastMessage != nil {
		lm := *c.LastMessage
		c.LastMessage = &lm
	}
	return c
}
