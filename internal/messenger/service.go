// Package messenger implements the chat client core: the conversation
// catalog, the open conversation's message sequence, and the simulated
// delivery lifecycle.
package messenger

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/config"
	"github.com/drift-im/drift/internal/core/identity"
)

// Service orchestrates the stores, the delivery simulator, and the
// session manager. All presentation-layer access goes through it.
type Service struct {
	convs   *ConversationStore
	msgs    *MessageStore
	sim     *DeliverySimulator
	session *identity.Manager
	log     zerolog.Logger
}

// New creates a Service seeded with the fixed conversation catalog.
func New(session *identity.Manager, timing config.Timing, log zerolog.Logger) *Service {
	convs := NewConversationStore(Catalog(), log.With().Str("component", "conversations").Logger())
	msgs := NewMessageStore(log.With().Str("component", "messages").Logger())
	sim := NewDeliverySimulator(msgs, convs, timing, log.With().Str("component", "simulator").Logger())

	return &Service{
		convs:   convs,
		msgs:    msgs,
		sim:     sim,
		session: session,
		log:     log,
	}
}

// Session returns the identity manager.
func (s *Service) Session() *identity.Manager {
	return s.session
}

// Conversations returns the filtered conversation list.
func (s *Service) Conversations(f Filter) []chat.Conversation {
	return s.convs.List(f)
}

// ActiveConversation returns the currently open conversation, if any.
func (s *Service) ActiveConversation() (chat.Conversation, bool) {
	id := s.convs.ActiveID()
	if id == "" {
		return chat.Conversation{}, false
	}

	conv, err := s.convs.Get(id)
	if err != nil {
		return chat.Conversation{}, false
	}
	return conv, true
}

// OpenConversation tears down any previously open conversation, seeds
// the message store from the conversation's history, and marks it read.
// Unknown ids leave an empty sequence and return
// chat.ErrConversationNotFound; the caller redirects to the list.
func (s *Service) OpenConversation(id string) ([]chat.Message, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, identity.ErrNoSession
	}

	// Tear down the previous conversation first so none of its pending
	// timers can touch the reseeded sequence.
	s.sim.CancelAll()

	conv, err := s.convs.Get(id)
	if err != nil {
		s.msgs.Reset()
		s.convs.ClearActive()
		return nil, err
	}

	s.msgs.Load(id, History(conv, user))
	s.convs.SetActive(id)
	s.convs.MarkRead(id)

	s.log.Debug().Str("conversation_id", id).Msg("opened conversation")
	return s.msgs.Snapshot(), nil
}

// CloseConversation evicts the open conversation's sequence and cancels
// its pending delivery timers.
func (s *Service) CloseConversation() {
	s.sim.CancelAll()
	s.msgs.Reset()
	s.convs.ClearActive()
}

// Thread returns the open conversation's message sequence.
func (s *Service) Thread() []chat.Message {
	return s.msgs.Snapshot()
}

// Send appends an outgoing message to the open conversation, updates
// the conversation summary, and starts the delivery chain. For the demo
// conversation it also schedules the simulated reply.
func (s *Service) Send(content string, kind chat.Kind) (chat.Message, error) {
	user, ok := s.session.Current()
	if !ok {
		return chat.Message{}, identity.ErrNoSession
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return chat.Message{}, fmt.Errorf("message content is empty")
	}
	if !kind.Valid() {
		return chat.Message{}, fmt.Errorf("unknown message kind %q", kind)
	}

	convID := s.msgs.ConversationID()
	if convID == "" {
		return chat.Message{}, fmt.Errorf("no open conversation")
	}

	msg := s.msgs.AppendOutgoing(content, kind, user)
	s.convs.RecordOutgoing(convID, msg.Content, msg.Timestamp)

	s.sim.Start(msg.ID)
	s.sim.ScheduleReply(convID)

	s.log.Debug().
		Str("conversation_id", convID).
		Str("message_id", msg.ID).
		Msg("message sent")

	return msg, nil
}

// MarkRead zeroes the unread state for a conversation. Idempotent.
func (s *Service) MarkRead(id string) {
	s.convs.MarkRead(id)
}

// Logout tears down the open conversation and clears the session.
func (s *Service) Logout(ctx context.Context) error {
	s.CloseConversation()
	return s.session.Logout(ctx)
}
