package messenger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/config"
)

// Reply injection is a demo behavior scoped to one conversation,
// mirroring what a first remote correspondent would do. Deliberately
// not generalized.
const (
	replyConversationID = "1"
	replyContent        = "Thanks for the message! I'll get back to you soon."
)

// DeliverySimulator models the store-and-forward acknowledgement path a
// real transport would provide. Each outgoing message gets one
// cancellable chain of delayed transitions sent -> delivered -> read.
//
// Every scheduled step re-checks the message store's load generation
// before applying, so a timer that was already queued when the
// conversation was torn down has no observable effect.
type DeliverySimulator struct {
	msgs  *MessageStore
	convs *ConversationStore
	step  time.Duration
	reply time.Duration
	log   zerolog.Logger

	mu     sync.Mutex
	chains map[string]context.CancelFunc
}

// NewDeliverySimulator creates a simulator over the given stores.
func NewDeliverySimulator(msgs *MessageStore, convs *ConversationStore, timing config.Timing, log zerolog.Logger) *DeliverySimulator {
	return &DeliverySimulator{
		msgs:   msgs,
		convs:  convs,
		step:   timing.DeliveryStep(),
		reply:  timing.ReplyDelay(),
		log:    log,
		chains: make(map[string]context.CancelFunc),
	}
}

// Start schedules the delivery chain for the given outgoing message.
// At most one chain runs per message id; re-invocations are a no-op and
// return false.
func (s *DeliverySimulator) Start(messageID string) bool {
	s.mu.Lock()
	if _, inFlight := s.chains[messageID]; inFlight {
		s.mu.Unlock()
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.chains[messageID] = cancel
	s.mu.Unlock()

	gen := s.msgs.Generation()

	go func() {
		defer s.finish(messageID)
		s.runChain(ctx, gen, messageID)
	}()

	return true
}

// runChain advances the message through sent, delivered, and read, one
// step delay apart. Cancellation or a stale generation stops the chain;
// a stopped chain never resumes.
func (s *DeliverySimulator) runChain(ctx context.Context, gen uint64, messageID string) {
	for _, status := range []chat.Status{chat.StatusSent, chat.StatusDelivered, chat.StatusRead} {
		select {
		case <-time.After(s.step):
		case <-ctx.Done():
			return
		}

		if !s.msgs.updateStatusAt(gen, messageID, status) {
			s.log.Debug().Str("message_id", messageID).Msg("delivery chain detached, stopping")
			return
		}
	}
}

// ScheduleReply injects one incoming reply after the reply delay,
// authored by the conversation's remote party with status "delivered".
// Only the designated demo conversation replies; other ids are a no-op.
func (s *DeliverySimulator) ScheduleReply(conversationID string) {
	if conversationID != replyConversationID {
		return
	}

	conv, err := s.convs.Get(conversationID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	chainID := "reply:" + uuid.NewString()

	s.mu.Lock()
	s.chains[chainID] = cancel
	s.mu.Unlock()

	gen := s.msgs.Generation()

	go func() {
		defer s.finish(chainID)

		select {
		case <-time.After(s.reply):
		case <-ctx.Done():
			return
		}

		msg := chat.Message{
			ID:      uuid.NewString(),
			Content: replyContent,
			Sender: chat.Sender{
				ID:     conv.ID,
				Name:   conv.Name,
				Avatar: conv.Avatar,
			},
			Timestamp: time.Now(),
			Status:    chat.StatusDelivered,
			Kind:      chat.KindText,
		}

		if !s.msgs.appendIncomingAt(gen, msg) {
			s.log.Debug().Str("conversation_id", conversationID).Msg("reply injection detached, dropping")
			return
		}

		s.convs.RecordIncoming(conversationID, msg.Content, msg.Sender.Name, msg.Timestamp)
	}()
}

// CancelAll cancels every pending chain. Called on conversation switch
// and logout so stale timers cannot touch the reseeded sequence.
func (s *DeliverySimulator) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, cancel := range s.chains {
		cancel()
		delete(s.chains, id)
	}
}

// InFlight returns the number of pending chains.
func (s *DeliverySimulator) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chains)
}

// finish removes a completed chain's cancel handle.
func (s *DeliverySimulator) finish(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.chains[id]; ok {
		cancel()
		delete(s.chains, id)
	}
}
