package messenger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/config"
	"github.com/drift-im/drift/internal/core/identity"
)

// memUserStore implements identity.Store in memory for testing.
type memUserStore struct {
	user *identity.User
}

func (s *memUserStore) Load(_ context.Context) (identity.User, error) {
	if s.user == nil {
		return identity.User{}, identity.ErrNoSession
	}
	return *s.user, nil
}

func (s *memUserStore) Save(_ context.Context, u identity.User) error {
	s.user = &u
	return nil
}

func (s *memUserStore) Clear(_ context.Context) error {
	s.user = nil
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	session := identity.NewManager(&memUserStore{}, 0, zerolog.Nop())
	timing := config.Timing{DeliveryStepMS: testStepMS, ReplyDelayMS: testReplyMS}
	svc := New(session, timing, zerolog.Nop())

	t.Cleanup(svc.CloseConversation)
	return svc
}

func loggedInService(t *testing.T) *Service {
	t.Helper()

	svc := newTestService(t)
	_, err := svc.Session().Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	return svc
}

func TestService_OpenConversation(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.OpenConversation("1")
		assert.True(t, errors.Is(err, identity.ErrNoSession))
	})

	t.Run("seeds history and marks read", func(t *testing.T) {
		svc := loggedInService(t)

		// Conversation 2 starts with one unread message
		before := svc.Conversations(Filter{})
		var unread int
		for _, c := range before {
			if c.ID == "2" {
				unread = c.UnreadCount
			}
		}
		require.Equal(t, 1, unread)

		msgs, err := svc.OpenConversation("2")
		require.NoError(t, err)
		assert.NotEmpty(t, msgs)

		conv, ok := svc.ActiveConversation()
		require.True(t, ok)
		assert.Zero(t, conv.UnreadCount)
		assert.True(t, conv.LastMessage.Read)
	})

	t.Run("unknown id leaves an empty sequence", func(t *testing.T) {
		svc := loggedInService(t)

		msgs, err := svc.OpenConversation("999")
		assert.True(t, errors.Is(err, chat.ErrConversationNotFound))
		assert.Empty(t, msgs)
		assert.Empty(t, svc.Thread())

		_, ok := svc.ActiveConversation()
		assert.False(t, ok)
	})

	t.Run("switching evicts the previous sequence", func(t *testing.T) {
		svc := loggedInService(t)

		first, err := svc.OpenConversation("1")
		require.NoError(t, err)

		second, err := svc.OpenConversation("3")
		require.NoError(t, err)

		assert.NotEqual(t, len(first), 0)
		assert.Equal(t, len(second), len(svc.Thread()))
	})
}

func TestService_Send(t *testing.T) {
	t.Run("requires an open conversation", func(t *testing.T) {
		svc := loggedInService(t)

		_, err := svc.Send("hello", chat.KindText)
		require.Error(t, err)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		svc := loggedInService(t)
		_, err := svc.OpenConversation("1")
		require.NoError(t, err)

		_, err = svc.Send("   ", chat.KindText)
		require.Error(t, err)
	})

	t.Run("updates summary synchronously", func(t *testing.T) {
		svc := loggedInService(t)
		_, err := svc.OpenConversation("2")
		require.NoError(t, err)

		msg, err := svc.Send("hello", chat.KindText)
		require.NoError(t, err)
		assert.Equal(t, chat.StatusSending, msg.Status)

		conv, ok := svc.ActiveConversation()
		require.True(t, ok)
		assert.Equal(t, "hello", conv.LastMessage.Content)
		assert.Equal(t, msg.Timestamp, conv.LastMessage.Timestamp)
		assert.True(t, conv.LastMessage.Read)
	})
}

// TestService_DeliveryScenario walks the full lifecycle: send in the
// demo conversation, watch the status climb to read, then receive the
// injected reply.
func TestService_DeliveryScenario(t *testing.T) {
	svc := loggedInService(t)

	_, err := svc.OpenConversation("1")
	require.NoError(t, err)

	msg, err := svc.Send("hello", chat.KindText)
	require.NoError(t, err)
	assert.Equal(t, chat.StatusSending, msg.Status)

	find := func(id string) (chat.Message, bool) {
		for _, m := range svc.Thread() {
			if m.ID == id {
				return m, true
			}
		}
		return chat.Message{}, false
	}

	require.Eventually(t, func() bool {
		m, ok := find(msg.ID)
		return ok && m.Status == chat.StatusRead
	}, 2*time.Second, 2*time.Millisecond, "message never reached read")

	require.Eventually(t, func() bool {
		for _, m := range svc.Thread() {
			if !m.Outgoing && m.Content == replyContent {
				return true
			}
		}
		return false
	}, 2*time.Second, 2*time.Millisecond, "reply never injected")

	conv, ok := svc.ActiveConversation()
	require.True(t, ok)
	assert.Equal(t, replyContent, conv.LastMessage.Content)
}

func TestService_TeardownCancelsTimers(t *testing.T) {
	svc := loggedInService(t)

	_, err := svc.OpenConversation("1")
	require.NoError(t, err)

	msg, err := svc.Send("hello", chat.KindText)
	require.NoError(t, err)

	// Navigate away before any delivery timer fires
	_, err = svc.OpenConversation("2")
	require.NoError(t, err)

	time.Sleep(5 * testStepMS * time.Millisecond)

	// The detached message is gone and conversation 2's thread saw no
	// stray mutations from conversation 1's chain.
	for _, m := range svc.Thread() {
		assert.NotEqual(t, msg.ID, m.ID)
	}

	// Reply injection for conversation 1 was cancelled with the rest
	time.Sleep(3 * testReplyMS * time.Millisecond)
	conv := svc.Conversations(Filter{Query: "alice"})
	require.Len(t, conv, 1)
	assert.Equal(t, "hello", conv[0].LastMessage.Content)
}

func TestService_Logout(t *testing.T) {
	svc := loggedInService(t)

	_, err := svc.OpenConversation("1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	assert.Empty(t, svc.Thread())
	_, ok := svc.Session().Current()
	assert.False(t, ok)
	_, ok = svc.ActiveConversation()
	assert.False(t, ok)
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 5)

	var groups int
	for _, c := range catalog {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Name)
		require.NotNil(t, c.LastMessage)
		if c.Group {
			groups++
			assert.NotEmpty(t, c.LastMessage.Sender)
		}
	}
	assert.Equal(t, 2, groups)
}

func TestHistory(t *testing.T) {
	self := identity.User{ID: "u1", Username: "alice"}

	for _, c := range Catalog() {
		t.Run(c.Name, func(t *testing.T) {
			msgs := History(c, self)
			require.NotEmpty(t, msgs)

			for i, m := range msgs {
				assert.NotEmpty(t, m.ID)
				assert.True(t, m.Kind.Valid())
				if m.Outgoing {
					assert.Equal(t, self.ID, m.Sender.ID)
				}
				if m.IsAudio() {
					assert.Positive(t, m.DurationSecs)
				}
				if i > 0 {
					assert.False(t, m.Timestamp.Before(msgs[i-1].Timestamp),
						"history must be in chronological order")
				}
			}
		})
	}
}
