package messenger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/identity"
)

var testUser = identity.User{ID: "u1", Username: "alice", DisplayName: "Alice"}

func newTestMessageStore() *MessageStore {
	return NewMessageStore(zerolog.Nop())
}

func TestMessageStore_Load(t *testing.T) {
	store := newTestMessageStore()

	history := []chat.Message{
		{ID: "1", Content: "hi", Status: chat.StatusRead, Kind: chat.KindText},
		{ID: "2", Content: "hello", Status: chat.StatusRead, Kind: chat.KindText},
	}

	gen := store.Load("1", history)
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, "1", store.ConversationID())
	assert.Len(t, store.Snapshot(), 2)

	// Loading another conversation replaces wholesale and bumps the
	// generation.
	gen2 := store.Load("2", nil)
	assert.Equal(t, uint64(2), gen2)
	assert.Empty(t, store.Snapshot())
}

func TestMessageStore_AppendOutgoing(t *testing.T) {
	store := newTestMessageStore()
	store.Load("1", nil)

	msg := store.AppendOutgoing("hello", chat.KindText, testUser)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, chat.StatusSending, msg.Status)
	assert.True(t, msg.Outgoing)
	assert.Equal(t, "Alice", msg.Sender.Name)
	assert.False(t, msg.Timestamp.IsZero())

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, msg.ID, snap[0].ID)

	// Insertion order is display order
	second := store.AppendOutgoing("again", chat.KindText, testUser)
	snap = store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, second.ID, snap[1].ID)
	assert.NotEqual(t, msg.ID, second.ID)
}

func TestMessageStore_UpdateStatus(t *testing.T) {
	t.Run("advances one step", func(t *testing.T) {
		store := newTestMessageStore()
		store.Load("1", nil)
		msg := store.AppendOutgoing("hello", chat.KindText, testUser)

		require.NoError(t, store.UpdateStatus(msg.ID, chat.StatusSent))
		assert.Equal(t, chat.StatusSent, store.Snapshot()[0].Status)
	})

	t.Run("missing message is stale", func(t *testing.T) {
		store := newTestMessageStore()
		store.Load("1", nil)

		err := store.UpdateStatus("ghost", chat.StatusSent)
		assert.True(t, errors.Is(err, chat.ErrStaleUpdate))
	})

	t.Run("illegal transition is dropped", func(t *testing.T) {
		store := newTestMessageStore()
		store.Load("1", nil)
		msg := store.AppendOutgoing("hello", chat.KindText, testUser)

		// Skipping straight to read is not allowed
		require.NoError(t, store.UpdateStatus(msg.ID, chat.StatusRead))
		assert.Equal(t, chat.StatusSending, store.Snapshot()[0].Status)
	})

	t.Run("stale generation is dropped", func(t *testing.T) {
		store := newTestMessageStore()
		gen := store.Load("1", nil)
		msg := store.AppendOutgoing("hello", chat.KindText, testUser)

		store.Load("2", []chat.Message{{ID: msg.ID, Status: chat.StatusSending}})

		// Update scheduled under the old generation must not touch the
		// reseeded sequence, even with a colliding id.
		assert.False(t, store.updateStatusAt(gen, msg.ID, chat.StatusSent))
		assert.Equal(t, chat.StatusSending, store.Snapshot()[0].Status)
	})
}

func TestMessageStore_AppendIncoming(t *testing.T) {
	store := newTestMessageStore()
	gen := store.Load("1", nil)

	store.AppendIncoming(chat.Message{ID: "r1", Content: "hey", Status: chat.StatusDelivered})
	assert.Len(t, store.Snapshot(), 1)

	// Generation-checked append after teardown is dropped
	store.Reset()
	assert.False(t, store.appendIncomingAt(gen, chat.Message{ID: "r2"}))
	assert.Empty(t, store.Snapshot())
}

func TestMessageStore_SnapshotIsolation(t *testing.T) {
	store := newTestMessageStore()
	store.Load("1", nil)
	msg := store.AppendOutgoing("hello", chat.KindText, testUser)

	before := store.Snapshot()
	require.NoError(t, store.UpdateStatus(msg.ID, chat.StatusSent))

	// The earlier snapshot is untouched by the copy-on-write update.
	assert.Equal(t, chat.StatusSending, before[0].Status)
	assert.Equal(t, chat.StatusSent, store.Snapshot()[0].Status)
}

func TestMessageStore_Reset(t *testing.T) {
	store := newTestMessageStore()
	store.Load("1", []chat.Message{{ID: "1"}})

	store.Reset()

	assert.Empty(t, store.Snapshot())
	assert.Empty(t, store.ConversationID())
}
