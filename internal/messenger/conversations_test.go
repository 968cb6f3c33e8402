package messenger

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-im/drift/internal/core/chat"
)

func seedConversations() []chat.Conversation {
	return []chat.Conversation{
		{ID: "1", Name: "Alice Johnson", Presence: chat.PresenceOnline},
		{ID: "2", Name: "Bob Smith", UnreadCount: 1, LastMessage: &chat.LastMessage{Content: "hi", Read: false}},
		{ID: "3", Name: "Team Project", Group: true},
		{ID: "4", Name: "Marketing Team", Group: true},
	}
}

func newTestConversationStore() *ConversationStore {
	return NewConversationStore(seedConversations(), zerolog.Nop())
}

func TestConversationStore_List(t *testing.T) {
	store := newTestConversationStore()

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{
			name:    "no filter returns all in insertion order",
			filter:  Filter{},
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "direct partition",
			filter:  Filter{Partition: PartitionDirect},
			wantIDs: []string{"1", "2"},
		},
		{
			name:    "group partition",
			filter:  Filter{Partition: PartitionGroups},
			wantIDs: []string{"3", "4"},
		},
		{
			name:    "query is case-insensitive substring",
			filter:  Filter{Query: "tEaM"},
			wantIDs: []string{"3", "4"},
		},
		{
			name:    "query combined with partition",
			filter:  Filter{Query: "team", Partition: PartitionGroups},
			wantIDs: []string{"3", "4"},
		},
		{
			name:    "no matches",
			filter:  Filter{Query: "zebra"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.List(tt.filter)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestConversationStore_Get(t *testing.T) {
	store := newTestConversationStore()

	c, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", c.Name)

	_, err = store.Get("999")
	assert.True(t, errors.Is(err, chat.ErrConversationNotFound))
}

func TestConversationStore_MarkRead(t *testing.T) {
	store := newTestConversationStore()

	store.MarkRead("2")

	c, err := store.Get("2")
	require.NoError(t, err)
	assert.Zero(t, c.UnreadCount)
	require.NotNil(t, c.LastMessage)
	assert.True(t, c.LastMessage.Read)

	// Idempotent: a second call yields the same state
	store.MarkRead("2")
	again, err := store.Get("2")
	require.NoError(t, err)
	assert.Equal(t, c, again)

	// Unknown id is a silent no-op
	store.MarkRead("999")
}

func TestConversationStore_RecordOutgoing(t *testing.T) {
	store := newTestConversationStore()
	ts := time.Now()

	store.RecordOutgoing("1", "hello", ts)

	c, err := store.Get("1")
	require.NoError(t, err)
	require.NotNil(t, c.LastMessage)
	assert.Equal(t, "hello", c.LastMessage.Content)
	assert.Equal(t, ts, c.LastMessage.Timestamp)
	assert.True(t, c.LastMessage.Read)
}

func TestConversationStore_RecordIncoming(t *testing.T) {
	t.Run("open conversation is read", func(t *testing.T) {
		store := newTestConversationStore()
		store.SetActive("1")

		store.RecordIncoming("1", "hey", "Alice Johnson", time.Now())

		c, _ := store.Get("1")
		require.NotNil(t, c.LastMessage)
		assert.True(t, c.LastMessage.Read)
		assert.Zero(t, c.UnreadCount)
	})

	t.Run("closed conversation is unread", func(t *testing.T) {
		store := newTestConversationStore()
		store.SetActive("1")

		store.RecordIncoming("4", "new campaign", "Emily", time.Now())

		c, _ := store.Get("4")
		require.NotNil(t, c.LastMessage)
		assert.False(t, c.LastMessage.Read)
		assert.Equal(t, 1, c.UnreadCount)
	})

	t.Run("sender label only on group chats", func(t *testing.T) {
		store := newTestConversationStore()

		store.RecordIncoming("1", "hey", "Alice Johnson", time.Now())
		direct, _ := store.Get("1")
		assert.Empty(t, direct.LastMessage.Sender)

		store.RecordIncoming("3", "standup?", "Carol", time.Now())
		group, _ := store.Get("3")
		assert.Equal(t, "Carol", group.LastMessage.Sender)
	})
}

func TestConversationStore_SnapshotIsolation(t *testing.T) {
	store := newTestConversationStore()

	snap := store.List(Filter{})
	store.RecordOutgoing("2", "changed", time.Now())

	// Mutating the store must not reach through previously returned
	// snapshots.
	for _, c := range snap {
		if c.ID == "2" {
			assert.Equal(t, "hi", c.LastMessage.Content)
		}
	}
}
