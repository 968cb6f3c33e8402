package messenger

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/config"
)

const (
	testStepMS  = 20
	testReplyMS = 60
)

func newTestSimulator(t *testing.T) (*DeliverySimulator, *MessageStore, *ConversationStore) {
	t.Helper()

	msgs := NewMessageStore(zerolog.Nop())
	convs := NewConversationStore(Catalog(), zerolog.Nop())
	timing := config.Timing{DeliveryStepMS: testStepMS, ReplyDelayMS: testReplyMS}
	sim := NewDeliverySimulator(msgs, convs, timing, zerolog.Nop())

	t.Cleanup(sim.CancelAll)
	return sim, msgs, convs
}

func statusOf(store *MessageStore, id string) chat.Status {
	for _, m := range store.Snapshot() {
		if m.ID == id {
			return m.Status
		}
	}
	return ""
}

func TestSimulator_ChainReachesRead(t *testing.T) {
	sim, msgs, _ := newTestSimulator(t)
	msgs.Load("1", nil)
	msg := msgs.AppendOutgoing("hello", chat.KindText, testUser)

	require.True(t, sim.Start(msg.ID))
	assert.Equal(t, chat.StatusSending, statusOf(msgs, msg.ID))

	require.Eventually(t, func() bool {
		return statusOf(msgs, msg.ID) == chat.StatusRead
	}, 2*time.Second, 2*time.Millisecond)
}

func TestSimulator_ObservedOrderIsMonotonic(t *testing.T) {
	sim, msgs, _ := newTestSimulator(t)
	msgs.Load("1", nil)
	msg := msgs.AppendOutgoing("hello", chat.KindText, testUser)

	require.True(t, sim.Start(msg.ID))

	// Sample the status until the chain completes and assert the
	// observed sequence never regresses or skips.
	rank := map[chat.Status]int{
		chat.StatusSending:   0,
		chat.StatusSent:      1,
		chat.StatusDelivered: 2,
		chat.StatusRead:      3,
	}

	var observed []chat.Status
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := statusOf(msgs, msg.ID)
		if len(observed) == 0 || observed[len(observed)-1] != st {
			observed = append(observed, st)
		}
		if st == chat.StatusRead {
			break
		}
		time.Sleep(time.Millisecond)
	}

	require.Equal(t, chat.StatusRead, observed[len(observed)-1])
	for i := 1; i < len(observed); i++ {
		assert.Equal(t, rank[observed[i-1]]+1, rank[observed[i]],
			"transition %s -> %s skipped or regressed", observed[i-1], observed[i])
	}
}

func TestSimulator_StartIsOncePerMessage(t *testing.T) {
	sim, msgs, _ := newTestSimulator(t)
	msgs.Load("1", nil)
	msg := msgs.AppendOutgoing("hello", chat.KindText, testUser)

	assert.True(t, sim.Start(msg.ID))
	assert.False(t, sim.Start(msg.ID))
}

func TestSimulator_CancelStopsChain(t *testing.T) {
	sim, msgs, _ := newTestSimulator(t)
	msgs.Load("1", nil)
	msg := msgs.AppendOutgoing("hello", chat.KindText, testUser)

	require.True(t, sim.Start(msg.ID))
	sim.CancelAll()

	// Wait well past all three step delays; no transition may apply.
	time.Sleep(5 * testStepMS * time.Millisecond)
	assert.Equal(t, chat.StatusSending, statusOf(msgs, msg.ID))
}

func TestSimulator_StaleGenerationStopsChain(t *testing.T) {
	sim, msgs, _ := newTestSimulator(t)
	msgs.Load("1", nil)
	msg := msgs.AppendOutgoing("hello", chat.KindText, testUser)

	require.True(t, sim.Start(msg.ID))

	// Reseed the store without cancelling: the queued timer fires but
	// must not touch the new sequence, even with the same message id.
	msgs.Load("2", []chat.Message{{ID: msg.ID, Status: chat.StatusSending}})

	time.Sleep(5 * testStepMS * time.Millisecond)
	assert.Equal(t, chat.StatusSending, statusOf(msgs, msg.ID))
}

func TestSimulator_ReplyInjection(t *testing.T) {
	t.Run("demo conversation gets one reply", func(t *testing.T) {
		sim, msgs, convs := newTestSimulator(t)
		msgs.Load("1", nil)
		convs.SetActive("1")

		sim.ScheduleReply("1")

		require.Eventually(t, func() bool {
			return len(msgs.Snapshot()) == 1
		}, 2*time.Second, 2*time.Millisecond)

		snap := msgs.Snapshot()
		reply := snap[0]
		assert.False(t, reply.Outgoing)
		assert.Equal(t, chat.StatusDelivered, reply.Status)
		assert.Equal(t, "Alice Johnson", reply.Sender.Name)
		assert.Equal(t, replyContent, reply.Content)

		conv, err := convs.Get("1")
		require.NoError(t, err)
		require.NotNil(t, conv.LastMessage)
		assert.Equal(t, replyContent, conv.LastMessage.Content)
		assert.True(t, conv.LastMessage.Read)
	})

	t.Run("other conversations never reply", func(t *testing.T) {
		sim, msgs, _ := newTestSimulator(t)
		msgs.Load("2", nil)

		sim.ScheduleReply("2")

		time.Sleep(3 * testReplyMS * time.Millisecond)
		assert.Empty(t, msgs.Snapshot())
		assert.Zero(t, sim.InFlight())
	})

	t.Run("cancelled before firing", func(t *testing.T) {
		sim, msgs, convs := newTestSimulator(t)
		msgs.Load("1", nil)

		sim.ScheduleReply("1")
		sim.CancelAll()

		time.Sleep(3 * testReplyMS * time.Millisecond)
		assert.Empty(t, msgs.Snapshot())

		conv, err := convs.Get("1")
		require.NoError(t, err)
		assert.NotEqual(t, replyContent, conv.LastMessage.Content)
	})
}
