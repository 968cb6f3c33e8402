package messenger

import (
	"time"

	"github.com/drift-im/drift/internal/core/chat"
	"github.com/drift-im/drift/internal/core/identity"
)

// Catalog returns the fixed conversation catalog the store is seeded
// with at startup. Timestamps are relative to now so the list renders
// plausible recency.
func Catalog() []chat.Conversation {
	now := time.Now()

	return []chat.Conversation{
		{
			ID:       "1",
			Name:     "Alice Johnson",
			Avatar:   identity.AvatarURL("alice"),
			Presence: chat.PresenceOnline,
			LastMessage: &chat.LastMessage{
				Content:   "Hey, how are you doing today?",
				Timestamp: now.Add(-5 * time.Minute),
				Read:      true,
			},
		},
		{
			ID:          "2",
			Name:        "Bob Smith",
			Avatar:      identity.AvatarURL("bob"),
			Presence:    chat.PresenceOffline,
			UnreadCount: 1,
			LastMessage: &chat.LastMessage{
				Content:   "Can we schedule a meeting tomorrow?",
				Timestamp: now.Add(-30 * time.Minute),
				Read:      false,
			},
		},
		{
			ID:     "3",
			Name:   "Team Project",
			Avatar: identity.AvatarURL("team"),
			Group:  true,
			LastMessage: &chat.LastMessage{
				Content:   "Let's discuss the new features",
				Timestamp: now.Add(-2 * time.Hour),
				Sender:    "Carol",
				Read:      true,
			},
		},
		{
			ID:       "4",
			Name:     "David Wilson",
			Avatar:   identity.AvatarURL("david"),
			Presence: chat.PresenceAway,
			LastMessage: &chat.LastMessage{
				Content:   "Thanks for your help!",
				Timestamp: now.Add(-24 * time.Hour),
				Read:      true,
			},
		},
		{
			ID:     "5",
			Name:   "Marketing Team",
			Avatar: identity.AvatarURL("marketing"),
			Group:  true,
			LastMessage: &chat.LastMessage{
				Content:   "New campaign starting next week",
				Timestamp: now.Add(-48 * time.Hour),
				Sender:    "Emily",
				Read:      true,
			},
		},
	}
}

// History returns the mock message sequence for a conversation. In a
// real client this would be a paginated fetch.
func History(conv chat.Conversation, self identity.User) []chat.Message {
	now := time.Now()

	peer := chat.Sender{ID: conv.ID, Name: conv.Name, Avatar: conv.Avatar}
	me := chat.Sender{ID: self.ID, Name: "You"}

	in := func(id, content string, age time.Duration) chat.Message {
		return chat.Message{
			ID:        id,
			Content:   content,
			Sender:    peer,
			Timestamp: now.Add(-age),
			Status:    chat.StatusRead,
			Kind:      chat.KindText,
		}
	}
	out := func(id, content string, age time.Duration) chat.Message {
		return chat.Message{
			ID:        id,
			Content:   content,
			Sender:    me,
			Outgoing:  true,
			Timestamp: now.Add(-age),
			Status:    chat.StatusRead,
			Kind:      chat.KindText,
		}
	}

	switch conv.ID {
	case "2":
		return []chat.Message{
			in("1", "Hi there! How are you?", time.Hour),
			out("2", "I'm doing well, thanks for asking! What about you?", 55*time.Minute),
			in("3", "I'm good too. Just working on some projects.", 50*time.Minute),
			out("4", "That sounds interesting! What kind of projects?", 45*time.Minute),
			in("5", "I'm planning the quarterly review meeting. Are you available tomorrow at 2 PM?", 40*time.Minute),
			out("6", "Yes, that works for me. Should I prepare anything specific?", 38*time.Minute),
			withKind(in("7", "meeting_agenda.docx", 35*time.Minute), chat.KindFile),
			withStatus(in("8", "Just review this agenda and bring your project updates.", 30*time.Minute), chat.StatusDelivered),
		}

	case "3":
		carol := chat.Sender{ID: "carol-id", Name: "Carol", Avatar: identity.AvatarURL("carol")}
		david := chat.Sender{ID: "david-id", Name: "David", Avatar: identity.AvatarURL("david")}
		from := func(id, content string, sender chat.Sender, age time.Duration) chat.Message {
			m := in(id, content, age)
			m.Sender = sender
			return m
		}

		return []chat.Message{
			from("1", "Hi team, let's discuss the project roadmap", carol, 120*time.Minute),
			out("2", "I think we should prioritize the user authentication feature", 115*time.Minute),
			from("3", "I agree. Security should be our first priority.", david, 110*time.Minute),
			withKind(from("4", "project_roadmap.pdf", carol, 100*time.Minute), chat.KindFile),
			from("5", "Here's the current roadmap for reference", carol, 99*time.Minute),
			from("6", "Let's meet tomorrow to finalize the plan.", david, 80*time.Minute),
			out("7", "Sounds good to me. What time works for everyone?", 75*time.Minute),
			from("8", "How about 10 AM?", carol, 60*time.Minute),
			out("9", "That works for me.", 55*time.Minute),
			from("10", "10 AM is perfect.", david, 50*time.Minute),
		}

	case "1", "4", "5":
		audio := out("9", "Voice message", 10*time.Minute)
		audio.Kind = chat.KindAudio
		audio.DurationSecs = 45
		audio.Status = chat.StatusDelivered

		return []chat.Message{
			in("1", "Hi there! How are you?", time.Hour),
			out("2", "I'm doing well, thanks for asking! What about you?", 55*time.Minute),
			in("3", "I'm good too. Just working on some projects.", 50*time.Minute),
			out("4", "That sounds interesting! What kind of projects?", 45*time.Minute),
			in("5", "Mostly web development and some design work.", 30*time.Minute),
			withKind(in("6", "Check out this mockup I created!", 29*time.Minute), chat.KindImage),
			out("7", "That looks awesome! I love the color scheme.", 20*time.Minute),
			withKind(in("8", "project_document.pdf", 15*time.Minute), chat.KindFile),
			audio,
			in("10", "Let's catch up later this week!", 5*time.Minute),
		}
	}

	return nil
}

func withKind(m chat.Message, k chat.Kind) chat.Message {
	m.Kind = k
	return m
}

func withStatus(m chat.Message, s chat.Status) chat.Message {
	m.Status = s
	return m
}
