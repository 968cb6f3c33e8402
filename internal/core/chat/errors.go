package chat

import "errors"

// Sentinel errors for conversation and message operations.
var (
	// ErrConversationNotFound is returned when a conversation id does not
	// exist in the catalog. Callers redirect to the conversation list.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrStaleUpdate signals that an update targeted a message or
	// conversation that is no longer present. Call sites treat it as a
	// silent no-op rather than surfacing it.
	ErrStaleUpdate = errors.New("stale update")
)
