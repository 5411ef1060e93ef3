package chat

import "errors"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Greeting opens every session. It is synthetic: shown to the user,
// never sent to the engine.
const Greeting = "Hi! I've read the listing. Ask me anything about it."

// errorNotice is appended locally when a turn cannot reach the engine.
// The session stays usable afterwards.
const errorNotice = "Error: Could not reach the AI."

var (
	// ErrEmptyListing is returned when a session is created without
	// listing text.
	ErrEmptyListing = errors.New("listing text is empty")

	// ErrEmptyMessage is returned for blank user turns.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSessionNotFound is returned by the registry for unknown or
	// discarded session ids.
	ErrSessionNotFound = errors.New("chat session not found")
)
