package ai

import (
	"context"

	"github.com/google/generative-ai-go/genai"
)

// Engine is the boundary to the generative model. Implementations are
// constructed once at process start and injected into the services that
// need them; nothing in this package reads credentials globally.
type Engine interface {
	// GenerateJSON submits a single blocking request and returns the raw
	// response text, which is expected (but not guaranteed) to parse as
	// JSON conforming to req.Schema. No retry is performed here.
	GenerateJSON(ctx context.Context, req GenerateRequest) (string, error)

	// StartChat opens a multi-turn session bound to the given system
	// instruction. The engine retains prior-turn context for the lifetime
	// of the returned Chat.
	StartChat(ctx context.Context, systemPrompt string) (Chat, error)
}

// Chat is one conversation handle. Callers own exactly one handle per
// active conversation and must serialize Send calls themselves.
type Chat interface {
	Send(ctx context.Context, message string) (string, error)
}

// GenerateRequest carries everything one structured-output call needs.
// Schema is enforced server-side by the model, not merely suggested in
// the prompt text.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	Schema       *genai.Schema
}
