package analysis

import (
	"context"
	"fmt"
	"strings"

	"estatematch/internal/ai"
)

// Service runs one listing evaluation end to end: validate input, build
// the prompt and contract, call the engine, validate what comes back.
type Service struct {
	engine ai.Engine
}

// NewService creates a Service using the given engine.
func NewService(engine ai.Engine) *Service {
	return &Service{engine: engine}
}

// Analyze maps (listing text, preferences) to a typed AnalysisResult.
// Input errors are rejected before any engine call; engine, parse and
// schema failures propagate unrecovered. No retry is performed.
func (s *Service) Analyze(ctx context.Context, listing string, prefs PreferenceProfile) (*AnalysisResult, error) {
	if strings.TrimSpace(listing) == "" {
		return nil, ErrEmptyListing
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.engine.GenerateJSON(ctx, ai.GenerateRequest{
		SystemPrompt: InstructionProfile(prefs.Mode),
		UserPrompt:   UserPrompt(listing, prefs),
		Schema:       ResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}

	return decodeResult(raw, listing)
}
