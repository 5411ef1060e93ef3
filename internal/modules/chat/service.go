package chat

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"estatematch/internal/ai"
)

// ListingCharLimit is the hard cutoff applied to the listing text before
// it is embedded in the session's system instruction. Fixed constant,
// plain character truncation, same discipline as the analysis prompt but
// with its own cap.
const ListingCharLimit = 20000

// Service creates listing-scoped chat sessions.
type Service struct {
	engine ai.Engine
}

// NewService creates a Service using the given engine.
func NewService(engine ai.Engine) *Service {
	return &Service{engine: engine}
}

// Session is one conversation bound to one listing. History is
// append-only and only the owning caller may append; a second Send before
// the first resolves must be serialized by that caller. Discarding the
// handle discards everything — nothing is persisted.
type Session struct {
	listing string
	chat    ai.Chat
	turns   []Turn
}

// NewSession binds a session to the listing text and seeds it with the
// scoped instruction profile. The returned session already contains the
// synthetic greeting turn.
func (s *Service) NewSession(ctx context.Context, listing string) (*Session, error) {
	if strings.TrimSpace(listing) == "" {
		return nil, ErrEmptyListing
	}

	chat, err := s.engine.StartChat(ctx, sessionInstruction(listing))
	if err != nil {
		return nil, fmt.Errorf("start chat session: %w", err)
	}

	return &Session{
		listing: listing,
		chat:    chat,
		turns:   []Turn{{Role: RoleModel, Text: Greeting}},
	}, nil
}

// sessionInstruction is the narrower profile for follow-up questions:
// answer only from the listing, admit absence explicitly, keep outside
// knowledge out unless the user asks for it.
func sessionInstruction(listing string) string {
	return fmt.Sprintf(`You are answering follow-up questions about exactly one real estate listing.

RULES:
1. Answer ONLY using the listing text below.
2. If the listing does not contain the information, reply with a variation of "the listing doesn't mention that". Never guess.
3. Do not volunteer outside knowledge about the neighborhood or market unless the user explicitly asks for it.
4. Keep answers short and direct.

LISTING TEXT:
%s`, TruncateListing(listing, ListingCharLimit))
}

// TruncateListing applies the fixed character cap, backing off to the
// nearest rune boundary so the seed never ends in invalid UTF-8.
func TruncateListing(listing string, limit int) string {
	if len(listing) <= limit {
		return listing
	}
	for limit > 0 && !utf8.RuneStart(listing[limit]) {
		limit--
	}
	return listing[:limit]
}

// Send appends the user turn, submits it against the engine-retained
// session and appends the reply. A failed exchange is recovered locally:
// the error notice becomes a visible model turn, no error escapes, and
// the session remains usable.
func (sess *Session) Send(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	sess.turns = append(sess.turns, Turn{Role: RoleUser, Text: text})

	reply, err := sess.chat.Send(ctx, text)
	if err != nil {
		sess.turns = append(sess.turns, Turn{Role: RoleModel, Text: errorNotice})
		return errorNotice, nil
	}

	sess.turns = append(sess.turns, Turn{Role: RoleModel, Text: reply})
	return reply, nil
}

// History returns a copy of the turns so far, greeting first.
func (sess *Session) History() []Turn {
	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}
