package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/chronicler/pkg/chat"
	"github.com/jwebster45206/chronicler/pkg/game"
	"github.com/jwebster45206/chronicler/pkg/i18n"
	"github.com/jwebster45206/chronicler/pkg/prompts"
)

// Session is the stateful handle to one game's conversation. The system
// instruction and response schema are fixed at creation and never change
// for the session's lifetime. Gemini holds no history server-side, so
// the session owns the transcript and resends it with every call.
//
// Sessions are never shared: one session = one game = one
// character/genre pairing. They are not safe for concurrent use; the
// orchestrator guarantees at most one turn is in flight.
type Session struct {
	ID        uuid.UUID
	Language  i18n.Language
	Genre     game.Genre
	Character game.CharacterProfile

	story             StoryService
	systemInstruction string
	schema            *prompts.Schema
	transcript        chat.Transcript
	logger            *slog.Logger
}

// NewSession opens a conversation for a new game.
func NewSession(story StoryService, lang i18n.Language, genre game.Genre, character game.CharacterProfile, logger *slog.Logger) *Session {
	return &Session{
		ID:                uuid.New(),
		Language:          lang,
		Genre:             genre,
		Character:         character,
		story:             story,
		systemInstruction: prompts.SystemInstruction(lang, genre, character),
		schema:            prompts.ResponseSchema(),
		transcript:        chat.Transcript{},
		logger:            logger,
	}
}

// Send submits one player input and returns the raw model response. The
// transcript is extended only after a successful round-trip, so a failed
// turn leaves the session exactly as it was and it remains usable.
func (s *Session) Send(ctx context.Context, input string) (string, error) {
	pending := make(chat.Transcript, len(s.transcript), len(s.transcript)+1)
	copy(pending, s.transcript)
	pending = append(pending, chat.ChatMessage{Role: chat.ChatRoleUser, Content: input})

	raw, err := s.story.Generate(ctx, s.systemInstruction, s.schema, pending)
	if err != nil {
		return "", err
	}

	s.transcript = s.transcript.Append(input, raw)
	s.logger.Debug("turn completed",
		"session_id", s.ID.String(),
		"transcript_len", len(s.transcript),
		"response_bytes", len(raw))
	return raw, nil
}

// Turns returns how many completed exchanges the transcript holds.
func (s *Session) Turns() int {
	return len(s.transcript) / 2
}
