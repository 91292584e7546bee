package services

import (
	"context"

	"github.com/jwebster45206/chronicler/pkg/chat"
	"github.com/jwebster45206/chronicler/pkg/prompts"
)

// StoryService is the text-generation side of a turn: given the fixed
// session configuration and the conversation so far, produce one raw
// payload string. Implementations make a single blocking round-trip with
// no retry.
type StoryService interface {
	Generate(ctx context.Context, systemInstruction string, schema *prompts.Schema, transcript chat.Transcript) (string, error)
}

// ImageService generates one scene illustration for a prompt and returns
// it as a displayable data URI.
type ImageService interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
