package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/chronicler/pkg/chat"
	"github.com/jwebster45206/chronicler/pkg/prompts"
)

// MockStoryService is a mock implementation of StoryService for testing
type MockStoryService struct {
	GenerateFunc func(ctx context.Context, systemInstruction string, schema *prompts.Schema, transcript chat.Transcript) (string, error)

	// Track calls for testing
	GenerateCalls []GenerateCall

	mu sync.Mutex // protects fields above
}

type GenerateCall struct {
	SystemInstruction string
	Transcript        chat.Transcript
}

var _ StoryService = (*MockStoryService)(nil)

// NewMockStoryService creates a new mock story service
func NewMockStoryService() *MockStoryService {
	return &MockStoryService{
		GenerateCalls: make([]GenerateCall, 0),
	}
}

func (m *MockStoryService) Generate(ctx context.Context, systemInstruction string, schema *prompts.Schema, transcript chat.Transcript) (string, error) {
	m.mu.Lock()
	m.GenerateCalls = append(m.GenerateCalls, GenerateCall{
		SystemInstruction: systemInstruction,
		Transcript:        transcript,
	})
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, systemInstruction, schema, transcript)
	}

	// Default behavior - a minimal valid payload
	return `{
		"sceneDescription": "A test scene unfolds before you.",
		"choices": [{"text": "One"}, {"text": "Two"}, {"text": "Three"}],
		"isGameOver": false,
		"gameOverReason": "",
		"log": "",
		"playerStatsChange": {"hp": 0, "gold": 0},
		"inventoryChanges": {"added": [], "removed": []},
		"entityChanges": {"updated": [], "removed": []},
		"enemy": null
	}`, nil
}

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	GenerateImageFunc func(ctx context.Context, prompt string) (string, error)

	GenerateImageCalls []string

	mu sync.Mutex
}

var _ ImageService = (*MockImageService)(nil)

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		GenerateImageCalls: make([]string, 0),
	}
}

func (m *MockImageService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.GenerateImageCalls = append(m.GenerateImageCalls, prompt)
	fn := m.GenerateImageFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}

	return "data:image/jpeg;base64,dGVzdC1pbWFnZQ==", nil
}
