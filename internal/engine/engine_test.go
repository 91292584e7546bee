package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/chronicler/internal/services"
	"github.com/jwebster45206/chronicler/pkg/chat"
	"github.com/jwebster45206/chronicler/pkg/game"
	"github.com/jwebster45206/chronicler/pkg/i18n"
	"github.com/jwebster45206/chronicler/pkg/prompts"
)

var testCharacter = game.CharacterProfile{
	Name:        "Kaelen",
	Power:       "shadow speech",
	Description: "a rogue",
}

func payloadJSON(hpDelta, goldDelta int, isGameOver bool, reason string) string {
	return fmt.Sprintf(`{
		"sceneDescription": "The torchlight flickers across wet stone.",
		"choices": [{"text": "Press on"}, {"text": "Rest"}, {"text": "Turn back"}],
		"isGameOver": %t,
		"gameOverReason": %q,
		"log": "Something stirs in the dark.",
		"playerStatsChange": {"hp": %d, "gold": %d},
		"inventoryChanges": {"added": [], "removed": []},
		"entityChanges": {"updated": [], "removed": []},
		"enemy": null
	}`, isGameOver, reason, hpDelta, goldDelta)
}

func newTestEngine() (*Engine, *services.MockStoryService, *services.MockImageService) {
	story := services.NewMockStoryService()
	images := services.NewMockImageService()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(story, images, i18n.LanguageEN, logger), story, images
}

func TestEngine_StartGame(t *testing.T) {
	e, story, images := newTestEngine()
	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return payloadJSON(-10, 0, false, ""), nil
	}

	scene, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.NoError(t, err)
	require.NotNil(t, scene)

	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 90, scene.PlayerStats.HP)
	assert.NotEmpty(t, scene.Image)
	assert.Equal(t, testCharacter, scene.Character)
	assert.Len(t, scene.Choices, 3)

	require.Len(t, images.GenerateImageCalls, 1)
	assert.Contains(t, images.GenerateImageCalls[0], "cinematic fantasy art")
	assert.Contains(t, images.GenerateImageCalls[0], "torchlight")
}

func TestEngine_StartGame_Validation(t *testing.T) {
	e, _, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.StartGame(ctx, game.Genre("WESTERN"), testCharacter)
	assert.Error(t, err)

	_, err = e.StartGame(ctx, game.GenreFantasy, game.CharacterProfile{Name: "only a name"})
	assert.Error(t, err)

	assert.Equal(t, StateStart, e.State())
}

func TestEngine_StartGame_FirstTurnDefeatSkipsImage(t *testing.T) {
	e, story, images := newTestEngine()
	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return payloadJSON(-150, 0, false, ""), nil
	}

	scene, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.NoError(t, err)

	assert.Equal(t, StateGameOver, e.State())
	assert.True(t, scene.IsGameOver)
	assert.Equal(t, 0, scene.PlayerStats.HP)
	assert.Empty(t, scene.Image, "no image is generated on the game-over path")
	assert.Empty(t, images.GenerateImageCalls)
	assert.Equal(t, "You have been defeated.", scene.GameOverReason)
}

func TestEngine_StartGame_MalformedResponseReturnsToStart(t *testing.T) {
	e, story, _ := newTestEngine()
	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return "", nil
	}

	_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrMalformedResponse)
	assert.Equal(t, StateStart, e.State())
	assert.Nil(t, e.Scene())
}

func TestEngine_StartGame_ImageFailureReturnsToStart(t *testing.T) {
	e, _, images := newTestEngine()
	images.GenerateImageFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", services.ErrNoImage
	}

	_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNoImage)
	assert.Equal(t, StateStart, e.State())
}

func TestEngine_SubmitChoice(t *testing.T) {
	e, story, _ := newTestEngine()
	_, err := e.StartGame(context.Background(), game.GenreCyberpunk, testCharacter)
	require.NoError(t, err)

	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return payloadJSON(-25, 40, false, ""), nil
	}

	scene, err := e.SubmitChoice(context.Background(), game.Choice{Text: "Press on"})
	require.NoError(t, err)

	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 75, scene.PlayerStats.HP)
	assert.Equal(t, 40, scene.PlayerStats.Gold)
	assert.Equal(t, testCharacter, scene.Character, "character persists across scenes")

	// The turn executor treats choices and custom actions identically.
	last := story.GenerateCalls[len(story.GenerateCalls)-1].Transcript
	assert.Equal(t, "Press on", last[len(last)-1].Content)
}

func TestEngine_SubmitWithoutGame(t *testing.T) {
	e, _, _ := newTestEngine()

	_, err := e.SubmitCustomAction(context.Background(), "look around")
	assert.ErrorIs(t, err, ErrSessionLost)
	assert.Equal(t, StateStart, e.State())
}

func TestEngine_MidGameFailureKeepsScene(t *testing.T) {
	e, story, _ := newTestEngine()
	_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.NoError(t, err)
	before := e.Scene()

	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return "", errors.New("service unavailable")
	}

	_, err = e.SubmitCustomAction(context.Background(), "open the door")
	require.Error(t, err)

	assert.Equal(t, StatePlaying, e.State(), "failure mid-game keeps the game alive")
	assert.Same(t, before, e.Scene(), "previous scene is retained")

	// The player may retry.
	story.GenerateFunc = nil
	_, err = e.SubmitCustomAction(context.Background(), "open the door")
	assert.NoError(t, err)
}

func TestEngine_GameOverReasonPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		hpDelta  int
		reason   string
		expected string
	}{
		{
			name:     "hp zero overrides payload reason",
			hpDelta:  -100,
			reason:   "You escaped",
			expected: "You have been defeated.",
		},
		{
			name:     "payload reason used when hp positive",
			hpDelta:  0,
			reason:   "You found the lost crown and retired in peace.",
			expected: "You found the lost crown and retired in peace.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, story, _ := newTestEngine()
			_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
			require.NoError(t, err)

			story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
				return payloadJSON(tt.hpDelta, 0, true, tt.reason), nil
			}

			scene, err := e.SubmitCustomAction(context.Background(), "finish")
			require.NoError(t, err)
			assert.Equal(t, StateGameOver, e.State())
			assert.Equal(t, tt.expected, scene.GameOverReason)
		})
	}
}

func TestEngine_MidGameGameOverKeepsLastImage(t *testing.T) {
	e, story, _ := newTestEngine()
	_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.NoError(t, err)
	firstImage := e.Scene().Image
	require.NotEmpty(t, firstImage)

	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return payloadJSON(0, 0, true, "The story ends."), nil
	}

	scene, err := e.SubmitCustomAction(context.Background(), "finish")
	require.NoError(t, err)
	assert.Equal(t, firstImage, scene.Image, "game-over scene keeps the previous image")
}

func TestEngine_Restart(t *testing.T) {
	e, story, _ := newTestEngine()
	_, err := e.StartGame(context.Background(), game.GenreIsekai, testCharacter)
	require.NoError(t, err)

	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return payloadJSON(0, 0, true, "fin"), nil
	}
	_, err = e.SubmitCustomAction(context.Background(), "finish")
	require.NoError(t, err)
	require.Equal(t, StateGameOver, e.State())

	e.Restart()
	assert.Equal(t, StateStart, e.State())
	assert.Nil(t, e.Scene())

	// A fresh game can begin after restart.
	story.GenerateFunc = nil
	_, err = e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	assert.NoError(t, err)
}

func TestEngine_ImageCache(t *testing.T) {
	e, story, images := newTestEngine()

	cache := newMemCache()
	e.WithCache(cache)

	description := payloadJSON(0, 0, false, "")
	story.GenerateFunc = func(ctx context.Context, si string, schema *prompts.Schema, tr chat.Transcript) (string, error) {
		return description, nil
	}

	_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	require.NoError(t, err)
	require.Len(t, images.GenerateImageCalls, 1)

	// Same scene description on the next turn hits the cache.
	_, err = e.SubmitCustomAction(context.Background(), "wait")
	require.NoError(t, err)
	assert.Len(t, images.GenerateImageCalls, 1, "second identical prompt should be served from cache")
}

func TestEngine_CacheFailureDoesNotFailTurn(t *testing.T) {
	e, _, _ := newTestEngine()
	e.WithCache(&failingCache{})

	_, err := e.StartGame(context.Background(), game.GenreFantasy, testCharacter)
	assert.NoError(t, err)
	assert.Equal(t, StatePlaying, e.State())
}
