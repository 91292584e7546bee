// Package engine owns the game state machine: it sequences text
// generation, state reconciliation, the end-of-game check and image
// generation into single logical turns with well-defined failure
// behavior.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/chronicler/internal/services"
	"github.com/jwebster45206/chronicler/pkg/game"
	"github.com/jwebster45206/chronicler/pkg/i18n"
	"github.com/jwebster45206/chronicler/pkg/prompts"
)

// State is the orchestrator's position in the game lifecycle.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrSessionLost means a turn was submitted without an active session.
// The engine resets to the start state when this happens.
var ErrSessionLost = errors.New("the connection to the story was lost, please start over")

// ErrTurnInFlight means a turn was submitted while another was still
// outstanding. At most one turn may be in flight per game.
var ErrTurnInFlight = errors.New("a turn is already in progress")

const imageCacheTTL = 24 * time.Hour

// Engine drives one game at a time. All methods are safe for concurrent
// use, but turns are strictly single-flight: a submission while another
// turn is outstanding fails with ErrTurnInFlight rather than queueing.
type Engine struct {
	story  services.StoryService
	images services.ImageService
	cache  services.Cache // optional; nil disables image caching
	lang   i18n.Language
	logger *slog.Logger

	mu        sync.Mutex
	inFlight  bool
	state     State
	session   *services.Session
	scene     *game.StoryScene
	stats     game.PlayerStats
	genre     game.Genre
	character game.CharacterProfile
}

// New creates an engine in the start state.
func New(story services.StoryService, images services.ImageService, lang i18n.Language, logger *slog.Logger) *Engine {
	return &Engine{
		story:  story,
		images: images,
		lang:   lang,
		logger: logger,
		state:  StateStart,
	}
}

// WithCache sets an optional image cache.
// Returns the Engine for method chaining.
func (e *Engine) WithCache(cache services.Cache) *Engine {
	e.cache = cache
	return e
}

// SetLanguage changes the narrative language. It is ignored once a game
// has begun; the session's language is fixed at creation.
func (e *Engine) SetLanguage(lang i18n.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateStart && !e.inFlight {
		e.lang = lang
	}
}

// Language returns the language new games will use.
func (e *Engine) Language() i18n.Language {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lang
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Scene returns the most recently published scene, or nil before the
// first successful turn.
func (e *Engine) Scene() *game.StoryScene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene
}

// StartGame opens a session and plays the first turn. On any failure the
// engine returns to the start state with nothing retained. A first-turn
// defeat transitions straight to game over; no image is generated on
// that path and the scene's image is empty.
func (e *Engine) StartGame(ctx context.Context, genre game.Genre, character game.CharacterProfile) (*game.StoryScene, error) {
	if !genre.Valid() {
		return nil, fmt.Errorf("unknown genre %q", genre)
	}
	if character.Name == "" || character.Power == "" || character.Description == "" {
		return nil, fmt.Errorf("character name, power and description are required")
	}

	if err := e.beginTurn(StateStart); err != nil {
		return nil, err
	}

	session := services.NewSession(e.story, e.lang, genre, character, e.logger)
	stats := game.NewPlayerStats()

	scene, newStats, gameOver, err := e.playTurn(ctx, session, genre, character, stats, nil,
		prompts.InitialPrompt(e.lang, genre, character))
	if err != nil {
		// Failure during game creation: back to start, session discarded.
		e.endTurn(func() { e.reset() })
		return nil, err
	}

	e.endTurn(func() {
		e.session = session
		e.genre = genre
		e.character = character
		e.stats = newStats
		e.scene = scene
		if gameOver {
			e.state = StateGameOver
		} else {
			e.state = StatePlaying
		}
	})

	e.logger.Info("game started",
		"session_id", session.ID.String(),
		"genre", string(genre),
		"character", character.Name,
		"state", e.State().String())
	return scene, nil
}

// SubmitChoice plays a turn using the label text of a pre-offered
// choice. The generation service cannot distinguish it from free text.
func (e *Engine) SubmitChoice(ctx context.Context, choice game.Choice) (*game.StoryScene, error) {
	return e.submit(ctx, choice.Text)
}

// SubmitCustomAction plays a turn using free-form player text.
func (e *Engine) SubmitCustomAction(ctx context.Context, action string) (*game.StoryScene, error) {
	return e.submit(ctx, action)
}

func (e *Engine) submit(ctx context.Context, input string) (*game.StoryScene, error) {
	if err := e.beginTurn(StatePlaying); err != nil {
		if errors.Is(err, ErrSessionLost) {
			e.mu.Lock()
			e.reset()
			e.mu.Unlock()
		}
		return nil, err
	}

	e.mu.Lock()
	session := e.session
	genre := e.genre
	character := e.character
	stats := e.stats
	prev := e.scene
	e.mu.Unlock()

	scene, newStats, gameOver, err := e.playTurn(ctx, session, genre, character, stats, prev, input)
	if err != nil {
		// Mid-game failure: the player keeps the last scene and may retry.
		e.endTurn(nil)
		return nil, err
	}

	e.endTurn(func() {
		e.stats = newStats
		e.scene = scene
		if gameOver {
			e.state = StateGameOver
		}
	})

	e.logger.Debug("turn published",
		"session_id", session.ID.String(),
		"game_over", gameOver,
		"hp", newStats.HP,
		"gold", newStats.Gold)
	return scene, nil
}

// Restart discards the session, scene, genre and character and returns
// to the start state. It has no other side effects.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// playTurn runs the generate → decode → reconcile → end-check → image
// sequence shared by the first and every later turn. prev is nil on the
// first turn. The two network calls are strictly sequential: the image
// prompt is derived from the text response.
func (e *Engine) playTurn(ctx context.Context, session *services.Session, genre game.Genre, character game.CharacterProfile, stats game.PlayerStats, prev *game.StoryScene, input string) (*game.StoryScene, game.PlayerStats, bool, error) {
	raw, err := session.Send(ctx, input)
	if err != nil {
		return nil, stats, false, fmt.Errorf("story generation failed: %w", err)
	}

	part, err := game.DecodeStoryPart(raw)
	if err != nil {
		e.logger.Error("failed to decode story payload",
			"session_id", session.ID.String(), "error", err, "raw_len", len(raw))
		return nil, stats, false, err
	}

	newStats := game.Reconcile(stats, part)

	if part.IsGameOver || newStats.HP == 0 {
		scene := buildScene(character, part, newStats, prev)
		scene.IsGameOver = true
		// A defeat by HP overrides whatever reason the payload offered.
		if newStats.HP == 0 {
			scene.GameOverReason = i18n.T(e.lang, "playerDefeated")
		}
		return scene, newStats, true, nil
	}

	image, err := e.renderSceneImage(ctx, genre, part.SceneDescription)
	if err != nil {
		return nil, stats, false, fmt.Errorf("image generation failed: %w", err)
	}

	scene := buildScene(character, part, newStats, prev)
	scene.Image = image
	return scene, newStats, false, nil
}

// buildScene merges one turn's payload onto the previous scene. Fields
// the payload does not carry, like the character profile and the image,
// persist from the previous scene until replaced.
func buildScene(character game.CharacterProfile, part *game.RawStoryPart, stats game.PlayerStats, prev *game.StoryScene) *game.StoryScene {
	scene := &game.StoryScene{
		Character:        character,
		SceneDescription: part.SceneDescription,
		Choices:          part.Choices,
		IsGameOver:       part.IsGameOver,
		GameOverReason:   part.GameOverReason,
		Log:              part.Log,
		PlayerStats:      stats,
		Enemy:            part.Enemy,
	}
	if prev != nil {
		scene.Image = prev.Image
	}
	return scene
}

// renderSceneImage generates the scene illustration, reading through the
// cache when one is configured. Cache failures are logged and ignored;
// they must never fail a turn.
func (e *Engine) renderSceneImage(ctx context.Context, genre game.Genre, description string) (string, error) {
	prompt := prompts.ImagePrompt(genre, description)
	key := imageCacheKey(prompt)

	if e.cache != nil {
		if cached, err := e.cache.Get(ctx, key); err != nil {
			e.logger.Error("image cache read failed", "key", key, "error", err)
		} else if cached != "" {
			e.logger.Debug("image cache hit", "key", key)
			return cached, nil
		}
	}

	image, err := e.images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, image, imageCacheTTL); err != nil {
			e.logger.Error("image cache write failed", "key", key, "error", err)
		}
	}
	return image, nil
}

func imageCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "image:" + hex.EncodeToString(sum[:])
}

// beginTurn claims the single turn slot, verifying the engine is in the
// expected state first.
func (e *Engine) beginTurn(expected State) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		return ErrTurnInFlight
	}
	if e.state != expected {
		if expected == StatePlaying {
			return ErrSessionLost
		}
		return fmt.Errorf("cannot start a game from state %q", e.state)
	}
	if expected == StatePlaying && (e.session == nil || e.scene == nil) {
		return ErrSessionLost
	}
	e.inFlight = true
	return nil
}

// endTurn releases the turn slot, applying the commit under the same
// lock so a published scene and its state change are atomic to readers.
func (e *Engine) endTurn(commit func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if commit != nil {
		commit()
	}
	e.inFlight = false
}

// reset must be called with e.mu held.
func (e *Engine) reset() {
	e.state = StateStart
	e.session = nil
	e.scene = nil
	e.genre = ""
	e.character = game.CharacterProfile{}
	e.stats = game.PlayerStats{}
}
