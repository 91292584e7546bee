package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse indicates the text service returned something that
// could not be decoded as a story payload. The turn is abandoned but the
// session remains usable.
var ErrMalformedResponse = errors.New("the story took an unexpected turn")

// Responses shorter than this cannot be a plausible payload and are
// rejected before attempting to decode.
const minResponseLength = 10

// StatsChange is the signed per-turn delta to HP and Gold.
type StatsChange struct {
	HP   int `json:"hp"`
	Gold int `json:"gold"`
}

// InventoryChanges is the per-turn inventory diff. Removals are applied
// before additions.
type InventoryChanges struct {
	Added   []InventoryItem `json:"added"`
	Removed []string        `json:"removed"`
}

// EntityChanges is the per-turn owned-entity diff. Removals are applied
// before updates; an update is a full overwrite of the named entity.
type EntityChanges struct {
	Updated []OwnedEntity `json:"updated"`
	Removed []string      `json:"removed"`
}

// RawStoryPart is the structured payload one turn of text generation
// returns. It is untrusted input and only ever enters the game through
// DecodeStoryPart.
type RawStoryPart struct {
	SceneDescription  string           `json:"sceneDescription"`
	Choices           []Choice         `json:"choices"`
	IsGameOver        bool             `json:"isGameOver"`
	GameOverReason    string           `json:"gameOverReason"`
	Log               string           `json:"log"`
	PlayerStatsChange StatsChange      `json:"playerStatsChange"`
	InventoryChanges  InventoryChanges `json:"inventoryChanges"`
	EntityChanges     EntityChanges    `json:"entityChanges"`
	Enemy             *Enemy           `json:"enemy"`
}

// rawStoryPayload mirrors RawStoryPart with pointer fields so the decoder
// can distinguish a missing required field from a zero value.
type rawStoryPayload struct {
	SceneDescription  *string           `json:"sceneDescription"`
	Choices           []Choice          `json:"choices"`
	IsGameOver        *bool             `json:"isGameOver"`
	GameOverReason    string            `json:"gameOverReason"`
	Log               string            `json:"log"`
	PlayerStatsChange *StatsChange      `json:"playerStatsChange"`
	InventoryChanges  *InventoryChanges `json:"inventoryChanges"`
	EntityChanges     *EntityChanges    `json:"entityChanges"`
	Enemy             *Enemy            `json:"enemy"`
}

// DecodeStoryPart parses and validates the raw text returned by the
// generation service. Every violation is reported as
// ErrMalformedResponse; the caller surfaces the message and keeps the
// pre-turn scene.
func DecodeStoryPart(raw string) (*RawStoryPart, error) {
	text := strings.TrimSpace(raw)
	if len(text) < minResponseLength {
		return nil, fmt.Errorf("%w: response empty or too short (%d bytes)", ErrMalformedResponse, len(text))
	}

	var payload rawStoryPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	missing := payload.missingFields()
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	part := &RawStoryPart{
		SceneDescription:  *payload.SceneDescription,
		Choices:           payload.Choices,
		IsGameOver:        *payload.IsGameOver,
		GameOverReason:    payload.GameOverReason,
		Log:               payload.Log,
		PlayerStatsChange: *payload.PlayerStatsChange,
		InventoryChanges:  *payload.InventoryChanges,
		EntityChanges:     *payload.EntityChanges,
		Enemy:             payload.Enemy,
	}

	// Missing arrays inside the diff objects are tolerated as empty;
	// the reconciler treats them as no-ops.
	if part.InventoryChanges.Added == nil {
		part.InventoryChanges.Added = []InventoryItem{}
	}
	if part.InventoryChanges.Removed == nil {
		part.InventoryChanges.Removed = []string{}
	}
	if part.EntityChanges.Updated == nil {
		part.EntityChanges.Updated = []OwnedEntity{}
	}
	if part.EntityChanges.Removed == nil {
		part.EntityChanges.Removed = []string{}
	}

	return part, nil
}

func (p *rawStoryPayload) missingFields() []string {
	var missing []string
	if p.SceneDescription == nil || *p.SceneDescription == "" {
		missing = append(missing, "sceneDescription")
	}
	if p.Choices == nil {
		missing = append(missing, "choices")
	}
	if p.IsGameOver == nil {
		missing = append(missing, "isGameOver")
	}
	if p.PlayerStatsChange == nil {
		missing = append(missing, "playerStatsChange")
	}
	if p.InventoryChanges == nil {
		missing = append(missing, "inventoryChanges")
	}
	if p.EntityChanges == nil {
		missing = append(missing, "entityChanges")
	}
	return missing
}
