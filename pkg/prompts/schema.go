package prompts

// Schema is a structural contract passed to the generation service to
// constrain its output. The field names and type enums follow the Gemini
// generateContent REST API.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
)

// ResponseSchema is the fixed contract every turn's payload must match.
// It is configured once per session alongside the system instruction.
func ResponseSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"sceneDescription": {
				Type:        TypeString,
				Description: "A vivid, paragraph-long description of the current scene. In the requested language.",
			},
			"choices": {
				Type:        TypeArray,
				Description: "Exactly 3 distinct choices for the player. In the requested language.",
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"text": {Type: TypeString},
					},
					Required: []string{"text"},
				},
			},
			"isGameOver": {Type: TypeBoolean},
			"gameOverReason": {
				Type:        TypeString,
				Description: "If the game is over, a message explaining why. Otherwise, an empty string. In the requested language.",
			},
			"log": {
				Type:        TypeString,
				Description: "A log of events for the turn. In the requested language.",
			},
			"playerStatsChange": {
				Type: TypeObject,
				Properties: map[string]*Schema{
					"hp":   {Type: TypeNumber, Description: "Change in HP. Negative for damage, positive for healing."},
					"gold": {Type: TypeNumber, Description: "Change in gold. Positive for gains, negative for spending."},
				},
				Required: []string{"hp", "gold"},
			},
			"inventoryChanges": {
				Type:        TypeObject,
				Description: "Changes to the player's inventory.",
				Properties: map[string]*Schema{
					"added": {
						Type: TypeArray,
						Items: &Schema{
							Type: TypeObject,
							Properties: map[string]*Schema{
								"name":        {Type: TypeString},
								"quantity":    {Type: TypeNumber},
								"description": {Type: TypeString},
							},
							Required: []string{"name", "quantity", "description"},
						},
					},
					"removed": {
						Type:  TypeArray,
						Items: &Schema{Type: TypeString},
					},
				},
				Required: []string{"added", "removed"},
			},
			"entityChanges": {
				Type:        TypeObject,
				Description: "Changes to player-owned entities.",
				Properties: map[string]*Schema{
					"updated": {
						Type: TypeArray,
						Items: &Schema{
							Type: TypeObject,
							Properties: map[string]*Schema{
								"name": {Type: TypeString},
								"type": {Type: TypeString},
								"roles": {
									Type: TypeArray,
									Items: &Schema{
										Type: TypeObject,
										Properties: map[string]*Schema{
											"role":   {Type: TypeString},
											"person": {Type: TypeString},
										},
										Required: []string{"role", "person"},
									},
								},
							},
							Required: []string{"name", "type", "roles"},
						},
					},
					"removed": {
						Type:  TypeArray,
						Items: &Schema{Type: TypeString},
					},
				},
				Required: []string{"updated", "removed"},
			},
			"enemy": {
				Type:     TypeObject,
				Nullable: true,
				Properties: map[string]*Schema{
					"name":   {Type: TypeString},
					"hp":     {Type: TypeNumber},
					"attack": {Type: TypeNumber},
				},
			},
		},
		Required: []string{
			"sceneDescription", "choices", "isGameOver", "gameOverReason",
			"log", "playerStatsChange", "inventoryChanges", "entityChanges",
		},
	}
}
