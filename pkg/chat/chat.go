// Package chat defines the conversational message types exchanged with
// the text-generation service.
package chat

const (
	ChatRoleUser  = "user"  // player input
	ChatRoleModel = "model" // narrator output
)

// ChatMessage is a single turn of the conversation transcript. The role
// values follow the Gemini generateContent API, which has no server-side
// chat memory; the full transcript is resent on every call.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered conversation history of one game session.
type Transcript []ChatMessage

// Append returns the transcript extended with a user message and the
// model's reply. The receiver is not modified, so a failed turn can be
// discarded without touching session history.
func (t Transcript) Append(userInput, modelOutput string) Transcript {
	next := make(Transcript, 0, len(t)+2)
	next = append(next, t...)
	next = append(next,
		ChatMessage{Role: ChatRoleUser, Content: userInput},
		ChatMessage{Role: ChatRoleModel, Content: modelOutput},
	)
	return next
}
