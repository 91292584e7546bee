package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/chronicler/pkg/chat"
	"github.com/jwebster45206/chronicler/pkg/prompts"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultGeminiTemperature = 1.0
)

// GeminiService implements StoryService against the Gemini
// generateContent API.
type GeminiService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure GeminiService implements StoryService
var _ StoryService = (*GeminiService)(nil)

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiGenerationConfig struct {
	Temperature      *float64        `json:"temperature,omitempty"`
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   *prompts.Schema `json:"responseSchema,omitempty"`
}

// GeminiChatRequest represents the request structure for Gemini content
// generation. Gemini keeps no server-side conversation state, so the
// full transcript is carried in Contents on every call.
type GeminiChatRequest struct {
	SystemInstruction *GeminiContent          `json:"systemInstruction,omitempty"`
	Contents          []GeminiContent         `json:"contents"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

// GeminiChatResponse represents the response structure for Gemini content
// generation.
type GeminiChatResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
	Error      *GeminiError      `json:"error,omitempty"`
}

// GeminiError is the error envelope shared by the Gemini REST endpoints.
type GeminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGeminiService creates a new Gemini text-generation service.
func NewGeminiService(apiKey string, modelName string, timeout time.Duration, logger *slog.Logger) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   geminiBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// WithBaseURL points the service at a different API host. Used by
// integration tests.
func (g *GeminiService) WithBaseURL(baseURL string) *GeminiService {
	g.baseURL = baseURL
	return g
}

// Generate makes one content-generation request and returns the raw
// response text. The response schema and system instruction pin the
// model to strict JSON output; decoding is the caller's concern.
func (g *GeminiService) Generate(ctx context.Context, systemInstruction string, schema *prompts.Schema, transcript chat.Transcript) (string, error) {
	contents := make([]GeminiContent, 0, len(transcript))
	for _, msg := range transcript {
		contents = append(contents, GeminiContent{
			Role:  msg.Role,
			Parts: []GeminiPart{{Text: msg.Content}},
		})
	}

	temperature := DefaultGeminiTemperature
	geminiReq := GeminiChatRequest{
		Contents: contents,
		GenerationConfig: &GeminiGenerationConfig{
			Temperature:      &temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if systemInstruction != "" {
		geminiReq.SystemInstruction = &GeminiContent{
			Parts: []GeminiPart{{Text: systemInstruction}},
		}
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.modelName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return parseGeminiResponse(body)
}

// parseGeminiResponse extracts the concatenated text parts of the first
// candidate.
func parseGeminiResponse(body []byte) (string, error) {
	var geminiResp GeminiChatResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}

	var responseText string
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		responseText += part.Text
	}

	return responseText, nil
}
