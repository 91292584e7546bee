package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	imagenAspectRatio = "16:9"
	imagenSampleCount = 1
	imagenMIMEType    = "image/jpeg"
)

// ErrNoImage means the image service answered successfully but returned
// zero images. The turn's scene is still valid; only the illustration is
// missing.
var ErrNoImage = errors.New("the mists obscure your vision (no image was generated)")

// ImagenService implements ImageService against the Imagen predict API.
type ImagenService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ImageService = (*ImagenService)(nil)

type ImagenInstance struct {
	Prompt string `json:"prompt"`
}

type ImagenOutputOptions struct {
	MIMEType string `json:"mimeType,omitempty"`
}

type ImagenParameters struct {
	SampleCount   int                  `json:"sampleCount"`
	AspectRatio   string               `json:"aspectRatio,omitempty"`
	OutputOptions *ImagenOutputOptions `json:"outputOptions,omitempty"`
}

// ImagenPredictRequest represents the request structure for Imagen
// image generation.
type ImagenPredictRequest struct {
	Instances  []ImagenInstance `json:"instances"`
	Parameters ImagenParameters `json:"parameters"`
}

type ImagenPrediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MIMEType           string `json:"mimeType,omitempty"`
}

// ImagenPredictResponse represents the response structure for Imagen
// image generation.
type ImagenPredictResponse struct {
	Predictions []ImagenPrediction `json:"predictions"`
	Error       *GeminiError       `json:"error,omitempty"`
}

// NewImagenService creates a new Imagen image-generation service.
func NewImagenService(apiKey string, modelName string, timeout time.Duration, logger *slog.Logger) *ImagenService {
	return &ImagenService{
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
func (s *ImagenService) WithBaseURL(baseURL string) *ImagenService {
	s.baseURL = baseURL
	return s
}

// GenerateImage requests exactly one 16:9 JPEG for the prompt and wraps
// the returned bytes as a data URI.
func (s *ImagenService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	imagenReq := ImagenPredictRequest{
		Instances: []ImagenInstance{{Prompt: prompt}},
		Parameters: ImagenParameters{
			SampleCount: imagenSampleCount,
			AspectRatio: imagenAspectRatio,
			OutputOptions: &ImagenOutputOptions{
				MIMEType: imagenMIMEType,
			},
		},
	}

	reqBody, err := json.Marshal(imagenReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predict", s.baseURL, s.modelName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
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

	return parseImagenResponse(body)
}

// parseImagenResponse extracts the first generated image as a data URI.
func parseImagenResponse(body []byte) (string, error) {
	var imagenResp ImagenPredictResponse
	if err := json.Unmarshal(body, &imagenResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if imagenResp.Error != nil {
		return "", fmt.Errorf("API error: %s", imagenResp.Error.Message)
	}

	if len(imagenResp.Predictions) == 0 || imagenResp.Predictions[0].BytesBase64Encoded == "" {
		return "", ErrNoImage
	}

	mimeType := imagenResp.Predictions[0].MIMEType
	if mimeType == "" {
		mimeType = imagenMIMEType
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, imagenResp.Predictions[0].BytesBase64Encoded), nil
}
