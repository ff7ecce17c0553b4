package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultImageModel is used when no image model is configured.
const DefaultImageModel = "gemini-2.5-flash-image"

// ErrMissingAPIKey is returned by NewClient before any network call when no API key is given.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not found: set it in the environment")

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Gemini image generation API
type Client struct {
	modelImage string
	models     contentGenerator
}

// Image represents a generated image
type Image struct {
	Data     []byte
	Model    string
	MimeType string // e.g. "image/png", "image/jpeg" (from Gemini blob.MIMEType)
}

// NewClient creates a new Gemini client.
// apiEndpoint: optional Gemini API base URL; when set, all Gemini calls use this endpoint.
func NewClient(ctx context.Context, apiKey, modelImage, apiEndpoint string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if modelImage == "" {
		modelImage = DefaultImageModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if apiEndpoint != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: apiEndpoint}
	}
	genaiClient, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	log.Info().
		Str("model_image", modelImage).
		Str("api_endpoint", apiEndpoint).
		Msg("Gemini client initialized")

	return &Client{
		modelImage: modelImage,
		models:     genaiClient.Models,
	}, nil
}

// Model returns the image model used for generation.
func (c *Client) Model() string {
	return c.modelImage
}
