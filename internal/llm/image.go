package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// ErrNoImageData is returned when the response carries no inline image part.
var ErrNoImageData = errors.New("no image data in response")

// responseModalities asks for image output; text is allowed alongside it.
var responseModalities = []string{"IMAGE", "TEXT"}

// GenerateImage sends prompt to the image model and returns the first inline image in the response.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	log.Debug().
		Str("model", c.modelImage).
		Str("prompt", prompt[:min(50, len(prompt))]+"...").
		Msg("Generating image")

	resp, err := c.models.GenerateContent(ctx, c.modelImage, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	blob, idx := firstInlineData(resp)
	if blob == nil {
		candidates := 0
		if resp != nil {
			candidates = len(resp.Candidates)
		}
		log.Warn().
			Str("model", c.modelImage).
			Int("candidates", candidates).
			Str("text", responseText(resp)).
			Msg("No image blob in Gemini response")
		return nil, ErrNoImageData
	}

	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	log.Info().
		Str("caller", "GenerateImage").
		Int("image_size_bytes", len(blob.Data)).
		Str("mime_type", mimeType).
		Int("part", idx).
		Msg("Gemini response (image blob)")

	return &Image{
		Data:     blob.Data,
		Model:    c.modelImage,
		MimeType: mimeType,
	}, nil
}

// firstInlineData returns the first part of the first candidate that carries inline bytes.
// Text parts and every part after the match are ignored.
func firstInlineData(resp *genai.GenerateContentResponse) (*genai.Blob, int) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, -1
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil, -1
	}
	for i, part := range cand.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, i
		}
	}
	return nil, -1
}

// responseText joins the text parts of the first candidate, for diagnostics.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			out += part.Text
		}
	}
	return out[:min(200, len(out))]
}
