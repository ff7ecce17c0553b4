package models

import (
	"time"

	"github.com/google/uuid"
)

// ArtworkKind identifies which builder produced an artwork.
type ArtworkKind string

const (
	KindIllustration   ArtworkKind = "illustration"
	KindBlogHeader     ArtworkKind = "blog_header"
	KindVocabularyCard ArtworkKind = "vocabulary_card"
)

// Artwork describes a PNG written to the images directory
type Artwork struct {
	ID        uuid.UUID   `json:"id"`
	Kind      ArtworkKind `json:"kind"`
	Stem      string      `json:"stem"`
	Path      string      `json:"path"`
	MimeType  string      `json:"source_mime_type"` // MIME type returned by the model, before PNG re-encoding
	SizeBytes int64       `json:"size_bytes"`
	Model     string      `json:"model"`
	URL       string      `json:"url,omitempty"` // S3 mirror, when configured
	CreatedAt time.Time   `json:"created_at"`
}
