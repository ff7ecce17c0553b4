// Package illustrator turns blog topics and vocabulary into PNG artwork on disk.
//
// Every generation is a single blocking request to the image model. Failures never
// escape as errors: they come back in Result, and the caller decides what to do next.
package illustrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/blogart/internal/llm"
	"github.com/snappy-loop/blogart/internal/models"
	"github.com/snappy-loop/blogart/internal/prompts"
	"github.com/snappy-loop/blogart/internal/slug"
)

// ErrNoImage reports a response that carried no image part.
var ErrNoImage = llm.ErrNoImageData

// mirrorURLExpiry is used for presigned URLs when the bucket has no public URL.
const mirrorURLExpiry = 24 * time.Hour

// ImageGenerator calls the image model with a complete prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*llm.Image, error)
}

// ImageWriter persists image bytes as {stem}.png.
type ImageWriter interface {
	SavePNG(stem string, data []byte) (path string, size int64, err error)
}

// Mirror copies written artwork to remote storage. May be nil.
type Mirror interface {
	ObjectKey(filename string) string
	Upload(ctx context.Context, key string, data io.Reader, contentType string, contentLength int64) error
	PublicURL(key string) string
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// ArtworkPublisher announces written artwork. May be nil.
type ArtworkPublisher interface {
	PublishArtwork(ctx context.Context, a *models.Artwork) error
}

// Options holds the optional collaborators of an Illustrator.
type Options struct {
	Timeout   time.Duration // per request; 0 means no timeout
	Mirror    Mirror
	Publisher ArtworkPublisher
}

// Result is the outcome of one generation: a path on success, a reason on failure.
type Result struct {
	Path    string
	Artwork *models.Artwork
	Err     error
}

// OK reports whether an image was written.
func (r Result) OK() bool {
	return r.Err == nil && r.Path != ""
}

// Illustrator generates blog artwork
type Illustrator struct {
	gen    ImageGenerator
	writer ImageWriter
	opts   Options
	now    func() time.Time
}

// New returns an Illustrator that generates with gen and writes with writer.
func New(gen ImageGenerator, writer ImageWriter, opts Options) *Illustrator {
	return &Illustrator{gen: gen, writer: writer, opts: opts, now: time.Now}
}

// GenerateImage wraps prompt in the blog's visual guidelines, asks the model for an
// image and writes the first image in the reply to {images_dir}/{stem}.png.
// An empty style means prompts.DefaultStyle.
func (il *Illustrator) GenerateImage(ctx context.Context, prompt, stem, style string) Result {
	return il.generate(ctx, models.KindIllustration, prompt, stem, style)
}

// GenerateBlogHeader generates a header image for a post. A non-empty customPrompt is used
// as the image description verbatim; otherwise one is derived from topic.
// The file is named {date}-{slug(topic)}.png.
func (il *Illustrator) GenerateBlogHeader(ctx context.Context, topic, date, customPrompt string) Result {
	description := customPrompt
	if description == "" {
		description = prompts.BlogHeader(topic)
	}
	return il.generate(ctx, models.KindBlogHeader, description, slug.HeaderStem(date, topic), prompts.DefaultStyle)
}

// GenerateVocabularyCard generates a flashcard image for a Finnish word, named
// {date}-vocab-{word}.png.
func (il *Illustrator) GenerateVocabularyCard(ctx context.Context, word, translation, date string) Result {
	return il.generate(ctx, models.KindVocabularyCard,
		prompts.VocabularyCard(word, translation), slug.VocabStem(date, word), prompts.IconStyle)
}

func (il *Illustrator) generate(ctx context.Context, kind models.ArtworkKind, description, stem, style string) Result {
	logger := log.With().Str("kind", string(kind)).Str("stem", stem).Logger()

	img, err := il.request(ctx, prompts.Illustration(description, style))
	if err == nil && img == nil {
		err = ErrNoImage
	}
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			logger.Warn().Msg("No image data in response")
		} else {
			logger.Error().Err(err).Msg("Image generation failed")
		}
		return Result{Err: err}
	}

	path, size, err := il.writer.SavePNG(stem, img.Data)
	if err != nil {
		logger.Error().Err(err).Str("mime_type", img.MimeType).Msg("Image generation failed")
		return Result{Err: fmt.Errorf("save %s: %w", stem, err)}
	}

	art := &models.Artwork{
		ID:        uuid.New(),
		Kind:      kind,
		Stem:      stem,
		Path:      path,
		MimeType:  img.MimeType,
		SizeBytes: size,
		Model:     img.Model,
		CreatedAt: il.now().UTC(),
	}
	logger.Info().
		Str("artwork_id", art.ID.String()).
		Str("path", path).
		Int64("png_size_bytes", size).
		Msg("Image saved")

	il.mirror(ctx, art)
	il.publish(ctx, art)

	return Result{Path: path, Artwork: art}
}

// request applies the optional timeout to the model call only.
func (il *Illustrator) request(ctx context.Context, prompt string) (*llm.Image, error) {
	if il.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, il.opts.Timeout)
		defer cancel()
	}
	return il.gen.GenerateImage(ctx, prompt)
}

// mirror uploads the written PNG and records its URL. Failures only warn.
func (il *Illustrator) mirror(ctx context.Context, art *models.Artwork) {
	if il.opts.Mirror == nil {
		return
	}
	data, err := os.ReadFile(art.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", art.Path).Msg("Skipping S3 mirror")
		return
	}
	key := il.opts.Mirror.ObjectKey(filepath.Base(art.Path))
	if err := il.opts.Mirror.Upload(ctx, key, bytes.NewReader(data), "image/png", int64(len(data))); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("S3 mirror upload failed; local file kept")
		return
	}
	if url := il.opts.Mirror.PublicURL(key); url != "" {
		art.URL = url
		return
	}
	url, err := il.opts.Mirror.GeneratePresignedURL(ctx, key, mirrorURLExpiry)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Presign artwork URL failed")
		return
	}
	art.URL = url
}

func (il *Illustrator) publish(ctx context.Context, art *models.Artwork) {
	if il.opts.Publisher == nil {
		return
	}
	if err := il.opts.Publisher.PublishArtwork(ctx, art); err != nil {
		log.Warn().Err(err).Str("artwork_id", art.ID.String()).Msg("Artwork event not published")
	}
}
