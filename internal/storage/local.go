package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

// ErrInvalidStem is returned for stems that would not name a file directly inside the directory.
var ErrInvalidStem = errors.New("invalid filename stem")

// Local writes PNG artwork into an existing directory.
type Local struct {
	dir string
}

// NewLocal returns a writer for dir. The directory is never created here.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Dir returns the output directory.
func (l *Local) Dir() string {
	return l.dir
}

// PathFor returns the file path SavePNG uses for stem.
func (l *Local) PathFor(stem string) string {
	return filepath.Join(l.dir, stem+".png")
}

// SavePNG decodes data (PNG, JPEG, GIF or WebP), re-encodes it as PNG and writes it to
// {dir}/{stem}.png, replacing any existing file. It returns the path and the PNG size.
// The file appears atomically; on error nothing is left behind.
func (l *Local) SavePNG(stem string, data []byte) (string, int64, error) {
	if err := checkStem(stem); err != nil {
		return "", 0, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", 0, fmt.Errorf("failed to encode png: %w", err)
	}

	path := l.PathFor(stem)
	if err := writeFileAtomic(l.dir, path, buf.Bytes()); err != nil {
		return "", 0, err
	}

	log.Debug().
		Str("path", path).
		Str("source_format", format).
		Int("png_size_bytes", buf.Len()).
		Msg("Image written")

	return path, int64(buf.Len()), nil
}

// checkStem rejects empty stems and stems with separators or parent references.
func checkStem(stem string) error {
	if stem == "" || strings.ContainsAny(stem, `/\`) || !filepath.IsLocal(stem+".png") {
		return fmt.Errorf("%w: %q", ErrInvalidStem, stem)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in dir and renames it onto path.
func writeFileAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, ".artwork-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod image: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}
