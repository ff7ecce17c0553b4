package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: 0x1e, G: 0x5a, B: 0xa8, A: 0xff})
		}
	}
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSavePNG(t *testing.T) {
	tests := []struct {
		name string
		data func(*testing.T) []byte
	}{
		{"png input", encodePNG},
		{"jpeg input is re-encoded", encodeJPEG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			l := NewLocal(dir)

			path, size, err := l.SavePNG("2026-01-14-finnish-greetings", tt.data(t))

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "2026-01-14-finnish-greetings.png"), path)
			assert.Equal(t, []string{"2026-01-14-finnish-greetings.png"}, dirEntries(t, dir))

			written, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, int64(len(written)), size)
			_, format, err := image.Decode(bytes.NewReader(written))
			require.NoError(t, err)
			assert.Equal(t, "png", format)
		})
	}
}

func TestSavePNG_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)
	require.NoError(t, os.WriteFile(l.PathFor("stem"), []byte("old"), 0o644))

	path, _, err := l.SavePNG("stem", encodePNG(t))

	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("old"), written)
	assert.Equal(t, []string{"stem.png"}, dirEntries(t, dir))
}

func TestSavePNG_UndecodableLeavesNothing(t *testing.T) {
	dir := t.TempDir()

	path, _, err := NewLocal(dir).SavePNG("stem", []byte("not an image"))

	require.Error(t, err)
	assert.Empty(t, path)
	assert.Empty(t, dirEntries(t, dir))
}

func TestSavePNG_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, _, err := NewLocal(dir).SavePNG("stem", encodePNG(t))

	require.Error(t, err)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "directory must not be created")
}

func TestSavePNG_RejectsStemOutsideDir(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "images")
	require.NoError(t, os.Mkdir(dir, 0o755))
	l := NewLocal(dir)

	tests := []struct {
		name string
		stem string
	}{
		{"empty", ""},
		{"parent traversal", "2026-01-14-vocab-x/../../escaped"},
		{"plain parent", ".."},
		{"subdirectory", "2026-01-14-vocab-a/b"},
		{"backslash", `2026-01-14-vocab-a\b`},
		{"absolute", "/tmp/escaped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _, err := l.SavePNG(tt.stem, encodePNG(t))

			require.ErrorIs(t, err, ErrInvalidStem)
			assert.Empty(t, path)
			assert.Equal(t, []string{"images"}, dirEntries(t, parent))
			assert.Empty(t, dirEntries(t, dir))
		})
	}
}
