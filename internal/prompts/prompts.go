// Package prompts holds the fixed prompt templates for blog artwork.
package prompts

import (
	"fmt"
	"strings"
)

const (
	// DefaultStyle is the art style used when the caller gives none.
	DefaultStyle = "modern flat illustration"
	// IconStyle is the art style of vocabulary cards.
	IconStyle = "simple icon illustration"
)

// Illustration wraps an image description in the blog's visual guidelines.
func Illustration(description, style string) string {
	if strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}
	return fmt.Sprintf(`Create a %s for a Finnish language learning blog.

Image description: %s

Requirements:
- Clean, professional design suitable for educational content
- Warm, inviting colors (consider Finnish nature: blues, greens, whites)
- No text in the image (text will be added separately)
- Simple composition that works well as a blog header
- Modern, minimalist aesthetic
`, style, description)
}

// BlogHeader is the default header description for a post about topic.
func BlogHeader(topic string) string {
	return fmt.Sprintf(`A warm, inviting illustration representing %q for Finnish language learners. `+
		`The scene should evoke Finland's culture and lifestyle while being educational and approachable.`, topic)
}

// VocabularyCard describes a flashcard image for a Finnish word and its English meaning.
func VocabularyCard(word, translation string) string {
	return fmt.Sprintf(`A simple, clean illustration representing the Finnish word %q (meaning %q in English). `+
		`The image should be iconic and memorable, helping learners associate the visual with the word. `+
		`No text should be in the image.`, word, translation)
}
