// Package generator builds the natural-language instruction for a playlist
// request and fetches the raw candidate text from the text-generation model.
package generator

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"moodlist/models"
)

// TextGenerator is the single-turn text-generation call shape.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	client TextGenerator
}

func New(client TextGenerator) *Generator {
	return &Generator{client: client}
}

// BuildPrompt embeds mood, language, song type, count and the optional artist
// clause into one instruction asking for the numbered "Track Name - Artist"
// format plus a suggested playlist title.
func BuildPrompt(req models.PlaylistRequest) string {
	var b strings.Builder

	if req.SongType == models.SongTypeMix {
		fmt.Fprintf(&b, "Generate a mix of %d old and new %s songs for someone who feels %s.",
			req.Count, req.Language, req.Mood)
	} else {
		fmt.Fprintf(&b, "Generate a playlist of %d %s %s songs for someone who feels %s.",
			req.Count, req.Language, req.SongType, req.Mood)
	}

	if req.Artist != "" {
		fmt.Fprintf(&b, " Include some songs by %s.", req.Artist)
	}

	b.WriteString(" List them as a numbered list in the following format: Track Name - Artist.")
	b.WriteString(" Finish with a single line in the format: Playlist name: <suggested title>.")

	return b.String()
}

// Generate sends the prompt as one turn and returns the response verbatim.
// Failures surface as GenerationError; this component never retries.
func (g *Generator) Generate(ctx context.Context, req models.PlaylistRequest) (string, error) {
	prompt := BuildPrompt(req)
	log.Debugf("generating candidates: mood=%q language=%q type=%s count=%d",
		req.Mood, req.Language, req.SongType, req.Count)

	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return "", &models.GenerationError{Err: err}
	}
	return raw, nil
}
