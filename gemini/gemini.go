package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"moodlist/config"
)

// Client is a thin wrapper over the Gemini API for single-turn prompts.
type Client struct {
	apiKey string
	model  string
}

func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// Generate sends one user-role prompt and returns the raw text response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				sb.WriteString(fmt.Sprint(part))
			}
		}
	}

	if sb.Len() == 0 {
		return "", errors.New("gemini returned an empty response")
	}

	log.Tracef("gemini response: %d bytes", sb.Len())
	return sb.String(), nil
}
