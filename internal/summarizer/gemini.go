package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a Gemini API client once; it is reused for
// every completion.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (Completer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &geminiCompleter{client: client, model: model}, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, p Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(p.Temperature),
		MaxOutputTokens:   int32(p.MaxTokens),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
