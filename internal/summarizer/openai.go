package summarizer

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter uses the chat completions endpoint.
func NewOpenAICompleter(apiKey, model string) Completer {
	return &openAICompleter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *openAICompleter) Complete(ctx context.Context, p Prompt) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
