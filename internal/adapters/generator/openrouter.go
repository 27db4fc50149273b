package generator

import (
	"context"
	"errors"
	"fmt"
	"ryzexbot/internal/core/domain"

	"github.com/revrost/go-openrouter"
	"github.com/rs/zerolog/log"
)

type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// OpenRouter answers single prompts through any chat model available on OpenRouter.
type OpenRouter struct {
	client       OpenRouterClient
	model        string
	systemPrompt string
}

func NewOpenRouter(apiKey, model, systemPrompt string) *OpenRouter {
	return &OpenRouter{
		model:        model,
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("ryzexbot"),
		),
	}
}

func (c *OpenRouter) GenerateFromPrompt(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}

	messages := make([]openrouter.ChatCompletionMessage, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role:    openrouter.ChatMessageRoleSystem,
			Content: openrouter.Content{Text: c.systemPrompt},
		})
	}

	messages = append(messages, openrouter.ChatCompletionMessage{
		Role:    openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{Text: prompt},
	})

	resp, err := c.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Messages: messages,
		Model:    c.model,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openrouter: %w", domain.ErrProviderFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openrouter: %w", domain.ErrProviderFailed, errors.New("no choices returned"))
	}

	log.Debug().
		Str("model", resp.Model).
		Int("completionTokens", resp.Usage.CompletionTokens).
		Int("totalTokens", resp.Usage.TotalTokens).
		Msg("openrouter response")

	return resp.Choices[0].Message.Content.Text, nil
}
