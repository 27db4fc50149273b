package generator

import (
	"context"
	"errors"
	"fmt"
	"ryzexbot/internal/core/domain"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ContentGenerator is the part of *genai.GenerativeModel used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...gemini.Part) (*gemini.GenerateContentResponse, error)
}

type Gemini struct {
	client *gemini.Client
	model  ContentGenerator
}

func NewGemini(ctx context.Context, apiKey, model, systemPrompt string) (*Gemini, error) {
	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	if systemPrompt != "" {
		m.SystemInstruction = &gemini.Content{Parts: []gemini.Part{gemini.Text(systemPrompt)}}
	}

	return &Gemini{client: client, model: m}, nil
}

func (g *Gemini) GenerateFromPrompt(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.ErrEmptyPrompt
	}

	resp, err := g.model.GenerateContent(ctx, gemini.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", domain.ErrProviderFailed, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: gemini: %w", domain.ErrProviderFailed, errors.New("empty response"))
	}

	log.Debug().Int("chars", len(text)).Msg("gemini response")

	return text, nil
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}

	return g.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *gemini.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(gemini.Text); ok {
			sb.WriteString(string(t))
		}
	}

	return strings.TrimSpace(sb.String())
}
