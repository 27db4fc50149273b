package generator

import (
	"context"
	"errors"
	"ryzexbot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revrost/go-openrouter"
	"github.com/stretchr/testify/assert"
)

// mockClient is a test double for the OpenRouterClient interface.
type mockClient struct {
	createChatCompletionFunc func(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

func (m *mockClient) CreateChatCompletion(ctx context.Context,
	ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	return m.createChatCompletionFunc(ctx, ccr)
}

func TestOpenRouter_GenerateFromPrompt(t *testing.T) {
	reply := openrouter.ChatCompletionResponse{
		Choices: []openrouter.ChatCompletionChoice{{
			Message: openrouter.ChatCompletionMessage{
				Content: openrouter.Content{Text: "hello!"},
			},
		}},
		Model: "google/gemini-2.0-flash-001",
		Usage: openrouter.Usage{
			CompletionTokens: 7,
			TotalTokens:      9,
		},
	}

	testCases := []struct {
		name         string
		systemPrompt string
		prompt       string
		mockResp     openrouter.ChatCompletionResponse
		mockErr      error
		wantMessages int
		expectedResp string
		expectErr    error
	}{
		{
			name:         "success with system prompt",
			systemPrompt: "You are Ryzex AI.",
			prompt:       "hi",
			mockResp:     reply,
			wantMessages: 2,
			expectedResp: "hello!",
		},
		{
			name:         "success without system prompt",
			prompt:       "hi",
			mockResp:     reply,
			wantMessages: 1,
			expectedResp: "hello!",
		},
		{
			name:         "API error returned",
			prompt:       "fail",
			mockErr:      errors.New("api failure"),
			wantMessages: 1,
			expectErr:    domain.ErrProviderFailed,
		},
		{
			name:         "no choices",
			prompt:       "hi",
			mockResp:     openrouter.ChatCompletionResponse{},
			wantMessages: 1,
			expectErr:    domain.ErrProviderFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got openrouter.ChatCompletionRequest
			mock := &mockClient{
				createChatCompletionFunc: func(_ context.Context,
					ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
					got = ccr
					return tc.mockResp, tc.mockErr
				},
			}
			gen := &OpenRouter{
				client:       mock,
				model:        "google/gemini-2.0-flash-001",
				systemPrompt: tc.systemPrompt,
			}
			resp, err := gen.GenerateFromPrompt(t.Context(), tc.prompt)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedResp, resp)
			}

			require.Len(t, got.Messages, tc.wantMessages)
			assert.Equal(t, "google/gemini-2.0-flash-001", got.Model)
			assert.Equal(t, tc.prompt, got.Messages[len(got.Messages)-1].Content.Text)
		})
	}
}
