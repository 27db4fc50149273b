package generator

import (
	"context"
	"errors"
	"ryzexbot/internal/core/domain"
	"testing"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockModel struct {
	resp  *gemini.GenerateContentResponse
	err   error
	parts []gemini.Part
}

func (m *mockModel) GenerateContent(_ context.Context,
	parts ...gemini.Part) (*gemini.GenerateContentResponse, error) {
	m.parts = parts
	return m.resp, m.err
}

func candidate(parts ...gemini.Part) *gemini.GenerateContentResponse {
	return &gemini.GenerateContentResponse{
		Candidates: []*gemini.Candidate{{Content: &gemini.Content{Parts: parts}}},
	}
}

func TestGemini_GenerateFromPrompt(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		resp    *gemini.GenerateContentResponse
		err     error
		want    string
		wantErr error
	}{
		{
			name:   "joins text parts",
			prompt: "tell me a joke",
			resp:   candidate(gemini.Text("Why did the gopher "), gemini.Text("cross the road?")),
			want:   "Why did the gopher cross the road?",
		},
		{
			name:    "api error",
			prompt:  "hi",
			err:     errors.New("googleapi: Error 429"),
			wantErr: domain.ErrProviderFailed,
		},
		{
			name:    "no candidates",
			prompt:  "hi",
			resp:    &gemini.GenerateContentResponse{},
			wantErr: domain.ErrProviderFailed,
		},
		{
			name:    "empty prompt",
			prompt:  "  ",
			wantErr: domain.ErrEmptyPrompt,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &mockModel{resp: tc.resp, err: tc.err}
			g := &Gemini{model: m}

			got, err := g.GenerateFromPrompt(t.Context(), tc.prompt)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, []gemini.Part{gemini.Text(tc.prompt)}, m.parts)
		})
	}
}

func TestGemini_ErrorKeepsProviderMessage(t *testing.T) {
	g := &Gemini{model: &mockModel{err: errors.New("quota exceeded")}}

	_, err := g.GenerateFromPrompt(t.Context(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
