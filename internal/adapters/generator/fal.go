package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"ryzexbot/internal/core/domain"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// FAL transcribes audio through a Whisper endpoint hosted on fal.ai.
type FAL struct {
	falAPIKey       string
	whisperEndpoint string
	client          *http.Client
}

func NewFAL(whisperEndpoint, apiKey string, timeout time.Duration) *FAL {
	return &FAL{
		falAPIKey:       apiKey,
		whisperEndpoint: whisperEndpoint,
		client:          newHTTPClient(timeout),
	}
}

type audioRequest struct {
	AudioURL string `json:"audio_url"`
}

type audioResponse struct {
	Text string `json:"text"`
}

func (f *FAL) GenerateFromAudio(ctx context.Context, url string) (string, error) {
	body, err := postJSON(ctx, f.client, f.whisperEndpoint, "Key "+f.falAPIKey, audioRequest{AudioURL: url})
	if err != nil {
		return "", fmt.Errorf("%w: fal: %w", domain.ErrProviderFailed, err)
	}

	var result audioResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: fal: error unmarshalling audio response: %w", domain.ErrProviderFailed, err)
	}

	if strings.TrimSpace(result.Text) == "" {
		return "", fmt.Errorf("%w: fal: empty transcript", domain.ErrProviderFailed)
	}

	log.Debug().Int("chars", len(result.Text)).Msg("FAL transcript")

	return result.Text, nil
}
