package generator

import (
	"context"
	"fmt"
	"net/http"
	"ryzexbot/internal/core/domain"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

const HuggingFaceInferenceURL = "https://api-inference.huggingface.co/models/"

// HuggingFace generates images with a text-to-image model on the HuggingFace inference API.
type HuggingFace struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewHuggingFace targets the given model id under baseURL, e.g. HuggingFaceInferenceURL.
func NewHuggingFace(baseURL, model, apiKey string, timeout time.Duration) *HuggingFace {
	return &HuggingFace{
		apiKey:   apiKey,
		endpoint: strings.TrimSuffix(baseURL, "/") + "/" + model,
		client:   newHTTPClient(timeout),
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

func (h *HuggingFace) GenerateFromPrompt(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}

	body, err := postJSON(ctx, h.client, h.endpoint, "Bearer "+h.apiKey, inferenceRequest{Inputs: prompt})
	if err != nil {
		return nil, fmt.Errorf("%w: huggingface: %w", domain.ErrProviderFailed, err)
	}

	mt := mimetype.Detect(body)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: huggingface: expected image, got %s", domain.ErrProviderFailed, mt.String())
	}

	log.Debug().Str("mimetype", mt.String()).Int("bytes", len(body)).Msg("huggingface image generated")

	return body, nil
}
