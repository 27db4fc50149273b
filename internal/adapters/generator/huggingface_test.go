package generator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"ryzexbot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestHuggingFace_GenerateFromPrompt(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    []byte
		wantErr bool
	}{
		{name: "png image", status: http.StatusOK, body: pngHeader},
		{name: "json instead of image", status: http.StatusOK, body: []byte(`{"error":"loading"}`), wantErr: true},
		{name: "model loading", status: http.StatusServiceUnavailable, body: []byte(`{"estimated_time":20}`),
			wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/gsdf/Counterfeit-V2.5", r.URL.Path)
				assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

				var req inferenceRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "a red fox", req.Inputs)

				w.WriteHeader(tc.status)
				_, _ = w.Write(tc.body)
			}))
			defer srv.Close()

			h := NewHuggingFace(srv.URL+"/", "gsdf/Counterfeit-V2.5", "hf-key", time.Second)

			got, err := h.GenerateFromPrompt(t.Context(), "a red fox")
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrProviderFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.body, got)
		})
	}
}

func TestHuggingFace_EmptyPrompt(t *testing.T) {
	h := NewHuggingFace(HuggingFaceInferenceURL, "model", "key", time.Second)

	_, err := h.GenerateFromPrompt(t.Context(), "")

	require.ErrorIs(t, err, domain.ErrEmptyPrompt)
}
