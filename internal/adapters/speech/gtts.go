package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"ryzexbot/internal/core/domain"
	"ryzexbot/internal/core/port"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

const (
	GoogleTranslateURL = "https://translate.google.com/translate_tts"

	// maxChunkLength is the longest text the translate endpoint speaks in one request.
	maxChunkLength = 100
	maxAudioBytes  = 10 << 20
)

// GTTS synthesizes speech with the Google Translate text-to-speech endpoint and stores the result as MP3.
type GTTS struct {
	endpoint string
	language string
	store    port.TempStore
	client   *http.Client
}

func NewGTTS(endpoint, language string, store port.TempStore, timeout time.Duration) *GTTS {
	return &GTTS{
		endpoint: endpoint,
		language: language,
		store:    store,
		client:   &http.Client{Timeout: timeout},
	}
}

// SynthesizeToFile returns the path of an MP3 file; the caller removes it.
func (g *GTTS) SynthesizeToFile(ctx context.Context, text string) (string, error) {
	chunks := splitText(text, maxChunkLength)
	if len(chunks) == 0 {
		return "", domain.ErrEmptyPrompt
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetchChunk(ctx, &audio, chunk, i, len(chunks)); err != nil {
			return "", fmt.Errorf("%w: gtts: chunk %d: %w", domain.ErrProviderFailed, i, err)
		}
	}

	mt := mimetype.Detect(audio.Bytes())
	if !strings.HasPrefix(mt.String(), "audio/") {
		return "", fmt.Errorf("%w: gtts: expected audio, got %s", domain.ErrProviderFailed, mt.String())
	}

	log.Debug().Int("chunks", len(chunks)).Int("bytes", audio.Len()).Msg("speech synthesized")

	return g.store.Save(audio.Bytes(), ".mp3")
}

func (g *GTTS) fetchChunk(ctx context.Context, w io.Writer, chunk string, idx, total int) error {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", g.language)
	query.Set("q", chunk)
	query.Set("total", strconv.Itoa(total))
	query.Set("idx", strconv.Itoa(idx))
	query.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("error executing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", res.StatusCode)
	}

	if _, err := io.Copy(w, io.LimitReader(res.Body, maxAudioBytes)); err != nil {
		return fmt.Errorf("error reading audio: %w", err)
	}

	return nil
}

// splitText breaks text into chunks of at most limit runes, preferring whitespace boundaries.
func splitText(text string, limit int) []string {
	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)

		for len(w) > limit {
			flush()
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}

		switch {
		case len(current) == 0:
			current = append(current, w...)
		case len(current)+1+len(w) <= limit:
			current = append(current, ' ')
			current = append(current, w...)
		default:
			flush()
			current = append(current, w...)
		}
	}

	flush()

	return chunks
}
