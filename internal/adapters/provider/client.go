package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"ryzexbot/internal/core/domain"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
)

// Recorder observes the outcome of every outgoing request.
type Recorder interface {
	ObserveRequest(provider string, err error)
}

// Options are shared by all providers. BaseURL replaces the public endpoint and is used by tests.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Recorder Recorder
}

type client struct {
	name     string
	baseURL  string
	http     *http.Client
	recorder Recorder
}

func newClient(name, defaultBaseURL string, opts Options) client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return client{
		name:     name,
		baseURL:  opts.BaseURL,
		http:     &http.Client{Timeout: opts.Timeout},
		recorder: opts.Recorder,
	}
}

// statusError is returned for responses outside the 2xx range.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

// getJSON requests baseURL+path and decodes the JSON body into out. Every failure wraps domain.ErrProviderFailed.
func (c client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	err := c.doGetJSON(ctx, path, query, out)

	if c.recorder != nil {
		c.recorder.ObserveRequest(c.name, err)
	}

	if err != nil {
		log.Debug().Err(err).Str("provider", c.name).Str("path", path).Msg("provider request failed")
		return fmt.Errorf("%w: %s: %w", domain.ErrProviderFailed, c.name, err)
	}

	return nil
}

func (c client) doGetJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error executing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return &statusError{code: res.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
