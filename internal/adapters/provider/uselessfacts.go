package provider

import (
	"context"
	"fmt"
	"net/url"
	"ryzexbot/internal/core/domain"
	"strings"
)

const uselessFactsURL = "https://uselessfacts.jsph.pl"

type UselessFacts struct {
	client
}

func NewUselessFacts(opts Options) *UselessFacts {
	return &UselessFacts{client: newClient("uselessfacts", uselessFactsURL, opts)}
}

func (u *UselessFacts) RandomFact(ctx context.Context) (string, error) {
	var res struct {
		Text string `json:"text"`
	}

	if err := u.getJSON(ctx, "/random.json", url.Values{"language": {"en"}}, &res); err != nil {
		return "", err
	}

	fact := strings.TrimSpace(res.Text)
	if fact == "" {
		return "", fmt.Errorf("%w: uselessfacts: empty fact", domain.ErrProviderFailed)
	}

	return fact, nil
}
