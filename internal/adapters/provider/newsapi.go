package provider

import (
	"context"
	"net/url"
	"ryzexbot/internal/core/domain"
)

const (
	newsAPIURL   = "https://newsapi.org"
	maxHeadlines = 5
)

type NewsAPI struct {
	client
	apiKey   string
	country  string
	category string
}

func NewNewsAPI(apiKey, country, category string, opts Options) *NewsAPI {
	return &NewsAPI{client: newClient("newsapi", newsAPIURL, opts), apiKey: apiKey, country: country, category: category}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (n *NewsAPI) TopHeadlines(ctx context.Context) ([]domain.Headline, error) {
	query := url.Values{}
	query.Set("country", n.country)
	query.Set("category", n.category)
	query.Set("pageSize", "5")
	query.Set("apiKey", n.apiKey)

	var res newsAPIResponse
	if err := n.getJSON(ctx, "/v2/top-headlines", query, &res); err != nil {
		return nil, err
	}

	headlines := make([]domain.Headline, 0, min(len(res.Articles), maxHeadlines))
	for _, a := range res.Articles {
		if len(headlines) == maxHeadlines {
			break
		}

		headlines = append(headlines, domain.Headline{Title: a.Title, Source: a.Source.Name})
	}

	return headlines, nil
}
