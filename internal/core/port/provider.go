package port

import (
	"context"
	"ryzexbot/internal/core/domain"
)

type WeatherProvider interface {
	// Current returns the weather for a city, or domain.ErrCityNotFound after all lookup attempts failed.
	Current(ctx context.Context, city string) (domain.Weather, error)
}

type NewsProvider interface {
	TopHeadlines(ctx context.Context) ([]domain.Headline, error)
}

type TriviaProvider interface {
	Question(ctx context.Context) (domain.TriviaQuestion, error)
}

type FactProvider interface {
	RandomFact(ctx context.Context) (string, error)
}

type QuoteProvider interface {
	Price(ctx context.Context, symbol, currency string) (domain.Quote, error)
}
