package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"ryzexbot/internal/core/domain"
	"strings"

	"github.com/rs/zerolog/log"
)

const openWeatherURL = "https://api.openweathermap.org"

type OpenWeather struct {
	client
	apiKey string
}

func NewOpenWeather(apiKey string, opts Options) *OpenWeather {
	return &OpenWeather{client: newClient("openweather", openWeatherURL, opts), apiKey: apiKey}
}

type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Current looks up city as given and, if that fails with an HTTP error, retries with the part before the first
// comma. domain.ErrCityNotFound is returned when the last attempt answered 404.
func (o *OpenWeather) Current(ctx context.Context, city string) (domain.Weather, error) {
	w, err := o.lookup(ctx, city)
	if err == nil {
		return w, nil
	}

	var se *statusError
	if !errors.As(err, &se) {
		return domain.Weather{}, err
	}

	if simple := simplifyCity(city); simple != "" && simple != city {
		log.Debug().Str("city", city).Str("fallback", simple).Msg("retrying weather lookup without country code")

		w, err = o.lookup(ctx, simple)
		if err == nil {
			return w, nil
		}

		if !errors.As(err, &se) {
			return domain.Weather{}, err
		}
	}

	if se.code == http.StatusNotFound {
		return domain.Weather{}, fmt.Errorf("%w: %s", domain.ErrCityNotFound, city)
	}

	return domain.Weather{}, err
}

func (o *OpenWeather) lookup(ctx context.Context, city string) (domain.Weather, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", o.apiKey)
	query.Set("units", "metric")

	var res openWeatherResponse
	if err := o.getJSON(ctx, "/data/2.5/weather", query, &res); err != nil {
		return domain.Weather{}, err
	}

	if len(res.Weather) == 0 || res.Main.Temp == nil {
		return domain.Weather{}, fmt.Errorf("%w: openweather: missing weather data", domain.ErrProviderFailed)
	}

	return domain.Weather{
		City:         res.Name,
		Description:  res.Weather[0].Description,
		TemperatureC: *res.Main.Temp,
	}, nil
}

func simplifyCity(city string) string {
	name, _, _ := strings.Cut(city, ",")
	return strings.TrimSpace(name)
}
