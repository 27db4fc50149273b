package provider

import (
	"context"
	"fmt"
	"html"
	"math/rand/v2"
	"net/url"
	"ryzexbot/internal/core/domain"
)

const openTDBURL = "https://opentdb.com"

// OpenTDB fetches multiple-choice questions from the Open Trivia Database.
type OpenTDB struct {
	client
	shuffle func(n int, swap func(i, j int))
}

func NewOpenTDB(opts Options) *OpenTDB {
	return &OpenTDB{client: newClient("opentdb", openTDBURL, opts), shuffle: rand.Shuffle}
}

type openTDBResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// Question returns one question with its answers HTML-unescaped and shuffled.
func (o *OpenTDB) Question(ctx context.Context) (domain.TriviaQuestion, error) {
	query := url.Values{}
	query.Set("amount", "1")
	query.Set("type", "multiple")

	var res openTDBResponse
	if err := o.getJSON(ctx, "/api.php", query, &res); err != nil {
		return domain.TriviaQuestion{}, err
	}

	if res.ResponseCode != 0 || len(res.Results) == 0 {
		return domain.TriviaQuestion{}, fmt.Errorf("%w: opentdb: no question returned (code %d)",
			domain.ErrProviderFailed, res.ResponseCode)
	}

	r := res.Results[0]
	q := domain.TriviaQuestion{
		Question: html.UnescapeString(r.Question),
		Correct:  html.UnescapeString(r.CorrectAnswer),
	}

	for _, a := range r.IncorrectAnswers {
		q.Options = append(q.Options, html.UnescapeString(a))
	}
	q.Options = append(q.Options, q.Correct)

	o.shuffle(len(q.Options), func(i, j int) {
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
	})

	return q, nil
}
