package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

const DefaultURL = "https://opentdb.com/api.php"

// ErrFetchFailed wraps every failure of a question request: transport errors,
// non-success statuses, undecodable bodies and empty or rejected result sets.
var ErrFetchFailed = errors.New("fetch failed")

// RawQuestion mirrors the OpenTriviaDB question payload.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

// Query holds the request parameters. Difficulty and Type are sent verbatim.
type Query struct {
	Amount     int
	Category   int
	Difficulty string
	Type       string
}

func (q Query) values() url.Values {
	values := url.Values{}
	values.Set("amount", strconv.Itoa(q.Amount))
	values.Set("category", strconv.Itoa(q.Category))
	values.Set("difficulty", q.Difficulty)
	values.Set("type", q.Type)
	return values
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// FetchQuestions performs a single GET against the trivia API. It never
// retries; the caller decides what a failure means for the session.
func (c *Client) FetchQuestions(ctx context.Context, query Query) ([]RawQuestion, error) {
	if query.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", ErrFetchFailed, query.Amount)
	}

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	reqURL.RawQuery = query.values().Encode()

	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("url", reqURL.String()).Msg("requesting questions")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: opentdb returned status %d", ErrFetchFailed, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}

	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: opentdb response_code=%d", ErrFetchFailed, payload.ResponseCode)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: opentdb returned no questions", ErrFetchFailed)
	}

	logger.Debug().Int("count", len(payload.Results)).Msg("questions received")
	return payload.Results, nil
}
