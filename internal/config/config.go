package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultAmount     = 5
	DefaultCategory   = 18
	DefaultDifficulty = "easy"
	DefaultType       = "multiple"
	DefaultAPIURL     = "https://opentdb.com/api.php"
)

var ErrInvalidAmount = errors.New("number of questions must be a positive integer")

// Quiz selects which questions are requested for a session. Difficulty and
// Type are forwarded to the trivia API as-is; the API decides what is valid.
type Quiz struct {
	Amount     int
	Category   int
	Difficulty string
	Type       string
}

// Options are the runtime settings that do not affect question selection.
type Options struct {
	Animate bool
	Verbose bool
	APIURL  string
}

func Default() Quiz {
	return Quiz{
		Amount:     DefaultAmount,
		Category:   DefaultCategory,
		Difficulty: DefaultDifficulty,
		Type:       DefaultType,
	}
}

func (q Quiz) Validate() error {
	if q.Amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, q.Amount)
	}
	return nil
}

// Normalize trims whitespace around the pass-through fields without
// otherwise interpreting them.
func (q Quiz) Normalize() Quiz {
	q.Difficulty = strings.TrimSpace(q.Difficulty)
	q.Type = strings.TrimSpace(q.Type)
	return q
}

func (o Options) ResolvedAPIURL() string {
	if url := strings.TrimSpace(o.APIURL); url != "" {
		return url
	}
	return DefaultAPIURL
}
