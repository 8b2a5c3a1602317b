package quiz

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionMetadata struct {
	SessionID  string
	Requested  int
	Category   int
	Difficulty string
	Type       string
	StartedAt  time.Time
}

type AnswerRecord struct {
	SessionID  string
	QuestionID string
	Position   int
	Given      string
	Correct    bool
	AnsweredAt time.Time
}

type Summary struct {
	SessionID string
	Requested int
	Fetched   int
	Answered  int
	Correct   int
}

// AnswerLog keeps the questions and answers of the sessions in this process.
type AnswerLog interface {
	StartSession(ctx context.Context, metadata SessionMetadata, questions []Question) error
	RecordAnswer(ctx context.Context, record AnswerRecord) error
	Summary(ctx context.Context, sessionID string) (Summary, error)
}
