package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/opentdb"
)

type QuestionsFetcher func(ctx context.Context, query opentdb.Query) ([]opentdb.RawQuestion, error)

type Service struct {
	fetcher QuestionsFetcher
	answers AnswerLog
	shuffle Shuffler
	now     func() time.Time
}

// NewService wires a fetcher and an optional answer log. A nil log disables
// answer recording.
func NewService(fetcher QuestionsFetcher, answers AnswerLog) *Service {
	return &Service{
		fetcher: fetcher,
		answers: answers,
		shuffle: RandomShuffle,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithShuffler replaces the candidate shuffle, mostly for tests.
func (s *Service) WithShuffler(shuffle Shuffler) *Service {
	if shuffle != nil {
		s.shuffle = shuffle
	}
	return s
}

// Start fetches the questions for cfg and opens a session. Fetch failures keep
// opentdb.ErrFetchFailed in their chain.
func (s *Service) Start(ctx context.Context, cfg config.Quiz) (*Session, error) {
	if s.fetcher == nil {
		return nil, errors.New("question fetcher is not configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rawQuestions, err := s.fetcher(ctx, opentdb.Query{
		Amount:     cfg.Amount,
		Category:   cfg.Category,
		Difficulty: cfg.Difficulty,
		Type:       cfg.Type,
	})
	if err != nil {
		return nil, err
	}
	if len(rawQuestions) > cfg.Amount {
		rawQuestions = rawQuestions[:cfg.Amount]
	}

	questions := BuildQuestions(rawQuestions, cfg.Type)
	session := NewSession(uuid.NewString(), cfg.Amount, questions)

	if s.answers != nil {
		metadata := SessionMetadata{
			SessionID:  session.ID,
			Requested:  cfg.Amount,
			Category:   cfg.Category,
			Difficulty: cfg.Difficulty,
			Type:       cfg.Type,
			StartedAt:  s.now(),
		}
		if err := s.answers.StartSession(ctx, metadata, questions); err != nil {
			return nil, fmt.Errorf("record session: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("session_id", session.ID).
		Int("requested", cfg.Amount).
		Int("fetched", len(questions)).
		Msg("session started")
	return session, nil
}

func (s *Service) Candidates(question Question) []string {
	return question.Candidates(s.shuffle)
}

// Answer checks given against the session's current question, records it and
// advances the session.
func (s *Service) Answer(ctx context.Context, session *Session, given string) (bool, error) {
	question, ok := session.Next()
	if !ok {
		return false, ErrSessionOver
	}
	position := session.Answered()
	correct := question.IsCorrect(given)

	if s.answers != nil {
		if err := s.answers.RecordAnswer(ctx, AnswerRecord{
			SessionID:  session.ID,
			QuestionID: question.ID,
			Position:   position,
			Given:      given,
			Correct:    correct,
			AnsweredAt: s.now(),
		}); err != nil {
			return false, fmt.Errorf("record answer: %w", err)
		}
	}

	if err := session.Record(correct); err != nil {
		return false, err
	}
	return correct, nil
}

// Summary reads the session totals back from the answer log, or derives them
// from the session when no log is configured.
func (s *Service) Summary(ctx context.Context, session *Session) (Summary, error) {
	if s.answers == nil {
		return Summary{
			SessionID: session.ID,
			Requested: session.Requested,
			Fetched:   session.Total(),
			Answered:  session.Answered(),
			Correct:   session.Score(),
		}, nil
	}
	return s.answers.Summary(ctx, session.ID)
}
