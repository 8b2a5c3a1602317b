package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trivia-quiz/internal/quiz"
)

var _ quiz.AnswerLog = (*SQLiteStore)(nil)

// StartSession stores the session row and its ordered questions in one
// transaction.
func (s *SQLiteStore) StartSession(ctx context.Context, metadata quiz.SessionMetadata, questions []quiz.Question) error {
	if metadata.SessionID == "" {
		return errors.New("session id is required")
	}
	if metadata.StartedAt.IsZero() {
		metadata.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO sessions (session_id, requested, category, difficulty, question_type, started_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		metadata.SessionID,
		metadata.Requested,
		metadata.Category,
		metadata.Difficulty,
		metadata.Type,
		metadata.StartedAt.UnixNano(),
	); err != nil {
		return err
	}

	for idx, question := range questions {
		incorrectJSON, err := json.Marshal(question.IncorrectAnswers)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO session_questions (session_id, position, question_id, kind, prompt, correct_answer, incorrect_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			metadata.SessionID,
			idx,
			question.ID,
			string(question.Kind),
			question.Text,
			question.CorrectAnswer,
			string(incorrectJSON),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecordAnswer stores one answer. Each position of a session is answered at
// most once.
func (s *SQLiteStore) RecordAnswer(ctx context.Context, record quiz.AnswerRecord) error {
	if record.AnsweredAt.IsZero() {
		record.AnsweredAt = time.Now().UTC()
	}

	exists, err := s.sessionExists(ctx, record.SessionID)
	if err != nil {
		return err
	}
	if !exists {
		return quiz.ErrSessionNotFound
	}

	correct := 0
	if record.Correct {
		correct = 1
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO answers (session_id, position, question_id, given, correct, answered_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.SessionID,
		record.Position,
		record.QuestionID,
		record.Given,
		correct,
		record.AnsweredAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert answer at position %d: %w", record.Position, err)
	}
	return nil
}

func (s *SQLiteStore) Summary(ctx context.Context, sessionID string) (quiz.Summary, error) {
	summary := quiz.Summary{SessionID: sessionID}

	err := s.db.QueryRowContext(
		ctx,
		`SELECT s.requested,
			(SELECT COUNT(*) FROM session_questions sq WHERE sq.session_id = s.session_id),
			(SELECT COUNT(*) FROM answers a WHERE a.session_id = s.session_id),
			(SELECT COALESCE(SUM(a.correct), 0) FROM answers a WHERE a.session_id = s.session_id)
		 FROM sessions s
		 WHERE s.session_id = ?`,
		sessionID,
	).Scan(&summary.Requested, &summary.Fetched, &summary.Answered, &summary.Correct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Summary{}, quiz.ErrSessionNotFound
		}
		return quiz.Summary{}, err
	}
	return summary, nil
}

// SessionAnswers lists the recorded answers of a session in question order.
func (s *SQLiteStore) SessionAnswers(ctx context.Context, sessionID string) ([]quiz.AnswerRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT position, question_id, given, correct, answered_at_unix
		 FROM answers
		 WHERE session_id = ?
		 ORDER BY position ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]quiz.AnswerRecord, 0)
	for rows.Next() {
		var (
			record     quiz.AnswerRecord
			correct    int
			answeredNs int64
		)
		if err := rows.Scan(&record.Position, &record.QuestionID, &record.Given, &correct, &answeredNs); err != nil {
			return nil, err
		}
		record.SessionID = sessionID
		record.Correct = correct == 1
		record.AnsweredAt = time.Unix(0, answeredNs).UTC()
		records = append(records, record)
	}

	return records, rows.Err()
}

// SessionQuestions returns the questions of a session in the order they were
// fetched.
func (s *SQLiteStore) SessionQuestions(ctx context.Context, sessionID string) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_id, kind, prompt, correct_answer, incorrect_json
		 FROM session_questions
		 WHERE session_id = ?
		 ORDER BY position ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]quiz.Question, 0)
	for rows.Next() {
		var (
			question      quiz.Question
			kind          string
			incorrectJSON string
		)
		if err := rows.Scan(&question.ID, &kind, &question.Text, &question.CorrectAnswer, &incorrectJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(incorrectJSON), &question.IncorrectAnswers); err != nil {
			return nil, err
		}
		question.Kind = quiz.Kind(kind)
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		exists, err := s.sessionExists(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, quiz.ErrSessionNotFound
		}
	}
	return questions, nil
}

func (s *SQLiteStore) sessionExists(ctx context.Context, sessionID string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM sessions WHERE session_id = ? LIMIT 1`,
		sessionID,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
