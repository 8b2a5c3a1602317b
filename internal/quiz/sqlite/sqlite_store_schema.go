package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			requested INTEGER NOT NULL,
			category INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			question_type TEXT NOT NULL,
			started_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_questions (
			session_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			prompt TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			incorrect_json TEXT NOT NULL,
			PRIMARY KEY (session_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			session_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			given TEXT NOT NULL,
			correct INTEGER NOT NULL,
			answered_at_unix INTEGER NOT NULL,
			PRIMARY KEY (session_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id, correct);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
