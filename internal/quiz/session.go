package quiz

import "errors"

var ErrSessionOver = errors.New("quiz session is over")

// Session tracks progress through one run. The number of answered questions
// always equals the current index, and no question follows a wrong answer.
type Session struct {
	ID        string
	Requested int

	questions []Question
	index     int
	score     int
	lost      bool
}

func NewSession(id string, requested int, questions []Question) *Session {
	owned := make([]Question, len(questions))
	copy(owned, questions)
	return &Session{
		ID:        id,
		Requested: requested,
		questions: owned,
	}
}

// Next returns the question at the current index, or false once the session
// is over.
func (s *Session) Next() (Question, bool) {
	if s.Over() {
		return Question{}, false
	}
	return s.questions[s.index], true
}

func (s *Session) Record(correct bool) error {
	if s.Over() {
		return ErrSessionOver
	}
	s.index++
	if correct {
		s.score++
		return nil
	}
	s.lost = true
	return nil
}

func (s *Session) Over() bool {
	return s.lost || s.index >= len(s.questions)
}

func (s *Session) Lost() bool {
	return s.lost
}

func (s *Session) Won() bool {
	return !s.lost && s.index >= len(s.questions)
}

func (s *Session) Score() int {
	return s.score
}

// Answered is the number of questions answered so far, which is also the
// index of the next question.
func (s *Session) Answered() int {
	return s.index
}

func (s *Session) Total() int {
	return len(s.questions)
}
