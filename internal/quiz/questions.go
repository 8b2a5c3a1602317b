package quiz

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"math/rand"
	"strings"

	"trivia-quiz/internal/opentdb"
)

type Kind string

const (
	KindMultiple Kind = "multiple"
	KindBoolean  Kind = "boolean"
)

// KindOf maps a question type string onto a Kind. Anything other than
// "multiple" is asked as a true/false question.
func KindOf(questionType string) Kind {
	if strings.TrimSpace(questionType) == string(KindMultiple) {
		return KindMultiple
	}
	return KindBoolean
}

// Shuffler permutes n elements through swap, with the contract of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// RandomShuffle is a uniform shuffle from the auto-seeded global source.
func RandomShuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Question is immutable once built.
type Question struct {
	ID               string
	Text             string
	Kind             Kind
	CorrectAnswer    string
	IncorrectAnswers []string
	Category         string
	Difficulty       string
}

// BuildQuestions converts API payloads into questions. requestedType is the
// fallback when a payload does not carry its own type.
func BuildQuestions(raw []opentdb.RawQuestion, requestedType string) []Question {
	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		question := buildQuestion(item, requestedType)
		question.ID = MakeQuestionID(question)
		questions = append(questions, question)
	}
	return questions
}

func buildQuestion(raw opentdb.RawQuestion, requestedType string) Question {
	questionType := raw.Type
	if strings.TrimSpace(questionType) == "" {
		questionType = requestedType
	}

	incorrect := make([]string, 0, len(raw.IncorrectAnswers))
	for _, answer := range raw.IncorrectAnswers {
		incorrect = append(incorrect, html.UnescapeString(answer))
	}

	return Question{
		Text:             html.UnescapeString(raw.Question),
		Kind:             KindOf(questionType),
		CorrectAnswer:    html.UnescapeString(raw.CorrectAnswer),
		IncorrectAnswers: incorrect,
		Category:         html.UnescapeString(raw.Category),
		Difficulty:       raw.Difficulty,
	}
}

// Candidates returns the incorrect answers plus the correct one, permuted by
// shuffle. The correct answer is present exactly once.
func (q Question) Candidates(shuffle Shuffler) []string {
	candidates := make([]string, 0, len(q.IncorrectAnswers)+1)
	candidates = append(candidates, q.IncorrectAnswers...)
	candidates = append(candidates, q.CorrectAnswer)

	if shuffle == nil {
		shuffle = RandomShuffle
	}
	shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates
}

// IsCorrect compares multiple choice answers exactly and true/false answers
// case-insensitively.
func (q Question) IsCorrect(answer string) bool {
	if q.Kind == KindBoolean {
		return strings.ToLower(answer) == strings.ToLower(q.CorrectAnswer)
	}
	return answer == q.CorrectAnswer
}

func MakeQuestionID(question Question) string {
	var keyBuilder strings.Builder
	keyBuilder.WriteString(string(question.Kind))
	keyBuilder.WriteString("|")
	keyBuilder.WriteString(question.Text)
	keyBuilder.WriteString("|")
	keyBuilder.WriteString(question.CorrectAnswer)
	for _, answer := range question.IncorrectAnswers {
		keyBuilder.WriteString("|")
		keyBuilder.WriteString(answer)
	}

	hash := sha1.Sum([]byte(keyBuilder.String()))
	return "q_" + hex.EncodeToString(hash[:6])
}
