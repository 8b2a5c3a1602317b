package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"trivia-quiz/internal/opentdb"
	"trivia-quiz/internal/quiz"
)

// triviaServer is a stand-in for the Open Trivia Database.
type triviaServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []url.Values
}

func startTriviaServer(status int, questions []opentdb.RawQuestion) *triviaServer {
	ts := &triviaServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.requests = append(ts.requests, r.URL.Query())
		ts.mu.Unlock()

		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response_code": 0,
			"results":       questions,
		})
	}))
	return ts
}

func (ts *triviaServer) Requests() []url.Values {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]url.Values(nil), ts.requests...)
}

func multipleChoiceQuestions(n int) []opentdb.RawQuestion {
	questions := make([]opentdb.RawQuestion, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, opentdb.RawQuestion{
			Type:          "multiple",
			Question:      fmt.Sprintf("Question %d", i),
			CorrectAnswer: fmt.Sprintf("Answer %d", i),
			IncorrectAnswers: []string{
				fmt.Sprintf("Decoy %d-a", i),
				fmt.Sprintf("Decoy %d-b", i),
				fmt.Sprintf("Decoy %d-c", i),
			},
		})
	}
	return questions
}

func booleanQuestions(answers ...string) []opentdb.RawQuestion {
	questions := make([]opentdb.RawQuestion, 0, len(answers))
	for i, answer := range answers {
		wrong := "False"
		if strings.EqualFold(answer, "false") {
			wrong = "True"
		}
		questions = append(questions, opentdb.RawQuestion{
			Type:             "boolean",
			Question:         fmt.Sprintf("Statement %d", i+1),
			CorrectAnswer:    answer,
			IncorrectAnswers: []string{wrong},
		})
	}
	return questions
}

// identityShuffle leaves candidates in payload order, so the correct answer
// of a four-option question is always choice 4.
func identityShuffle(int, func(i, j int)) {}

func useIdentityShuffle() func() {
	orig := newShuffler
	newShuffler = func() quiz.Shuffler { return identityShuffle }
	return func() { newShuffler = orig }
}

func plainStyles(w io.Writer) styles {
	return newStyles(lipgloss.NewRenderer(w))
}

func inputLines(lines ...string) io.Reader {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return &buf
}
