package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/opentdb"
	"trivia-quiz/internal/quiz"
)

func newTestService(baseURL string) *quiz.Service {
	client := opentdb.NewClient(&http.Client{}, baseURL)
	return quiz.NewService(client.FetchQuestions, nil).WithShuffler(identityShuffle)
}

func multipleConfig(amount int) config.Quiz {
	return config.Quiz{Amount: amount, Category: 18, Difficulty: "easy", Type: "multiple"}
}

func TestRunWrongThirdAnswerEndsSession(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(3))
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), inputLines("4", "4", "1"), &out, multipleConfig(3), config.Options{}, newTestService(server.URL))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	text := out.String()
	if count := strings.Count(text, successMsg); count != 2 {
		t.Fatalf("expected 2 success messages, got %d:\n%s", count, text)
	}
	if count := strings.Count(text, gameOverMsg); count != 1 {
		t.Fatalf("expected 1 game over message, got %d", count)
	}
	if !strings.Contains(text, "The correct answer was: Answer 3\n") {
		t.Fatalf("correct answer not revealed:\n%s", text)
	}
	if strings.Contains(text, "Congrats!") {
		t.Fatalf("unexpected final summary after a loss:\n%s", text)
	}
}

func TestRunWrongFirstAnswerHidesRemainingQuestions(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(3))
	defer server.Close()

	var out bytes.Buffer
	if err := Run(context.Background(), inputLines("2"), &out, multipleConfig(3), config.Options{}, newTestService(server.URL)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	text := out.String()
	if strings.Contains(text, "Question 2") || strings.Contains(text, "Question 3") {
		t.Fatalf("later questions were presented:\n%s", text)
	}
	if !strings.Contains(text, "The correct answer was: Answer 1") {
		t.Fatalf("correct answer not revealed:\n%s", text)
	}
}

func TestRunAllCorrectPrintsSummary(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(4))
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), inputLines("4", "4", "4", "4"), &out, multipleConfig(4), config.Options{}, newTestService(server.URL))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	text := strings.TrimRight(out.String(), "\n")
	if !strings.HasSuffix(text, "Congrats! You have answered 4 out of 4 correctly!") {
		t.Fatalf("unexpected ending:\n%s", out.String())
	}
	if count := strings.Count(text, successMsg); count != 4 {
		t.Fatalf("expected 4 success messages, got %d", count)
	}
}

func TestRunSummaryUsesRequestedCount(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(2))
	defer server.Close()

	var out bytes.Buffer
	if err := Run(context.Background(), inputLines("4", "4"), &out, multipleConfig(5), config.Options{}, newTestService(server.URL)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Congrats! You have answered 2 out of 5 correctly!") {
		t.Fatalf("unexpected summary:\n%s", out.String())
	}
}

func TestRunFetchFailurePrintsErrorAndAsksNothing(t *testing.T) {
	server := startTriviaServer(http.StatusInternalServerError, nil)
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), inputLines("4"), &out, multipleConfig(3), config.Options{}, newTestService(server.URL))
	if err != nil {
		t.Fatalf("fetch failures must not be returned, got %v", err)
	}

	text := out.String()
	if count := strings.Count(text, "An error occurred:"); count != 1 {
		t.Fatalf("expected a single error message, got %d:\n%s", count, text)
	}
	if strings.Contains(text, choicePrompt) || strings.Contains(text, booleanPrompt) {
		t.Fatalf("a question was asked after a fetch failure:\n%s", text)
	}
	if len(server.Requests()) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(server.Requests()))
	}
}

func TestRunBooleanQuestions(t *testing.T) {
	server := startTriviaServer(http.StatusOK, booleanQuestions("True", "False", "True"))
	defer server.Close()

	cfg := config.Quiz{Amount: 3, Category: 18, Difficulty: "easy", Type: "boolean"}
	var out bytes.Buffer
	if err := Run(context.Background(), inputLines("TRUE", "nope", "false", "True"), &out, cfg, config.Options{}, newTestService(server.URL)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	text := out.String()
	if count := strings.Count(text, invalidBooleanMsg); count != 1 {
		t.Fatalf("expected one invalid boolean message, got %d", count)
	}
	if !strings.Contains(text, "Congrats! You have answered 3 out of 3 correctly!") {
		t.Fatalf("expected a win:\n%s", text)
	}
}

func TestRunInvalidInputNeverEndsTheSession(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(1))
	defer server.Close()

	var out bytes.Buffer
	input := inputLines("x", "0", "-1", "5", "1.0", "4")
	if err := Run(context.Background(), input, &out, multipleConfig(1), config.Options{}, newTestService(server.URL)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	text := out.String()
	if count := strings.Count(text, invalidChoiceMsg); count != 5 {
		t.Fatalf("expected 5 invalid messages, got %d", count)
	}
	if !strings.Contains(text, successMsg) {
		t.Fatalf("expected the valid answer to be accepted:\n%s", text)
	}
}

func TestRunClosedInputIsAnError(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(2))
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), inputLines("4"), &out, multipleConfig(2), config.Options{}, newTestService(server.URL))
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestRunRendersNumberedCandidates(t *testing.T) {
	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(1))
	defer server.Close()

	var out bytes.Buffer
	if err := Run(context.Background(), inputLines("4"), &out, multipleConfig(1), config.Options{}, newTestService(server.URL)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := "Question 1\n1. Decoy 1-a\n2. Decoy 1-b\n3. Decoy 1-c\n4. Answer 1\n"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("expected candidate block %q in:\n%s", want, out.String())
	}
}

func TestRunSessionUsesAnswerLogAndShuffler(t *testing.T) {
	defer useIdentityShuffle()()

	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(2))
	defer server.Close()

	var out, errOut bytes.Buffer
	opts := config.Options{APIURL: server.URL, Verbose: true}
	if err := runSession(context.Background(), inputLines("4", "4"), &out, &errOut, multipleConfig(2), opts); err != nil {
		t.Fatalf("runSession returned error: %v", err)
	}

	if !strings.Contains(out.String(), "Congrats! You have answered 2 out of 2 correctly!") {
		t.Fatalf("expected a win:\n%s", out.String())
	}
	logs := errOut.String()
	for _, want := range []string{"session finished", "answered=2", "correct=2"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("debug log missing %q:\n%s", want, logs)
		}
	}
}

func TestRunSessionQuietByDefault(t *testing.T) {
	defer useIdentityShuffle()()

	server := startTriviaServer(http.StatusOK, multipleChoiceQuestions(1))
	defer server.Close()

	var out, errOut bytes.Buffer
	if err := runSession(context.Background(), inputLines("1"), &out, &errOut, multipleConfig(1), config.Options{APIURL: server.URL}); err != nil {
		t.Fatalf("runSession returned error: %v", err)
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no log output, got:\n%s", errOut.String())
	}
	if !strings.Contains(out.String(), fmt.Sprintf(revealFormat, "Answer 1")) {
		t.Fatalf("expected a loss:\n%s", out.String())
	}
}
