package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"trivia-quiz/internal/quiz"
)

var ErrInputClosed = errors.New("input closed before an answer was given")

const (
	choicePrompt      = "Enter your choice (number): "
	booleanPrompt     = "Enter your answer (True/False): "
	invalidChoiceMsg  = "Invalid choice. Please enter a valid number."
	invalidBooleanMsg = "Invalid choice. Please enter either 'True' or 'False'."
	booleanTrue       = "true"
	booleanFalse      = "false"
)

type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{reader: bufio.NewReader(in), out: out}
}

// readLine prints prompt and waits for one line of input.
func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				return strings.TrimSpace(line), nil
			}
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askMultipleChoice numbers the candidates from 1 and re-prompts until a
// number in range is entered. It returns the chosen candidate text.
func askMultipleChoice(p *prompter, question quiz.Question, candidates []string) (string, error) {
	fmt.Fprintln(p.out, question.Text)
	for idx, candidate := range candidates {
		fmt.Fprintf(p.out, "%d. %s\n", idx+1, candidate)
	}

	for {
		input, err := p.readLine(choicePrompt)
		if err != nil {
			return "", err
		}
		choice, ok := parseChoice(input, len(candidates))
		if !ok {
			fmt.Fprintln(p.out, invalidChoiceMsg)
			continue
		}
		return candidates[choice-1], nil
	}
}

// askBoolean re-prompts until the lower-cased input is "true" or "false" and
// returns the lower-cased input.
func askBoolean(p *prompter, question quiz.Question) (string, error) {
	fmt.Fprintln(p.out, question.Text)

	for {
		input, err := p.readLine(booleanPrompt)
		if err != nil {
			return "", err
		}
		answer, ok := normalizeBoolean(input)
		if !ok {
			fmt.Fprintln(p.out, invalidBooleanMsg)
			continue
		}
		return answer, nil
	}
}

func parseChoice(input string, count int) (int, bool) {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	if choice < 1 || choice > count {
		return 0, false
	}
	return choice, true
}

func normalizeBoolean(input string) (string, bool) {
	answer := strings.ToLower(strings.TrimSpace(input))
	if answer != booleanTrue && answer != booleanFalse {
		return "", false
	}
	return answer, true
}
