package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/opentdb"
	"trivia-quiz/internal/quiz"
)

const (
	successMsg   = "Nice work! That's a legit answer"
	gameOverMsg  = "💀💀💀 Game over! You lose!"
	revealFormat = "The correct answer was: %s"
	congratsMsg  = "Congrats! You have answered %d out of %d correctly!"
	fetchErrMsg  = "An error occurred: %v"
)

// Run plays one session: banner, one question fetch, then questions in order
// until the first wrong answer or the end of the list. A failed fetch is
// reported on out and is not returned as an error.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg config.Quiz, opts config.Options, service *quiz.Service) (err error) {
	console, err := acquireConsole(out)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := console.Release(); err == nil {
			err = releaseErr
		}
	}()

	if err := newPresenter(out, console.styles, opts.Animate).Welcome(); err != nil {
		return err
	}

	session, err := service.Start(ctx, cfg)
	if err != nil {
		if errors.Is(err, opentdb.ErrFetchFailed) {
			fmt.Fprintln(out, console.styles.failure.Render(fmt.Sprintf(fetchErrMsg, err)))
			return nil
		}
		return err
	}

	fmt.Fprintln(out)
	if err := play(ctx, newPrompter(in, out), out, console.styles, service, session); err != nil {
		return err
	}

	logSummary(ctx, service, session)

	if session.Won() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, console.styles.success.Render(fmt.Sprintf(congratsMsg, session.Score(), session.Requested)))
		fmt.Fprintln(out)
	}
	return nil
}

func play(ctx context.Context, p *prompter, out io.Writer, styles styles, service *quiz.Service, session *quiz.Session) error {
	for idx := 0; ; idx++ {
		question, ok := session.Next()
		if !ok {
			return nil
		}
		if idx > 0 {
			fmt.Fprintln(out)
		}

		var (
			given string
			err   error
		)
		switch question.Kind {
		case quiz.KindMultiple:
			given, err = askMultipleChoice(p, question, service.Candidates(question))
		default:
			given, err = askBoolean(p, question)
		}
		if err != nil {
			return err
		}

		correct, err := service.Answer(ctx, session, given)
		if err != nil {
			return err
		}
		if !correct {
			fmt.Fprintln(out, styles.failure.Render(gameOverMsg))
			fmt.Fprintf(out, revealFormat+"\n", question.CorrectAnswer)
			return nil
		}
		fmt.Fprintln(out, styles.success.Render(successMsg))
	}
}

func logSummary(ctx context.Context, service *quiz.Service, session *quiz.Session) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	summary, err := service.Summary(ctx, session)
	if err != nil {
		logger.Debug().Err(err).Str("session_id", session.ID).Msg("session summary unavailable")
		return
	}
	logger.Debug().
		Str("session_id", summary.SessionID).
		Int("requested", summary.Requested).
		Int("fetched", summary.Fetched).
		Int("answered", summary.Answered).
		Int("correct", summary.Correct).
		Bool("won", session.Won()).
		Msg("session finished")
}
