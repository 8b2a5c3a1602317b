package cli

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/opentdb"
	"trivia-quiz/internal/quiz"
	"trivia-quiz/internal/quiz/sqlite"
)

// newShuffler is replaced in tests to make candidate order predictable.
var newShuffler = func() quiz.Shuffler { return quiz.RandomShuffle }

// NewCommand builds the single trivia-quiz command reading answers from in.
func NewCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cfg := config.Default()
	var (
		opts        config.Options
		noAnimation bool
	)

	cmd := &cobra.Command{
		Use:   "trivia-quiz",
		Short: "Run the General Master Quiz",
		Long: `Run the General Master Quiz.

Questions come from the Open Trivia Database. Answer every question
correctly to win; the first wrong answer ends the game.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg = cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.Animate = !noAnimation && isTerminal(out)
			return runSession(cmd.Context(), in, out, errOut, cfg, opts)
		},
	}

	flags := cmd.Flags()
	bindQuizFlags(flags, &cfg)
	flags.BoolVar(&noAnimation, "no-animation", false, "Print the welcome banner without the typing effect")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Write debug logs to stderr")
	flags.StringVar(&opts.APIURL, "api-url", config.DefaultAPIURL, "Trivia API endpoint")
	_ = flags.MarkHidden("api-url")

	return cmd
}

func bindQuizFlags(flags *pflag.FlagSet, cfg *config.Quiz) {
	flags.IntVar(&cfg.Amount, "num-questions", config.DefaultAmount, "Number of questions")
	flags.IntVar(&cfg.Category, "category", config.DefaultCategory, "Category ID")
	flags.StringVar(&cfg.Difficulty, "difficulty", config.DefaultDifficulty, "Difficulty level (easy, medium, hard)")
	flags.StringVar(&cfg.Type, "question-type", config.DefaultType, "Question type (multiple, boolean)")
}

func runSession(ctx context.Context, in io.Reader, out, errOut io.Writer, cfg config.Quiz, opts config.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(errOut, opts.Verbose)
	ctx = logger.WithContext(ctx)

	store, err := sqlite.NewSQLiteStore(sqlite.MemoryPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Debug().Err(closeErr).Msg("closing answer log")
		}
	}()

	client := opentdb.NewClient(&http.Client{}, opts.ResolvedAPIURL())
	service := quiz.NewService(client.FetchQuestions, store).WithShuffler(newShuffler())

	return Run(ctx, in, out, cfg, opts, service)
}

func newLogger(errOut io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: errOut, NoColor: !isTerminal(errOut)}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}
