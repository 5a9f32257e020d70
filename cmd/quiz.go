package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/quiz"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Read a story and answer its questions in plain text mode",
	Long: `Fetch a story at the learner's level, print it, and ask its questions
one at a time on the command line. The attempt is saved and the level is
updated just like in the full app.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		return runQuiz(ctx, env.services(ctx), os.Stdin, cmd.OutOrStdout())
	},
}

// runQuiz plays one story and quiz over in/out.
func runQuiz(ctx context.Context, svc *services.Services, in io.Reader, out io.Writer) error {
	level := svc.Level(ctx)
	story, err := svc.Stories.Generate(ctx, level)
	if err != nil {
		return fmt.Errorf("generate story: %w", err)
	}
	if len(story.Skipped) > 0 {
		fmt.Fprintf(out, "(%d question blocks could not be read and were skipped)\n", len(story.Skipped))
	}

	fmt.Fprintf(out, "── Level %d story ──\n\n%s\n\n", story.Level, story.Text)

	var result quiz.Result
	engine := quiz.NewEngine(story.Questions, func(r quiz.Result) { result = r })
	scanner := bufio.NewScanner(in)

	for !engine.Completed() {
		i := engine.Current()
		q, _ := engine.CurrentQuestion()

		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", i+1, engine.Total(), q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", quiz.OptionLetter(j), opt)
		}

		choice, err := readChoice(scanner, out)
		if err != nil {
			return err
		}

		fb := engine.Select(i, choice)
		if fb.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m The answer was %s.\n", quiz.OptionLetter(q.Correct))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Score: %d/%d ──\n", result.Score, result.Total)

	if svc.Attempts != nil {
		if err := svc.Attempts.Save(ctx, store.Attempt{Score: result.Score, Total: result.Total, Level: story.Level}); err != nil {
			return fmt.Errorf("save attempt: %w", err)
		}
	}

	next, err := svc.UpdateLevel(ctx, result.Accuracy())
	switch {
	case errors.Is(err, services.ErrNoDifficulty):
	case err != nil:
		svc.Logger.Error("predict difficulty", "error", err)
		fmt.Fprintf(out, "Could not update the level, staying at %d.\n", level)
	default:
		fmt.Fprintf(out, "Next level: %d\n", next)
	}
	return nil
}

// readChoice prompts until the user types a letter A-D.
func readChoice(scanner *bufio.Scanner, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "Your answer: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read answer: %w", err)
			}
			return 0, errors.New("input closed before the quiz finished")
		}
		answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if len(answer) == 1 && answer[0] >= 'A' && answer[0] < 'A'+quiz.OptionCount {
			return int(answer[0] - 'A'), nil
		}
		fmt.Fprintln(out, "Please type A, B, C or D.")
	}
}
