package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/puzzle"
	"github.com/abhisek/storybuddy/internal/services"
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Put the sentences of a story back in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		builtin, _ := cmd.Flags().GetBool("builtin")
		ctx := cmd.Context()
		stages := puzzle.DefaultStages()
		if !builtin {
			stages = storyStages(ctx, env.services(ctx))
		}
		return runPuzzle(stages, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	puzzleCmd.Flags().Bool("builtin", false, "Use the built-in story instead of fetching one")
}

// storyStages fetches a story and cuts it into stages, falling back to the
// built-in story.
func storyStages(ctx context.Context, svc *services.Services) []puzzle.Stage {
	story, err := svc.Stories.Generate(ctx, svc.Level(ctx))
	if err != nil {
		svc.Logger.Warn("story unavailable, using built-in puzzle", "error", err)
		return puzzle.DefaultStages()
	}
	if stages := puzzle.StagesFromText(story.Text, 2, 3); stages != nil {
		return stages
	}
	return puzzle.DefaultStages()
}

// runPuzzle plays the puzzle over in/out. Each answer is the list of
// sentence numbers in story order, e.g. "3 1 2". "q" quits.
func runPuzzle(stages []puzzle.Stage, in io.Reader, out io.Writer, opts ...puzzle.Option) error {
	p, err := puzzle.New(stages, opts...)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	for !p.Finished() {
		available := p.Available()
		fmt.Fprintf(out, "── Part %d of %d ──\n", p.Stage()+1, p.StageCount())
		for i, s := range available {
			fmt.Fprintf(out, "  %d. %s\n", i+1, s)
		}
		fmt.Fprint(out, "Order: ")

		if !scanner.Scan() {
			p.Stop()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			p.Stop()
			fmt.Fprintln(out, "Bye!")
			return nil
		}

		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil || n < 1 || n > len(available) {
				continue
			}
			p.MoveToArranged(available[n-1])
		}

		v := p.Validate()
		switch {
		case v.Completed:
			fmt.Fprintln(out, "\033[32m✓ The whole story is in order. Well done!\033[0m")
		case v.Match:
			fmt.Fprintln(out, "\033[32m✓ Right! On to the next part.\033[0m")
		default:
			right := 0
			for _, ok := range v.Positions {
				if ok {
					right++
				}
			}
			fmt.Fprintf(out, "\033[31m✗ %d of %d in place.\033[0m Try again.\n", right, len(v.Positions))
		}
		fmt.Fprintln(out)
	}
	return nil
}
