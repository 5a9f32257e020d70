package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		attempts, err := env.store.Attempts().Load(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No quiz attempts yet.")
			return nil
		}

		fmt.Fprintf(out, "%-10s  %-5s  %-5s  %s\n", "Date", "Score", "Level", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 36))
		for _, a := range attempts {
			fmt.Fprintf(out, "%-10s  %2d/%-2d  %-5d  %5.0f%%\n", a.Date, a.Score, a.Total, a.Level, a.Accuracy()*100)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		attempts, err := env.store.Attempts().Load(ctx)
		if err != nil {
			return err
		}
		level, err := env.store.Profile().Level(ctx, env.cfg.StartLevel)
		if err != nil {
			return err
		}

		st := store.SummarizeAttempts(attempts)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current level:    %d\n", level)
		fmt.Fprintf(out, "Quizzes taken:    %d\n", st.Attempts)
		fmt.Fprintf(out, "Questions right:  %d of %d\n", st.TotalCorrect, st.TotalAsked)
		fmt.Fprintf(out, "Average accuracy: %.0f%%\n", st.Accuracy()*100)
		if st.Attempts > 0 {
			fmt.Fprintf(out, "Best score:       %d/%d\n", st.BestScore, st.BestTotal)
		}
		return nil
	},
}
