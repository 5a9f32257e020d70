package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/config"
)

var levelCmd = &cobra.Command{
	Use:   "level [n]",
	Short: "Show or set the learner level",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		profile := env.store.Profile()
		if len(args) == 0 {
			level, err := profile.Level(ctx, env.cfg.StartLevel)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Level %d\n", level)
			return nil
		}

		level, err := strconv.Atoi(args[0])
		if err != nil || level < config.MinLevel || level > config.MaxLevel {
			return fmt.Errorf("level must be a number from %d to %d", config.MinLevel, config.MaxLevel)
		}
		if err := profile.SetLevel(ctx, level); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Level set to %d\n", level)
		return nil
	},
}
