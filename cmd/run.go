package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	env.logger.Info("starting TUI", "child_id", env.cfg.ChildID)
	return app.Run(app.Options{
		Services:   env.services(cmd.Context()),
		SkipSplash: skipSplash,
	})
}
