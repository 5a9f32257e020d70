package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/speech"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Send a recorded question to Buddy and print the answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			path = env.cfg.AudioFile
		}

		buddy := speech.NewBuddy(speech.FileSource{Path: path}, env.remoteClient(), env.logger)
		reply, err := buddy.Ask(cmd.Context())
		if errors.Is(err, speech.ErrNoRecording) {
			return fmt.Errorf("no recording at %q: record a question first", path)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, reply.MainResponse)
		if len(reply.FollowUps) > 0 {
			fmt.Fprintln(out, "\nYou could also ask:")
			for _, q := range reply.FollowUps {
				fmt.Fprintf(out, "  • %s\n", q)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("file", "f", "", "Recorded audio file (default STORYBUDDY_AUDIO_FILE)")
}
