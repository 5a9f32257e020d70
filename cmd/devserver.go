package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/devserver"
	"github.com/abhisek/storybuddy/internal/llm"
	"github.com/abhisek/storybuddy/internal/storygen"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Serve local story, difficulty and speech endpoints",
	Long: `Run a local stand-in for the remote services. Stories come from the
configured LLM provider when one is set, otherwise from the built-in stories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("allow-origin")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var gens []storygen.Generator
		if llmCfg, ok := llm.ConfigFromEnv(); ok {
			provider, err := llm.NewProvider(ctx, llmCfg, env.store.EventRepo(), env.logger)
			if err != nil {
				return err
			}
			gens = append(gens, storygen.NewLLM(provider, storygen.DefaultLLMConfig(), storyPurpose, env.logger))
		}
		gens = append(gens, storygen.NewBuiltin(env.logger))

		srv := devserver.New(storygen.NewChain(env.logger, gens...), devserver.PathsFrom(env.cfg.Service), origins, env.logger)
		env.logger.Info("dev server listening", "addr", addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	devserverCmd.Flags().String("addr", "127.0.0.1:8787", "Listen address")
	devserverCmd.Flags().StringSlice("allow-origin", nil, "CORS allowed origins (default *)")
}
