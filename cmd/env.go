package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybuddy/internal/config"
	"github.com/abhisek/storybuddy/internal/llm"
	"github.com/abhisek/storybuddy/internal/logging"
	"github.com/abhisek/storybuddy/internal/remote"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/store"
	"github.com/abhisek/storybuddy/internal/storygen"
)

// storyPurpose labels LLM story requests in the request log.
const storyPurpose = "story-gen"

// environment is everything a command needs: config, logger and store.
type environment struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	closeLog func() error
}

// setup loads the env file and config, opens the log and the store. When
// interactive is set and no log file is configured, logs are discarded so
// they don't corrupt the TUI; otherwise they go to stderr.
func setup(cmd *cobra.Command, interactive bool) (*environment, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var (
		logger   *slog.Logger
		closeLog = func() error { return nil }
	)
	switch {
	case cfg.Log.Path != "":
		logger, closeLog, err = logging.Open(cfg.Log.Path, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
	case interactive:
		logger = logging.Discard()
	default:
		logger = logging.New(os.Stderr, cfg.Log.Level)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug("environment ready", "db", dbPath, "service", cfg.Service.BaseURL)
	return &environment{cfg: cfg, logger: logger, store: st, closeLog: closeLog}, nil
}

func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("close store", "error", err)
	}
	e.closeLog()
}

func (e *environment) remoteClient() *remote.Client {
	return remote.NewClient(remote.Endpoints{
		Story:      e.cfg.Service.StoryURL(),
		Difficulty: e.cfg.Service.DifficultyURL(),
		Speech:     e.cfg.Service.SpeechURL(),
	}, e.cfg.Service.Timeout)
}

// storyGenerator chains the remote service, an LLM provider when one is
// configured, and the built-in stories when enabled.
func (e *environment) storyGenerator(ctx context.Context, client *remote.Client) storygen.Generator {
	gens := []storygen.Generator{storygen.NewRemote(client, e.logger)}

	if llmCfg, ok := llm.ConfigFromEnv(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, e.store.EventRepo(), e.logger)
		if err != nil {
			e.logger.Warn("LLM story fallback unavailable", "error", err)
		} else {
			gens = append(gens, storygen.NewLLM(provider, storygen.DefaultLLMConfig(), storyPurpose, e.logger))
		}
	}

	if e.cfg.BuiltinFallback {
		gens = append(gens, storygen.NewBuiltin(e.logger))
	}
	return storygen.NewChain(e.logger, gens...)
}

// services wires the shared screen dependencies.
func (e *environment) services(ctx context.Context) *services.Services {
	client := e.remoteClient()
	return &services.Services{
		Stories:     e.storyGenerator(ctx, client),
		Attempts:    e.store.Attempts(),
		Profile:     e.store.Profile(),
		Difficulty:  client,
		Transcriber: client,
		Learner: services.Learner{
			ChildID:       e.cfg.ChildID,
			CaretakerNote: e.cfg.CaretakerNote,
			StartLevel:    e.cfg.StartLevel,
		},
		FeedbackDelay: e.cfg.FeedbackDelay,
		AudioFile:     e.cfg.AudioFile,
		Logger:        e.logger,
	}
}
