package storygen

import (
	"context"
	"log/slog"

	"github.com/abhisek/storybuddy/internal/remote"
)

// StoryClient is the slice of the remote client the generator needs.
type StoryClient interface {
	GenerateStory(ctx context.Context, level int) (*remote.StoryResponse, error)
}

// RemoteGenerator asks the story service for a story.
type RemoteGenerator struct {
	client StoryClient
	logger *slog.Logger
}

// NewRemote creates a RemoteGenerator.
func NewRemote(client StoryClient, logger *slog.Logger) *RemoteGenerator {
	return &RemoteGenerator{client: client, logger: logger}
}

func (g *RemoteGenerator) Name() string { return "remote" }

func (g *RemoteGenerator) Generate(ctx context.Context, level int) (*Story, error) {
	resp, err := g.client.GenerateStory(ctx, level)
	if err != nil {
		return nil, err
	}
	return fromText(g.Name(), level, resp.Story, resp.Questions, g.logger)
}
