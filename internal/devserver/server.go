// Package devserver is a local stand-in for the story, difficulty and speech
// services, for offline play and integration tests.
package devserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/storybuddy/internal/config"
	"github.com/abhisek/storybuddy/internal/quiz"
	"github.com/abhisek/storybuddy/internal/remote"
	"github.com/abhisek/storybuddy/internal/speech"
	"github.com/abhisek/storybuddy/internal/storygen"
)

// Accuracy thresholds for moving a child between levels.
const (
	promoteAt = 0.8
	demoteAt  = 0.5
)

// Paths are the request paths the server answers on.
type Paths struct {
	Story      string
	Difficulty string
	Speech     string
}

// PathsFrom takes the paths from the client-side service config so both
// ends agree.
func PathsFrom(s config.ServiceConfig) Paths {
	return Paths{Story: s.StoryPath, Difficulty: s.DifficultyPath, Speech: s.SpeechPath}
}

// Server implements the three endpoints.
type Server struct {
	stories storygen.Generator
	paths   Paths
	origins []string
	logger  *slog.Logger

	mu     sync.Mutex
	levels map[string]int
}

// New creates a Server that answers story requests from stories.
func New(stories storygen.Generator, paths Paths, allowedOrigins []string, logger *slog.Logger) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{
		stories: stories,
		paths:   paths,
		origins: allowedOrigins,
		logger:  logger,
		levels:  make(map[string]int),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post(s.paths.Story, s.handleStory)
	r.Post(s.paths.Difficulty, s.handleDifficulty)
	r.Post(s.paths.Speech, s.handleSpeech)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("devserver listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("devserver stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	var req remote.StoryRequest
	if !decode(w, r, &req) {
		return
	}

	level := config.ClampLevel(req.CurrentLevel)
	story, err := s.stories.Generate(r.Context(), level)
	if err != nil {
		s.logger.Error("generate story", "level", level, "error", err)
		writeError(w, http.StatusBadGateway, "story generation failed")
		return
	}

	writeJSON(w, http.StatusOK, remote.StoryResponse{
		Story:     story.Text,
		Questions: quiz.FormatQuestions(story.Questions),
	})
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req remote.DifficultyRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ChildID == "" {
		writeError(w, http.StatusBadRequest, "child_id is required")
		return
	}
	if req.Accuracy < 0 || req.Accuracy > 1 {
		writeError(w, http.StatusBadRequest, "accuracy must be between 0 and 1")
		return
	}

	next := s.adjustLevel(req.ChildID, req.Accuracy)
	writeJSON(w, http.StatusOK, remote.DifficultyResponse{NewDifficulty: next})
}

// adjustLevel moves the child up after a strong quiz and down after a weak one.
func (s *Server) adjustLevel(childID string, accuracy float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	level, ok := s.levels[childID]
	if !ok {
		level = config.MinLevel
	}
	switch {
	case accuracy >= promoteAt:
		level++
	case accuracy < demoteAt:
		level--
	}
	level = config.ClampLevel(level)
	s.levels[childID] = level
	return level
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req remote.SpeechRequest
	if !decode(w, r, &req) {
		return
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil || len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "audio must be non-empty base64")
		return
	}

	rate := req.Config.SampleRateHertz
	if rate <= 0 {
		rate = speech.AudioConfigFor(audio).SampleRateHertz
	}
	// 16-bit mono samples.
	seconds := float64(len(audio)) / float64(rate*2)

	writeJSON(w, http.StatusOK, remote.SpeechResponse{
		MainResponse: fmt.Sprintf("I heard about %.1f seconds of you talking. That sounds like a great question!", seconds),
		FollowUpQuestions: []string{
			"What was your favourite part of the story?",
			"What do you think happens next?",
		},
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
