package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yt-sponsor-estimator/internal/api"
	"github.com/yt-sponsor-estimator/internal/config"
	"github.com/yt-sponsor-estimator/internal/narration"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)
	logger := newLogger(cfg.GinMode)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Warn("configuration incomplete, provider calls will fail", slog.Any("error", err))
	}

	// Initialize YouTube API
	youtubeClient, err := api.NewYouTubeClient(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize YouTube API", slog.Any("error", err))
		os.Exit(1)
	}

	var narrator narration.Narrator = narration.StaticNarrator{}
	if cfg.NarrationEnabled() {
		narrator = narration.NewLLMNarrator(cfg, logger)
		logger.Info("narration enabled", slog.String("model", cfg.LLMModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set, narration uses the fallback text")
	}

	estimator := api.NewEstimator(youtubeClient, narrator, logger)
	server := api.NewServer(cfg, estimator, logger)

	logger.Info("server starting", slog.String("port", cfg.Port))
	if err := server.Start(cfg.Port); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(mode string) *slog.Logger {
	if mode == gin.ReleaseMode {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
