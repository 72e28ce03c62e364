package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yt-sponsor-estimator/internal/models"
	"github.com/yt-sponsor-estimator/internal/narration"
	"github.com/yt-sponsor-estimator/internal/pricing"
)

var (
	ErrStatsUnavailable     = errors.New("channel statistics unavailable")
	ErrAnalyticsUnavailable = errors.New("channel analytics unavailable")
)

// User-facing messages, one per failing stage.
const (
	MsgInvalidURL           = "Invalid YouTube channel URL. Please enter a valid URL."
	MsgStatsUnavailable     = "Could not fetch channel statistics. Please verify the URL."
	MsgAnalyticsUnavailable = "Could not fetch channel analytics. Please try again."
	MsgInternal             = "Something went wrong. Please try again."
)

// ChannelFetcher is the channel data provider used by the estimator.
type ChannelFetcher interface {
	GetChannelStats(ctx context.Context, identifier string) (*models.ChannelStats, error)
	GetRecentActivity(ctx context.Context, channelID string) (*models.ActivityMetrics, error)
}

// Estimator runs one estimate request from URL to narrated price
type Estimator struct {
	fetcher  ChannelFetcher
	narrator narration.Narrator
	logger   *slog.Logger
}

// NewEstimator creates a new estimator. A nil narrator means no commentary
// beyond the fallback sentence.
func NewEstimator(fetcher ChannelFetcher, narrator narration.Narrator, logger *slog.Logger) *Estimator {
	if narrator == nil {
		narrator = narration.StaticNarrator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{
		fetcher:  fetcher,
		narrator: narrator,
		logger:   logger,
	}
}

// Run extracts, fetches, analyzes, prices and narrates. The first failing
// stage aborts the request; no partial result is returned.
func (e *Estimator) Run(ctx context.Context, channelURL string) (*models.EstimateResult, error) {
	identifier, err := ExtractChannelIdentifier(channelURL)
	if err != nil {
		return nil, err
	}

	stats, err := e.fetcher.GetChannelStats(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatsUnavailable, err)
	}

	activity, err := e.fetcher.GetRecentActivity(ctx, stats.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyticsUnavailable, err)
	}

	price := pricing.Estimate(*stats, *activity)
	e.logger.Info("estimated sponsorship price",
		slog.String("channel_id", stats.ChannelID),
		slog.Float64("amount", price.Amount),
	)

	text := e.narrator.Narrate(ctx, *stats, *activity, price)

	return &models.EstimateResult{
		Stats:             *stats,
		Activity:          *activity,
		Price:             price,
		Narration:         text,
		NarrationFallback: narration.IsFallback(text),
	}, nil
}

// UserMessage maps a pipeline error to the message shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return MsgInvalidURL
	case errors.Is(err, ErrStatsUnavailable):
		return MsgStatsUnavailable
	case errors.Is(err, ErrAnalyticsUnavailable):
		return MsgAnalyticsUnavailable
	default:
		return MsgInternal
	}
}
