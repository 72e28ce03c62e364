package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/yt-sponsor-estimator/internal/config"
	"github.com/yt-sponsor-estimator/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// recentVideoLimit is how many of the newest uploads feed the activity metrics
	recentVideoLimit = 10
)

var (
	ErrInvalidURL = errors.New("no channel identifier found in URL")
	ErrNotFound   = errors.New("channel data not found")
)

type channelPattern struct {
	re     *regexp.Regexp
	handle bool
}

// Tried in order, first match wins.
var channelPatterns = []channelPattern{
	{re: regexp.MustCompile(`youtube\.com/channel/(UC[\w-]{22})`)},
	{re: regexp.MustCompile(`youtube\.com/c/([^/]+)`)},
	{re: regexp.MustCompile(`youtube\.com/@([^/]+)`), handle: true},
}

// ExtractChannelIdentifier pulls a channel token out of a YouTube channel URL.
// The token is a channel ID, a custom name or a handle (without the @),
// depending on which URL shape matched.
func ExtractChannelIdentifier(channelURL string) (string, error) {
	for _, p := range channelPatterns {
		m := p.re.FindStringSubmatch(channelURL)
		if m == nil {
			continue
		}
		token := m[1]
		if p.handle {
			token = strings.ReplaceAll(token, "@", "")
		}
		if token == "" {
			continue
		}
		return token, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidURL, channelURL)
}

// YouTubeClient fetches channel data from the YouTube Data API
type YouTubeClient struct {
	service *youtube.Service
	logger  *slog.Logger
}

// NewYouTubeClient creates a new YouTube client from the application config.
// Extra options are appended after the API key, which lets tests point the
// client at a local endpoint. Without a key the client is still built and
// every call is rejected by the API.
func NewYouTubeClient(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...option.ClientOption) (*YouTubeClient, error) {
	auth := option.WithAPIKey(cfg.YouTubeAPIKey)
	if cfg.YouTubeAPIKey == "" {
		auth = option.WithoutAuthentication()
	}
	opts = append([]option.ClientOption{auth}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &YouTubeClient{
		service: service,
		logger:  logger,
	}, nil
}

// GetChannelStats resolves an identifier to a channel and fetches its statistics.
//
// Resolution is a fuzzy match: the identifier is used as a free-text channel
// search and the top hit is taken. A custom name or handle can therefore
// resolve to an unrelated channel that happens to rank first.
func (c *YouTubeClient) GetChannelStats(ctx context.Context, identifier string) (*models.ChannelStats, error) {
	search, err := c.service.Search.List([]string{"snippet"}).
		Q(identifier).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error("channel search failed", slog.String("identifier", identifier), slog.Any("error", err))
		return nil, fmt.Errorf("%w: search %q: %v", ErrNotFound, identifier, err)
	}
	if len(search.Items) == 0 || search.Items[0].Id == nil || search.Items[0].Id.ChannelId == "" {
		c.logger.Warn("no channel found", slog.String("identifier", identifier))
		return nil, fmt.Errorf("%w: no channel for identifier %q", ErrNotFound, identifier)
	}

	channelID := search.Items[0].Id.ChannelId

	resp, err := c.service.Channels.List([]string{"statistics", "snippet"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error("channel lookup failed", slog.String("channel_id", channelID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: channel %s: %v", ErrNotFound, channelID, err)
	}
	if len(resp.Items) == 0 {
		c.logger.Warn("no statistics for channel", slog.String("channel_id", channelID))
		return nil, fmt.Errorf("%w: no statistics for channel %s", ErrNotFound, channelID)
	}

	item := resp.Items[0]
	stats := &models.ChannelStats{
		ChannelID: channelID,
		Title:     "Unknown",
	}
	if item.Snippet != nil && item.Snippet.Title != "" {
		stats.Title = item.Snippet.Title
	}
	if s := item.Statistics; s != nil {
		stats.SubscriberCount = int64(s.SubscriberCount)
		stats.ViewCount = int64(s.ViewCount)
		stats.VideoCount = int64(s.VideoCount)
		stats.HiddenSubscriberCount = s.HiddenSubscriberCount
	}

	c.logger.Info("resolved channel",
		slog.String("identifier", identifier),
		slog.String("channel_id", channelID),
		slog.String("title", stats.Title),
	)
	return stats, nil
}

// GetRecentActivity analyzes the channel's most recent uploads
func (c *YouTubeClient) GetRecentActivity(ctx context.Context, channelID string) (*models.ActivityMetrics, error) {
	search, err := c.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(recentVideoLimit).
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error("recent video search failed", slog.String("channel_id", channelID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: recent videos for %s: %v", ErrNotFound, channelID, err)
	}

	videoIDs := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		c.logger.Warn("channel has no recent videos", slog.String("channel_id", channelID))
		return nil, fmt.Errorf("%w: no videos for channel %s", ErrNotFound, channelID)
	}

	resp, err := c.service.Videos.List([]string{"statistics", "contentDetails", "snippet"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error("video lookup failed", slog.String("channel_id", channelID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: video details for %s: %v", ErrNotFound, channelID, err)
	}

	samples := make([]models.VideoSample, 0, len(resp.Items))
	for _, v := range resp.Items {
		samples = append(samples, sampleFromVideo(v))
	}

	metrics, err := AggregateActivity(samples, len(videoIDs))
	if err != nil {
		c.logger.Warn("no video details returned", slog.String("channel_id", channelID))
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	c.logger.Info("analyzed recent videos",
		slog.String("channel_id", channelID),
		slog.Int("videos", len(samples)),
		slog.Float64("average_views", metrics.AverageRecentViews),
		slog.Float64("average_retention", metrics.AverageRetentionPercent),
	)
	return metrics, nil
}

func sampleFromVideo(v *youtube.Video) models.VideoSample {
	sample := models.VideoSample{ID: v.Id}
	if v.Snippet != nil {
		sample.Title = v.Snippet.Title
	}
	if v.ContentDetails != nil {
		sample.DurationSeconds = ParseDuration(v.ContentDetails.Duration)
	}
	sample.Duration = FormatDuration(sample.DurationSeconds)
	if v.Statistics != nil {
		sample.Views = int64(v.Statistics.ViewCount)
	}
	sample.RetentionPercent = RetentionEstimate(sample.DurationSeconds)
	return sample
}

// AggregateActivity averages per-video samples. Retention is averaged over
// the samples, views are divided by the number of videos the search returned.
func AggregateActivity(samples []models.VideoSample, searchedCount int) (*models.ActivityMetrics, error) {
	if len(samples) == 0 || searchedCount <= 0 {
		return nil, errors.New("no videos to aggregate")
	}

	var totalViews int64
	var totalRetention float64
	for _, s := range samples {
		totalViews += s.Views
		totalRetention += s.RetentionPercent
	}

	return &models.ActivityMetrics{
		AverageRecentViews:      float64(totalViews) / float64(searchedCount),
		AverageRetentionPercent: totalRetention / float64(len(samples)),
		Videos:                  samples,
	}, nil
}
