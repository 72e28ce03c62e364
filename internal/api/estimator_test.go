package api

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yt-sponsor-estimator/internal/models"
	"github.com/yt-sponsor-estimator/internal/narration"
)

type stubFetcher struct {
	stats       *models.ChannelStats
	statsErr    error
	activity    *models.ActivityMetrics
	activityErr error

	gotIdentifier string
	gotChannelID  string
}

func (s *stubFetcher) GetChannelStats(_ context.Context, identifier string) (*models.ChannelStats, error) {
	s.gotIdentifier = identifier
	return s.stats, s.statsErr
}

func (s *stubFetcher) GetRecentActivity(_ context.Context, channelID string) (*models.ActivityMetrics, error) {
	s.gotChannelID = channelID
	return s.activity, s.activityErr
}

type stubNarrator struct {
	text  string
	calls int
}

func (n *stubNarrator) Narrate(context.Context, models.ChannelStats, models.ActivityMetrics, models.PriceEstimate) string {
	n.calls++
	return n.text
}

func healthyFetcher() *stubFetcher {
	return &stubFetcher{
		stats: &models.ChannelStats{ChannelID: testChannelID, Title: "Some Creator", SubscriberCount: 100000},
		activity: &models.ActivityMetrics{
			AverageRecentViews:      5000,
			AverageRetentionPercent: 45,
		},
	}
}

func TestEstimatorRun(t *testing.T) {
	fetcher := healthyFetcher()
	narrator := &stubNarrator{text: "Great fit for sponsors."}
	est := NewEstimator(fetcher, narrator, nil)

	result, err := est.Run(context.Background(), "https://www.youtube.com/@SomeHandle")
	require.NoError(t, err)

	assert.Equal(t, "SomeHandle", fetcher.gotIdentifier)
	assert.Equal(t, testChannelID, fetcher.gotChannelID)
	assert.Equal(t, 1446.11, result.Price.Amount)
	assert.Equal(t, "Great fit for sponsors.", result.Narration)
	assert.False(t, result.NarrationFallback)
	assert.Equal(t, 1, narrator.calls)
}

func TestEstimatorRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		modify  func(f *stubFetcher)
		wantErr error
		wantMsg string
	}{
		{
			name:    "invalid url",
			url:     "https://example.com/foo",
			wantErr: ErrInvalidURL,
			wantMsg: MsgInvalidURL,
		},
		{
			name:    "stats not found",
			url:     "https://youtube.com/@SomeHandle",
			modify:  func(f *stubFetcher) { f.stats, f.statsErr = nil, fmt.Errorf("%w: nothing", ErrNotFound) },
			wantErr: ErrStatsUnavailable,
			wantMsg: MsgStatsUnavailable,
		},
		{
			name:    "no recent videos",
			url:     "https://youtube.com/@SomeHandle",
			modify:  func(f *stubFetcher) { f.activity, f.activityErr = nil, fmt.Errorf("%w: no videos", ErrNotFound) },
			wantErr: ErrAnalyticsUnavailable,
			wantMsg: MsgAnalyticsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := healthyFetcher()
			if tt.modify != nil {
				tt.modify(fetcher)
			}
			narrator := &stubNarrator{text: "unused"}
			est := NewEstimator(fetcher, narrator, nil)

			result, err := est.Run(context.Background(), tt.url)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.wantMsg, UserMessage(err))
			assert.Zero(t, narrator.calls)
		})
	}
}

func TestEstimatorNarrationFallbackKeepsPrice(t *testing.T) {
	failing := narration.NewLLMNarratorWithFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}, 0, nil)
	est := NewEstimator(healthyFetcher(), failing, nil)

	result, err := est.Run(context.Background(), "https://youtube.com/channel/"+testChannelID)
	require.NoError(t, err)
	assert.Equal(t, 1446.11, result.Price.Amount)
	assert.Equal(t, narration.Fallback, result.Narration)
	assert.True(t, result.NarrationFallback)
}

func TestEstimatorDefaultsToStaticNarrator(t *testing.T) {
	est := NewEstimator(healthyFetcher(), nil, nil)

	result, err := est.Run(context.Background(), "https://youtube.com/c/SomeCreator")
	require.NoError(t, err)
	assert.Equal(t, narration.Fallback, result.Narration)
}

func TestUserMessageUnknownError(t *testing.T) {
	assert.Equal(t, MsgInternal, UserMessage(errors.New("boom")))
}
