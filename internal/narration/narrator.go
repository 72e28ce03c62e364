// Package narration asks a text-generation model to comment on an estimate.
package narration

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"github.com/dustin/go-humanize"
	"github.com/yt-sponsor-estimator/internal/config"
	"github.com/yt-sponsor-estimator/internal/models"
)

// Fallback is returned whenever the provider cannot produce commentary.
const Fallback = "AI explanation unavailable at the moment. Please refer to the standard explanation below."

const (
	maxTokens   = 400
	temperature = 0.7
)

const promptTemplate = `Act as a YouTube influencer marketing expert. Generate a detailed explanation for a sponsorship price estimate of $%s for a YouTube channel with:
- %s subscribers
- %s average views per video
- %.1f%% average view duration

Include:
1. Market analysis
2. Value proposition
3. Comparison to industry standards
4. Potential ROI for sponsors
Keep it professional and concise (max 150 words).`

// Narrator produces free-text commentary for a price estimate. Implementations
// never fail: on any problem they return Fallback.
type Narrator interface {
	Narrate(ctx context.Context, stats models.ChannelStats, activity models.ActivityMetrics, price models.PriceEstimate) string
}

// Prompt formats the request sent to the text-generation provider.
func Prompt(stats models.ChannelStats, activity models.ActivityMetrics, price models.PriceEstimate) string {
	return fmt.Sprintf(promptTemplate,
		humanize.FormatFloat("#,###.##", price.Amount),
		humanize.Comma(stats.SubscriberCount),
		humanize.Comma(int64(activity.AverageRecentViews)),
		activity.AverageRetentionPercent,
	)
}

// StaticNarrator always answers with the fallback sentence.
type StaticNarrator struct{}

func (StaticNarrator) Narrate(context.Context, models.ChannelStats, models.ActivityMetrics, models.PriceEstimate) string {
	return Fallback
}

// CompleteFunc sends a single prompt to a chat model and returns its reply.
type CompleteFunc func(ctx context.Context, system, prompt string) (string, error)

// LLMNarrator narrates estimates through a chat-completion provider.
type LLMNarrator struct {
	complete CompleteFunc
	timeout  time.Duration
	logger   *slog.Logger
}

// NewLLMNarrator wires a Gemini model behind its OpenAI-compatible endpoint.
func NewLLMNarrator(cfg *config.Config, logger *slog.Logger) *LLMNarrator {
	client := llm.NewClient(cfg.LLMAPIBase, cfg.GeminiAPIKey, cfg.LLMModel,
		llm.WithMaxTokens(maxTokens),
		llm.WithTemperature(temperature),
		llm.WithHTTPClient(&http.Client{Timeout: cfg.NarrationTimeout}),
	)
	return NewLLMNarratorWithFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return client.Complete(ctx, system, prompt)
	}, cfg.NarrationTimeout, logger)
}

// NewLLMNarratorWithFunc builds a narrator around any completion function.
func NewLLMNarratorWithFunc(fn CompleteFunc, timeout time.Duration, logger *slog.Logger) *LLMNarrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMNarrator{
		complete: fn,
		timeout:  timeout,
		logger:   logger,
	}
}

// Narrate returns the model's commentary, or Fallback if the call fails,
// times out, panics or comes back empty.
func (n *LLMNarrator) Narrate(ctx context.Context, stats models.ChannelStats, activity models.ActivityMetrics, price models.PriceEstimate) (text string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("narration panicked", slog.Any("panic", r))
			text = Fallback
		}
	}()

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	reply, err := n.complete(ctx, "", Prompt(stats, activity, price))
	if err != nil {
		n.logger.Warn("narration unavailable", slog.String("channel_id", stats.ChannelID), slog.Any("error", err))
		return Fallback
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		n.logger.Warn("narration came back empty", slog.String("channel_id", stats.ChannelID))
		return Fallback
	}
	return reply
}

// IsFallback reports whether text is the static fallback sentence.
func IsFallback(text string) bool {
	return text == Fallback
}
