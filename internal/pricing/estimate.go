// Package pricing turns channel metrics into a sponsorship price.
package pricing

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/yt-sponsor-estimator/internal/models"
)

// BaseCPM is the rate per thousand views the estimate starts from.
const BaseCPM = 20

const (
	maxRetentionPercent = 100
	maxViewsMultiplier  = 10
)

// Estimate computes the sponsorship price for a channel.
//
// Subscriber and view counts below one are floored at one before taking the
// logarithm, so an empty or hidden count contributes a neutral 1x multiplier.
func Estimate(stats models.ChannelStats, activity models.ActivityMetrics) models.PriceEstimate {
	views := math.Max(0, activity.AverageRecentViews)

	basePrice := views * BaseCPM / 1000
	subscriberMultiplier := 1 + math.Log10(math.Max(1, float64(stats.SubscriberCount)))/2
	viewDurationMultiplier := 1 + math.Min(maxRetentionPercent, activity.AverageRetentionPercent)/100
	viewsMultiplier := math.Min(maxViewsMultiplier, 1+math.Log10(math.Max(1, views))/2)

	final := basePrice * subscriberMultiplier * viewDurationMultiplier * viewsMultiplier

	est := models.PriceEstimate{
		Amount:                 Round2(final),
		BasePrice:              basePrice,
		SubscriberMultiplier:   subscriberMultiplier,
		ViewDurationMultiplier: viewDurationMultiplier,
		ViewsMultiplier:        viewsMultiplier,
	}
	est.Explanation = explain(stats, activity, est)
	return est
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func explain(stats models.ChannelStats, activity models.ActivityMetrics, est models.PriceEstimate) string {
	return fmt.Sprintf(`Based on:
- Average views per video: %s
- Average view duration: %.1f%%
- Subscriber count: %s

Calculation breakdown:
- Base price (CPM $%d): $%.2f
- Subscriber influence: %.2fx
- View duration impact: %.2fx
- Audience size impact: %.2fx`,
		humanize.Comma(int64(activity.AverageRecentViews)),
		activity.AverageRetentionPercent,
		humanize.Comma(stats.SubscriberCount),
		BaseCPM,
		est.BasePrice,
		est.SubscriberMultiplier,
		est.ViewDurationMultiplier,
		est.ViewsMultiplier,
	)
}

// FormatAmount renders a price with thousands separators and two decimals.
func FormatAmount(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}
