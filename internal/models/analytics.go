package models

// ActivityMetrics aggregates a channel's most recent uploads
type ActivityMetrics struct {
	AverageRecentViews      float64       `json:"averageRecentViews"`
	AverageRetentionPercent float64       `json:"averageRetentionPercent"`
	Videos                  []VideoSample `json:"videos"`
}

// PriceEstimate is the sponsorship price together with the factors that produced it
type PriceEstimate struct {
	Amount                 float64 `json:"amount"`
	BasePrice              float64 `json:"basePrice"`
	SubscriberMultiplier   float64 `json:"subscriberMultiplier"`
	ViewDurationMultiplier float64 `json:"viewDurationMultiplier"`
	ViewsMultiplier        float64 `json:"viewsMultiplier"`
	Explanation            string  `json:"explanation"`
}

// EstimateResult is everything one estimate request produces
type EstimateResult struct {
	Stats             ChannelStats    `json:"stats"`
	Activity          ActivityMetrics `json:"activity"`
	Price             PriceEstimate   `json:"price"`
	Narration         string          `json:"narration"`
	NarrationFallback bool            `json:"narrationFallback"`
}
