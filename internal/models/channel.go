package models

// ChannelStats represents the public statistics of a YouTube channel
type ChannelStats struct {
	ChannelID             string `json:"channelId"`
	Title                 string `json:"title"`
	SubscriberCount       int64  `json:"subscriberCount"`
	ViewCount             int64  `json:"viewCount"`
	VideoCount            int64  `json:"videoCount"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
}
