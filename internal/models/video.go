package models

// VideoSample is one recent upload as seen by the activity analyzer
type VideoSample struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Duration         string  `json:"duration"`
	DurationSeconds  int     `json:"durationSeconds"`
	Views            int64   `json:"views"`
	RetentionPercent float64 `json:"retentionPercent"`
}

// DurationMinutes returns the video length in fractional minutes
func (v VideoSample) DurationMinutes() float64 {
	return float64(v.DurationSeconds) / 60
}
