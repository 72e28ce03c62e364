package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

const (
	retentionBase  = 70.0
	retentionFloor = 20.0
	retentionCeil  = 60.0
)

// ParseDuration converts a YouTube contentDetails duration (PT#H#M#S) to seconds.
//
// Segments are consumed strictly in H, M, S order and nothing is validated:
// "PT" yields 0 and reordered segments yield a wrong total. A segment that is
// not a plain integer counts as 0.
//
//	PT1H2M10S -> 1*3600 + 2*60 + 10 = 3730
func ParseDuration(token string) int {
	var hours, minutes, seconds int

	rest := token
	if len(rest) >= 2 {
		rest = rest[2:]
	} else {
		rest = ""
	}

	if head, next, ok := splitUnit(rest, "H"); ok {
		hours = atoi(head)
		rest = next
	}
	if head, next, ok := splitUnit(rest, "M"); ok {
		minutes = atoi(head)
		rest = next
	}
	if head, _, ok := splitUnit(rest, "S"); ok {
		seconds = atoi(head)
	}

	return hours*3600 + minutes*60 + seconds
}

// splitUnit returns the text before the first unit letter and the text
// between the first and second occurrence of it.
func splitUnit(s, unit string) (head, next string, ok bool) {
	if !strings.Contains(s, unit) {
		return "", s, false
	}
	parts := strings.Split(s, unit)
	return parts[0], parts[1], true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// FormatDuration renders a number of seconds as a canonical ISO-8601 duration.
func FormatDuration(seconds int) string {
	return duration.FromTimeDuration(time.Duration(seconds) * time.Second).String()
}

// RetentionEstimate approximates the watch-through percentage from video
// length alone: one point lost per minute starting at 70, kept within [20, 60].
func RetentionEstimate(durationSeconds int) float64 {
	r := retentionBase - float64(durationSeconds)/60
	return max(retentionFloor, min(retentionCeil, r))
}
