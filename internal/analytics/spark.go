package analytics

import (
	"strings"
	"time"

	"smurfbrief/internal/domain"
)

var sparkRamp = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the ratings inside the trailing window as a compact
// unicode spark. Empty window yields an empty string.
func Sparkline(history domain.MatchHistory, window time.Duration, now time.Time) string {
	var ratings []int
	cutoff := now.Add(-window)
	for _, s := range history {
		if s.Timestamp.Before(cutoff) || s.Timestamp.After(now) {
			continue
		}
		ratings = append(ratings, s.Rating)
	}
	if len(ratings) == 0 {
		return ""
	}

	lo, hi := ratings[0], ratings[0]
	for _, r := range ratings {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}

	var sb strings.Builder
	span := hi - lo
	for _, r := range ratings {
		idx := 0
		if span > 0 {
			idx = (r - lo) * (len(sparkRamp) - 1) / span
		}
		sb.WriteRune(sparkRamp[idx])
	}
	return sb.String()
}
