package analytics

import (
	"smurfbrief/internal/domain"
)

const (
	trendMinSamples = 5
	trendMaxSamples = 100
)

// Trend fits an ordinary least-squares line to the most recent rating
// samples (up to 100) and buckets the slope. Samples are regressed against
// their index, not elapsed time: every game counts as one unit step
// regardless of calendar gaps. Fewer than 5 samples, or a degenerate index
// range, yields TrendUnknown.
func Trend(history domain.MatchHistory) domain.TrendLabel {
	if len(history) < trendMinSamples {
		return domain.TrendUnknown
	}

	ratings := history.Ratings()
	if len(ratings) > trendMaxSamples {
		ratings = ratings[len(ratings)-trendMaxSamples:]
	}

	n := float64(len(ratings))
	var meanX, meanY float64
	for i, y := range ratings {
		meanX += float64(i)
		meanY += float64(y)
	}
	meanX /= n
	meanY /= n

	var num, den float64
	for i, y := range ratings {
		dx := float64(i) - meanX
		num += dx * (float64(y) - meanY)
		den += dx * dx
	}
	if den == 0 {
		return domain.TrendUnknown
	}

	slope := num / den
	switch {
	case slope > 1.5:
		return domain.TrendStrongRising
	case slope > 0.4:
		return domain.TrendRising
	case slope < -1.5:
		return domain.TrendStrongFalling
	case slope < -0.4:
		return domain.TrendFalling
	default:
		return domain.TrendFlat
	}
}
