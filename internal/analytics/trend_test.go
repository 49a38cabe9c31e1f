package analytics

import (
	"testing"

	"smurfbrief/internal/domain"
)

func historyFromRatings(ratings []int) domain.MatchHistory {
	h := make(domain.MatchHistory, len(ratings))
	for i, r := range ratings {
		h[i] = domain.RatingSnapshot{Timestamp: ts(int64(100 * (i + 1))), Rating: r}
	}
	return h
}

func TestTrendClassification(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    domain.TrendLabel
	}{
		{"steep climb", []int{3000, 3002, 3004, 3006, 3008, 3010}, domain.TrendStrongRising},
		{"gentle climb", []int{3000, 3001, 3002, 3003, 3004}, domain.TrendRising},
		{"constant", []int{3000, 3000, 3000, 3000, 3000}, domain.TrendFlat},
		{"gentle slide", []int{3004, 3003, 3002, 3001, 3000}, domain.TrendFalling},
		{"steep slide", []int{3010, 3008, 3006, 3004, 3002, 3000}, domain.TrendStrongFalling},
		{"noise within flat band", []int{3000, 3001, 3000, 2999, 3000}, domain.TrendFlat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Trend(historyFromRatings(tc.ratings)); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestTrendInsufficientSamples(t *testing.T) {
	for n := 0; n < 5; n++ {
		ratings := make([]int, n)
		for i := range ratings {
			ratings[i] = 3000 + 10*i
		}
		if got := Trend(historyFromRatings(ratings)); got != domain.TrendUnknown {
			t.Errorf("%d samples: expected unknown, got %s", n, got)
		}
	}
}

func TestTrendUsesOnlyRecentSamples(t *testing.T) {
	// 200 falling samples followed by 100 rising ones: only the last 100
	// matter, so the trend must be rising.
	var ratings []int
	for i := 0; i < 200; i++ {
		ratings = append(ratings, 4000-5*i)
	}
	for i := 0; i < 100; i++ {
		ratings = append(ratings, 3000+i)
	}

	if got := Trend(historyFromRatings(ratings)); got != domain.TrendRising {
		t.Errorf("expected rising over the trailing window, got %s", got)
	}
}
