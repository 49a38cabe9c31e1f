package analytics

import (
	"sort"

	"smurfbrief/internal/domain"
)

// Normalize merges rating snapshots gathered from multiple team-history
// responses into one series: sorted ascending by timestamp, at most one
// snapshot per distinct timestamp. On an exact-timestamp collision the
// first value in stable sort order survives. Empty input yields an empty
// series, not an error.
func Normalize(points []domain.RatingSnapshot) domain.MatchHistory {
	if len(points) == 0 {
		return domain.MatchHistory{}
	}

	merged := make([]domain.RatingSnapshot, len(points))
	copy(merged, points)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	deduped := merged[:0]
	for _, p := range merged {
		if len(deduped) > 0 && deduped[len(deduped)-1].Timestamp.Equal(p.Timestamp) {
			continue
		}
		deduped = append(deduped, p)
	}
	return domain.MatchHistory(deduped)
}
