package analytics

import (
	"smurfbrief/internal/domain"
)

// Smurf applies the threshold rules over the windowed record and emits at
// most one warning. Rules run in priority order, first satisfied wins:
//
//	3-day:    ≥5 games and winrate ≥ 0.80 → likely smurf
//	7-day:    ≥8 games and winrate ≥ 0.75 → possible smurf
//	lifetime: ≥30 games and winrate ≥ 0.70 → suspicious lifetime winrate
//
// A nil record means no warning.
func Smurf(rec *domain.WindowedRecord) domain.SmurfWarning {
	if rec == nil {
		return domain.SmurfNone
	}

	if g := rec.ThreeDay.Games(); g >= 5 {
		if float64(rec.ThreeDay.Wins)/float64(g) >= 0.80 {
			return domain.SmurfLikely
		}
	}
	if g := rec.Week.Games(); g >= 8 {
		if float64(rec.Week.Wins)/float64(g) >= 0.75 {
			return domain.SmurfPossible
		}
	}
	if g := rec.Lifetime.Games(); g >= 30 {
		if float64(rec.Lifetime.Wins)/float64(g) >= 0.70 {
			return domain.SmurfLifetime
		}
	}
	return domain.SmurfNone
}
