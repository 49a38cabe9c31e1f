package analytics

import (
	"time"

	"smurfbrief/internal/domain"
)

const (
	windowDay      = 24 * time.Hour
	windowThreeDay = 3 * 24 * time.Hour
	windowWeek     = 7 * 24 * time.Hour
	windowMonth    = 30 * 24 * time.Hour
)

// Outcomes derives win/loss-tagged events from a normalized rating series.
// A rating gain relative to the previous snapshot is a win, a drop is a
// loss, an unchanged rating yields no event. The first snapshot has no
// predecessor and yields no event.
func Outcomes(history domain.MatchHistory) []domain.OutcomeEvent {
	if len(history) < 2 {
		return nil
	}
	events := make([]domain.OutcomeEvent, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		delta := history[i].Rating - history[i-1].Rating
		if delta == 0 {
			continue
		}
		outcome := domain.OutcomeLoss
		if delta > 0 {
			outcome = domain.OutcomeWin
		}
		events = append(events, domain.OutcomeEvent{
			Timestamp: history[i].Timestamp,
			Outcome:   outcome,
		})
	}
	return events
}

// Windowed counts wins and losses per trailing window anchored to now.
// An event counts toward a window when its timestamp falls within
// [now - window, now]. Lifetime has no lower bound. Zero events in a
// window means zero counts.
func Windowed(events []domain.OutcomeEvent, now time.Time) domain.WindowedRecord {
	var rec domain.WindowedRecord
	for _, e := range events {
		if e.Timestamp.After(now) {
			continue
		}
		age := now.Sub(e.Timestamp)
		count(&rec.Lifetime, e.Outcome)
		if age <= windowMonth {
			count(&rec.Month, e.Outcome)
		}
		if age <= windowWeek {
			count(&rec.Week, e.Outcome)
		}
		if age <= windowThreeDay {
			count(&rec.ThreeDay, e.Outcome)
		}
		if age <= windowDay {
			count(&rec.Day, e.Outcome)
		}
	}
	return rec
}

func count(c *domain.WindowCounts, o domain.Outcome) {
	if o == domain.OutcomeWin {
		c.Wins++
	} else {
		c.Losses++
	}
}
