package analytics

import (
	"testing"
	"time"

	"smurfbrief/internal/domain"
)

func TestOutcomesFromRatingDeltas(t *testing.T) {
	history := domain.MatchHistory{
		{Timestamp: ts(100), Rating: 3000}, // no predecessor, no event
		{Timestamp: ts(200), Rating: 3020}, // win
		{Timestamp: ts(300), Rating: 3020}, // unchanged, no event
		{Timestamp: ts(400), Rating: 2990}, // loss
		{Timestamp: ts(500), Rating: 3001}, // win
	}

	events := Outcomes(history)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	want := []domain.Outcome{domain.OutcomeWin, domain.OutcomeLoss, domain.OutcomeWin}
	for i, e := range events {
		if e.Outcome != want[i] {
			t.Errorf("event %d: expected outcome %v, got %v", i, want[i], e.Outcome)
		}
	}
	if !events[0].Timestamp.Equal(ts(200)) {
		t.Errorf("event carries the later snapshot's timestamp, got %v", events[0].Timestamp)
	}
}

func TestOutcomesShortHistory(t *testing.T) {
	if got := Outcomes(nil); got != nil {
		t.Errorf("nil history: expected no events, got %v", got)
	}
	one := domain.MatchHistory{{Timestamp: ts(100), Rating: 3000}}
	if got := Outcomes(one); got != nil {
		t.Errorf("single snapshot: expected no events, got %v", got)
	}
}

func TestWindowedCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	events := []domain.OutcomeEvent{
		{Timestamp: now.Add(-2 * time.Hour), Outcome: domain.OutcomeWin},    // 1d
		{Timestamp: now.Add(-30 * time.Hour), Outcome: domain.OutcomeLoss},  // 3d
		{Timestamp: now.Add(-5 * day), Outcome: domain.OutcomeWin},          // 7d
		{Timestamp: now.Add(-20 * day), Outcome: domain.OutcomeWin},         // 30d
		{Timestamp: now.Add(-200 * day), Outcome: domain.OutcomeLoss},       // lifetime only
		{Timestamp: now.Add(time.Hour), Outcome: domain.OutcomeWin},         // future, ignored
	}

	rec := Windowed(events, now)

	if rec.Day.Wins != 1 || rec.Day.Losses != 0 {
		t.Errorf("1d: expected 1W/0L, got %dW/%dL", rec.Day.Wins, rec.Day.Losses)
	}
	if rec.ThreeDay.Wins != 1 || rec.ThreeDay.Losses != 1 {
		t.Errorf("3d: expected 1W/1L, got %dW/%dL", rec.ThreeDay.Wins, rec.ThreeDay.Losses)
	}
	if rec.Week.Wins != 2 || rec.Week.Losses != 1 {
		t.Errorf("7d: expected 2W/1L, got %dW/%dL", rec.Week.Wins, rec.Week.Losses)
	}
	if rec.Month.Wins != 3 || rec.Month.Losses != 1 {
		t.Errorf("30d: expected 3W/1L, got %dW/%dL", rec.Month.Wins, rec.Month.Losses)
	}
	if rec.Lifetime.Wins != 3 || rec.Lifetime.Losses != 2 {
		t.Errorf("lifetime: expected 3W/2L, got %dW/%dL", rec.Lifetime.Wins, rec.Lifetime.Losses)
	}
}

func TestWindowedZeroEvents(t *testing.T) {
	rec := Windowed(nil, time.Now())
	if rec != (domain.WindowedRecord{}) {
		t.Errorf("expected all-zero record, got %+v", rec)
	}
}

// Nested windows can never report more games in the smaller window.
func TestWindowedNesting(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	var events []domain.OutcomeEvent
	for i := 0; i < 120; i++ {
		outcome := domain.OutcomeLoss
		if i%3 == 0 {
			outcome = domain.OutcomeWin
		}
		events = append(events, domain.OutcomeEvent{
			Timestamp: now.Add(-time.Duration(i*7) * time.Hour),
			Outcome:   outcome,
		})
	}

	rec := Windowed(events, now)
	windows := []domain.WindowCounts{rec.Day, rec.ThreeDay, rec.Week, rec.Month, rec.Lifetime}
	for i := 1; i < len(windows); i++ {
		if windows[i-1].Wins > windows[i].Wins {
			t.Errorf("window %d wins %d exceed enclosing window's %d", i-1, windows[i-1].Wins, windows[i].Wins)
		}
		if windows[i-1].Losses > windows[i].Losses {
			t.Errorf("window %d losses %d exceed enclosing window's %d", i-1, windows[i-1].Losses, windows[i].Losses)
		}
	}
}
