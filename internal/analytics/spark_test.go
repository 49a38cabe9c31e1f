package analytics

import (
	"testing"
	"time"
)

func TestSparkline(t *testing.T) {
	now := ts(1000)
	history := historyFromRatings([]int{3000, 3100, 3200, 3300})

	got := Sparkline(history, time.Hour, now)
	if got != "▁▃▅█" {
		t.Errorf("expected ▁▃▅█, got %q", got)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	history := historyFromRatings([]int{3000, 3000, 3000})
	got := Sparkline(history, time.Hour, ts(1000))
	if got != "▁▁▁" {
		t.Errorf("expected lowest glyph for a flat series, got %q", got)
	}
}

func TestSparklineWindowFiltering(t *testing.T) {
	now := ts(1000)
	history := historyFromRatings([]int{1, 2, 3, 4})
	// Snapshots sit at ts(100)..ts(400); a cutoff of ts(250) keeps only
	// the newest two.
	got := Sparkline(history, 750*time.Second, now)
	if len([]rune(got)) != 2 {
		t.Errorf("expected 2 glyphs inside the window, got %q", got)
	}

	if got := Sparkline(history, time.Nanosecond, now); got != "" {
		t.Errorf("expected empty spark for empty window, got %q", got)
	}
	if got := Sparkline(nil, time.Hour, now); got != "" {
		t.Errorf("expected empty spark for no history, got %q", got)
	}
}
