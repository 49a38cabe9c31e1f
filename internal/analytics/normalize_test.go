package analytics

import (
	"testing"
	"time"

	"smurfbrief/internal/domain"
)

func ts(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func TestNormalizeSortsAndDedupes(t *testing.T) {
	input := []domain.RatingSnapshot{
		{Timestamp: ts(300), Rating: 3100},
		{Timestamp: ts(100), Rating: 3000},
		{Timestamp: ts(200), Rating: 3050},
		{Timestamp: ts(200), Rating: 9999}, // duplicate timestamp, later in input
		{Timestamp: ts(100), Rating: 8888},
	}

	got := Normalize(input)

	if len(got) != 3 {
		t.Fatalf("expected 3 snapshots after dedupe, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Timestamp.Before(got[i].Timestamp) {
			t.Errorf("output not strictly ascending at index %d", i)
		}
	}
	// Keep-first on collisions: the value that sorted first survives.
	if got[0].Rating != 3000 {
		t.Errorf("expected first-seen rating 3000 at ts=100, got %d", got[0].Rating)
	}
	if got[1].Rating != 3050 {
		t.Errorf("expected first-seen rating 3050 at ts=200, got %d", got[1].Rating)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	got := Normalize(nil)
	if len(got) != 0 {
		t.Errorf("expected empty series, got %d entries", len(got))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := []domain.RatingSnapshot{
		{Timestamp: ts(100), Rating: 3000},
		{Timestamp: ts(200), Rating: 3050},
		{Timestamp: ts(300), Rating: 3020},
	}

	once := Normalize(input)
	twice := Normalize(once)

	if len(once) != len(twice) {
		t.Fatalf("idempotency broken: %d vs %d entries", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("entry %d changed on re-normalization: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	input := []domain.RatingSnapshot{
		{Timestamp: ts(300), Rating: 3},
		{Timestamp: ts(100), Rating: 1},
	}
	Normalize(input)
	if input[0].Timestamp != ts(300) {
		t.Error("input slice was reordered")
	}
}
