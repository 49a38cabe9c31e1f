package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"smurfbrief/internal/domain"
)

type fakeSearcher struct {
	results []*domain.CharacterStats
	err     error
	queries []string
}

func (f *fakeSearcher) SearchCharacters(ctx context.Context, name string) ([]*domain.CharacterStats, error) {
	f.queries = append(f.queries, name)
	return f.results, f.err
}

func candidate(id int64, rating int, lastPlayed *time.Time) *domain.CharacterStats {
	c := &domain.CharacterStats{
		Character:     domain.CharacterRecord{ID: id, Name: "Shared"},
		CurrentRating: rating,
	}
	if lastPlayed != nil {
		c.Character.Teams = []domain.TeamObservation{{LastPlayed: lastPlayed}}
	}
	return c
}

func tp(sec int64) *time.Time {
	t := time.Unix(sec, 0).UTC()
	return &t
}

func TestResolveFiltersByMMRHint(t *testing.T) {
	// Only the 1800 candidate sits inside [1500, 2100]; it must win even
	// though the 1200 candidate played more recently.
	search := &fakeSearcher{results: []*domain.CharacterStats{
		candidate(1, 1200, tp(9000)),
		candidate(2, 1800, tp(100)),
		candidate(3, 2200, tp(8000)),
	}}
	r := New(search, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "Shared", &MMRRange{Min: 1500, Max: 2100})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Character.ID != 2 {
		t.Errorf("expected the in-range candidate, got id %d", got.Character.ID)
	}
}

func TestResolveRecencyWithinRange(t *testing.T) {
	search := &fakeSearcher{results: []*domain.CharacterStats{
		candidate(1, 1700, tp(100)),
		candidate(2, 1800, tp(500)),
		candidate(3, 1900, tp(300)),
	}}
	r := New(search, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "Shared", &MMRRange{Min: 1500, Max: 2100})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Character.ID != 2 {
		t.Errorf("expected most recently played candidate, got id %d", got.Character.ID)
	}
}

func TestResolveFallsBackWhenFilterEmpties(t *testing.T) {
	// Nobody is in range; the full set is used and recency decides.
	search := &fakeSearcher{results: []*domain.CharacterStats{
		candidate(1, 900, tp(100)),
		candidate(2, 950, tp(700)),
	}}
	r := New(search, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "Shared", &MMRRange{Min: 3000, Max: 4000})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Character.ID != 2 {
		t.Errorf("expected fallback to recency over the full set, got id %d", got.Character.ID)
	}
}

func TestResolveNoHint(t *testing.T) {
	search := &fakeSearcher{results: []*domain.CharacterStats{
		candidate(1, 900, tp(100)),
		candidate(2, 4000, tp(700)),
	}}
	r := New(search, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "Shared", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Character.ID != 2 {
		t.Errorf("expected recency to decide without a hint, got id %d", got.Character.ID)
	}
}

func TestResolveDefaultsToFirstWithoutTimestamps(t *testing.T) {
	search := &fakeSearcher{results: []*domain.CharacterStats{
		candidate(1, 1700, nil),
		candidate(2, 1800, nil),
	}}
	r := New(search, zerolog.Nop())

	got, err := r.Resolve(context.Background(), "Shared", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Character.ID != 1 {
		t.Errorf("expected first candidate in API order, got id %d", got.Character.ID)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := New(&fakeSearcher{}, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "Ghost", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveSearchError(t *testing.T) {
	upstream := errors.New("boom")
	r := New(&fakeSearcher{err: upstream}, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "Shared", nil)
	if !errors.Is(err, upstream) {
		t.Errorf("expected wrapped search error, got %v", err)
	}
}
