package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"smurfbrief/internal/domain"
)

// CharacterSearcher is the stats-search collaborator: all ladder
// characters matching a display name, zero or more.
type CharacterSearcher interface {
	SearchCharacters(ctx context.Context, name string) ([]*domain.CharacterStats, error)
}

// MMRRange is the live-match rating hint, typically the local user's MMR
// ± 500.
type MMRRange struct {
	Min int
	Max int
}

func (r MMRRange) contains(rating int) bool {
	return rating >= r.Min && rating <= r.Max
}

// Resolver disambiguates which same-named search candidate is the account
// playing in the live match.
type Resolver struct {
	search CharacterSearcher
	logger zerolog.Logger
}

func New(search CharacterSearcher, logger zerolog.Logger) *Resolver {
	return &Resolver{search: search, logger: logger}
}

// Resolve selects exactly one candidate for the name. Candidates outside
// the MMR hint are filtered out first; when the filter empties the set the
// full candidate list is used instead (logged, not an error). Among the
// remaining candidates the one whose latest team lastPlayed is newest
// wins; with no played-timestamp anywhere, the first candidate in API
// order is kept. Zero candidates overall is ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, name string, hint *MMRRange) (*domain.CharacterStats, error) {
	candidates, err := r.search.SearchCharacters(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}

	filtered := candidates
	if hint != nil {
		filtered = filtered[:0:0]
		for _, c := range candidates {
			if hint.contains(c.CurrentRating) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			r.logger.Warn().
				Str("name", name).
				Int("mmr_min", hint.Min).
				Int("mmr_max", hint.Max).
				Int("candidates", len(candidates)).
				Msg("no candidate within MMR range, falling back to unfiltered set")
			filtered = candidates
		}
	}

	best := filtered[0]
	var newest time.Time
	for _, c := range filtered {
		r.logger.Debug().
			Str("name", name).
			Int64("character_id", c.Character.ID).
			Int("mmr", c.CurrentRating).
			Msg("evaluating candidate")

		for _, team := range c.Character.Teams {
			if team.LastPlayed == nil {
				continue
			}
			if team.LastPlayed.After(newest) {
				newest = *team.LastPlayed
				best = c
			}
		}
	}
	return best, nil
}
