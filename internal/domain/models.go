package domain

import (
	"time"
)

// CharacterRef identifies one ladder character inside a team roster.
type CharacterRef struct {
	ID          int64
	BattlenetID int64
	Realm       int
	Name        string
	Region      string
}

// CharacterRecord is the full identity of a resolved ladder character.
// Immutable once fetched.
type CharacterRecord struct {
	ID          int64
	AccountID   int64
	BattlenetID int64
	Realm       int
	Name        string
	Region      string
	BattleTag   string
	Teams       []TeamObservation
}

// TeamObservation is one historical team composition the character has
// belonged to. LegacyUID correlates the team across API calls.
type TeamObservation struct {
	LegacyUID  string
	Season     int
	Rating     int
	League     int
	Members    []CharacterRef
	LastPlayed *time.Time
}

// CharacterStats is a candidate record returned by the character search:
// ladder statistics plus the nested character identity.
type CharacterStats struct {
	Character        CharacterRecord
	CurrentRating    int
	CurrentGames     int
	PreviousRating   int
	PreviousGames    int
	RatingMax        int
	LeagueMax        int
	TotalGamesPlayed int
	RaceGames        map[string]int
}

// RatingSnapshot is one (timestamp, rating) observation.
type RatingSnapshot struct {
	Timestamp time.Time
	Rating    int
}

// MatchHistory is a deduplicated, ascending-by-timestamp rating series for
// one character or merged team. Built fresh per evaluation, never persisted.
type MatchHistory []RatingSnapshot

func (h MatchHistory) First() (RatingSnapshot, bool) {
	if len(h) == 0 {
		return RatingSnapshot{}, false
	}
	return h[0], true
}

func (h MatchHistory) Last() (RatingSnapshot, bool) {
	if len(h) == 0 {
		return RatingSnapshot{}, false
	}
	return h[len(h)-1], true
}

// Ratings returns the rating values in series order.
func (h MatchHistory) Ratings() []int {
	out := make([]int, len(h))
	for i, s := range h {
		out[i] = s.Rating
	}
	return out
}

// Outcome tags one derived match result.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
)

// OutcomeEvent is a win/loss-tagged timestamped event derived from a
// rating series.
type OutcomeEvent struct {
	Timestamp time.Time
	Outcome   Outcome
}

// WindowCounts holds win/loss counts for one trailing window.
type WindowCounts struct {
	Wins   int
	Losses int
}

func (c WindowCounts) Games() int { return c.Wins + c.Losses }

// WindowedRecord holds win/loss counts per trailing window, derived on
// demand from a match history and an explicit reference instant.
type WindowedRecord struct {
	Day      WindowCounts
	ThreeDay WindowCounts
	Week     WindowCounts
	Month    WindowCounts
	Lifetime WindowCounts
}

// TrendLabel buckets the fitted rating slope.
type TrendLabel string

const (
	TrendUnknown       TrendLabel = "unknown"
	TrendStrongRising  TrendLabel = "strong rising"
	TrendRising        TrendLabel = "rising"
	TrendFlat          TrendLabel = "flat"
	TrendFalling       TrendLabel = "falling"
	TrendStrongFalling TrendLabel = "strong falling"
)

// Symbol returns the compact overlay glyph for the trend.
func (t TrendLabel) Symbol() string {
	switch t {
	case TrendStrongRising:
		return "▲▲"
	case TrendRising:
		return "▲"
	case TrendFalling:
		return "▼"
	case TrendStrongFalling:
		return "▼▼"
	case TrendFlat:
		return "→"
	default:
		return "?"
	}
}

// SmurfWarning is the zero-or-one warning emitted per evaluation.
type SmurfWarning string

const (
	SmurfNone     SmurfWarning = ""
	SmurfLikely   SmurfWarning = "likely smurf (3d winrate ≥ 80%)"
	SmurfPossible SmurfWarning = "possible smurf (7d winrate ≥ 75%)"
	SmurfLifetime SmurfWarning = "suspiciously strong lifetime winrate"
)

// TeammateEntry is the per-co-player row of the frequency table.
type TeammateEntry struct {
	Name       string
	Count      int
	LastPlayed time.Time
}

// LivePlayer is one lobby participant as reported by the game client.
// Name and race only; full stats exist only on the resolved character.
type LivePlayer struct {
	Name   string
	Race   string
	Result string
}

// Finished reports whether the game client already assigned a result.
func (p LivePlayer) Finished() bool {
	return p.Result == "Victory" || p.Result == "Defeat" || p.Result == "Tie"
}

// MatchStatus is the outcome of a past encounter from the opponent's side.
type MatchStatus string

const (
	StatusVictory MatchStatus = "victory"
	StatusDefeat  MatchStatus = "defeat"
	StatusTie     MatchStatus = "tie"
)

// Encounter is one append-only row of the local opponent log.
type Encounter struct {
	ID          string
	BattlenetID int64
	CharacterID int64
	AccountID   int64
	Name        string
	Realm       int
	Region      string
	MatchStatus MatchStatus
	MMR         int
	CreatedAt   time.Time
}
