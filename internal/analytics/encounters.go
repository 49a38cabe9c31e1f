package analytics

import (
	"time"

	"smurfbrief/internal/domain"
)

// EncounterSummary aggregates the local log rows for one opponent:
// how often we have met them and how the games went from our side.
type EncounterSummary struct {
	Player      string    `json:"player"`
	Region      string    `json:"region"`
	TimesPlayed int       `json:"times_played"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Ties        int       `json:"ties"`
	FirstPlayed time.Time `json:"first_played"`
	LastPlayed  time.Time `json:"last_played"`
}

// SummarizeEncounters folds log rows (newest first, as the repository
// returns them) into a record from the local user's perspective: the
// opponent's victory is our loss. Empty input yields a zero summary.
func SummarizeEncounters(rows []domain.Encounter) EncounterSummary {
	if len(rows) == 0 {
		return EncounterSummary{}
	}

	s := EncounterSummary{
		Player:      rows[0].Name,
		Region:      rows[0].Region,
		TimesPlayed: len(rows),
		FirstPlayed: rows[len(rows)-1].CreatedAt,
		LastPlayed:  rows[0].CreatedAt,
	}
	for _, row := range rows {
		switch row.MatchStatus {
		case domain.StatusVictory:
			s.Losses++
		case domain.StatusDefeat:
			s.Wins++
		default:
			s.Ties++
		}
	}
	return s
}
