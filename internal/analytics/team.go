package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"smurfbrief/internal/domain"
)

// MergedTeam is one logical team reconstructed from the individual team
// histories of its members. Observations of the same member set, found on
// each member's record under a different legacy identifier, are folded
// into one entity carrying every correlation id.
type MergedTeam struct {
	LegacyUIDs []string
	Members    []domain.CharacterRef
	Rating     int
	League     int
	LastPlayed *time.Time
}

// MergeTeam finds the historical team whose member set equals the given
// roster across the candidates' team lists and merges the observations.
// Returns ErrAmbiguousTeamMatch when no candidate carries a matching team.
func MergeTeam(stats []*domain.CharacterStats) (*MergedTeam, error) {
	roster := make([]int64, 0, len(stats))
	for _, s := range stats {
		roster = append(roster, s.Character.BattlenetID)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i] < roster[j] })

	var found []domain.TeamObservation
	for _, s := range stats {
		for _, team := range s.Character.Teams {
			if sameRoster(team.Members, roster) {
				found = append(found, team)
			}
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrAmbiguousTeamMatch, roster)
	}

	merged := &MergedTeam{Members: found[0].Members}
	seen := make(map[string]bool)
	for _, team := range found {
		if team.LegacyUID != "" && !seen[team.LegacyUID] {
			seen[team.LegacyUID] = true
			merged.LegacyUIDs = append(merged.LegacyUIDs, team.LegacyUID)
		}
		if team.LastPlayed != nil && (merged.LastPlayed == nil || team.LastPlayed.After(*merged.LastPlayed)) {
			merged.LastPlayed = team.LastPlayed
			merged.Rating = team.Rating
			merged.League = team.League
		}
	}
	if merged.LastPlayed == nil {
		merged.Rating = found[0].Rating
		merged.League = found[0].League
	}
	return merged, nil
}

func sameRoster(members []domain.CharacterRef, roster []int64) bool {
	if len(members) != len(roster) {
		return false
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.BattlenetID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := range ids {
		if ids[i] != roster[i] {
			return false
		}
	}
	return true
}

// TeamBrief is the flat summary for a merged opponent team.
type TeamBrief struct {
	Team       string                `json:"team"`
	Members    []string              `json:"members"`
	League     string                `json:"league"`
	Rating     int                   `json:"rating"`
	Trend      domain.TrendLabel     `json:"trend"`
	Record     domain.WindowedRecord `json:"record"`
	FirstPlayed *time.Time           `json:"first_played,omitempty"`
	LastPlayed  *time.Time           `json:"last_played,omitempty"`
	PlayingFor  string               `json:"playing_for"`
	Sparkline   string               `json:"sparkline,omitempty"`
}

// BuildTeamBrief runs the analytics pass over a merged team's own rating
// history.
func BuildTeamBrief(team *MergedTeam, history domain.MatchHistory, now time.Time) TeamBrief {
	names := make([]string, 0, len(team.Members))
	for _, m := range team.Members {
		names = append(names, m.Name)
	}

	b := TeamBrief{
		Team:      joinNames(names),
		Members:   names,
		League:    domain.League(team.League).String(),
		Rating:    team.Rating,
		Trend:     Trend(history),
		Record:    Windowed(Outcomes(history), now),
		Sparkline: Sparkline(history, windowWeek, now),
	}
	if first, ok := history.First(); ok {
		t := first.Timestamp
		b.FirstPlayed = &t
		b.PlayingFor = HumanDuration(t, now)
	} else {
		b.PlayingFor = "unknown"
	}
	if last, ok := history.Last(); ok {
		t := last.Timestamp
		b.LastPlayed = &t
	}
	return b
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// CombineRecords sums windowed counts across several player briefs, the
// combined-performance block of the multi-opponent overlay.
func CombineRecords(briefs []Brief) domain.WindowedRecord {
	var rec domain.WindowedRecord
	for _, b := range briefs {
		rec.Day.Wins += b.Record.Day.Wins
		rec.Day.Losses += b.Record.Day.Losses
		rec.ThreeDay.Wins += b.Record.ThreeDay.Wins
		rec.ThreeDay.Losses += b.Record.ThreeDay.Losses
		rec.Week.Wins += b.Record.Week.Wins
		rec.Week.Losses += b.Record.Week.Losses
		rec.Month.Wins += b.Record.Month.Wins
		rec.Month.Losses += b.Record.Month.Losses
		rec.Lifetime.Wins += b.Record.Lifetime.Wins
		rec.Lifetime.Losses += b.Record.Lifetime.Losses
	}
	return rec
}

// AverageMMR averages the current MMR across briefs, rounded to one
// decimal. Zero briefs yields 0.
func AverageMMR(briefs []Brief) float64 {
	if len(briefs) == 0 {
		return 0
	}
	sum := 0
	for _, b := range briefs {
		sum += b.CurrentMMR
	}
	avg := float64(sum) / float64(len(briefs))
	return float64(int(avg*10+0.5)) / 10
}
