package analytics

import (
	"fmt"
	"sort"
	"time"

	"smurfbrief/internal/constants"
	"smurfbrief/internal/domain"
)

// Brief is the flat per-opponent summary handed to presentation
// collaborators. Value object, rebuilt each evaluation.
type Brief struct {
	Player         string              `json:"player"`
	Region         string              `json:"region"`
	BattleTag      string              `json:"battle_tag,omitempty"`
	MaxLeague      string              `json:"max_league"`
	CurrentMMR     int                 `json:"current_mmr"`
	PreviousMMR    int                 `json:"previous_mmr"`
	RatingMax      int                 `json:"rating_max"`
	Trend          domain.TrendLabel   `json:"trend"`
	SmurfWarning   domain.SmurfWarning `json:"smurf_warning,omitempty"`
	CurrentRace    string              `json:"current_race"`
	MostPlayedRace string              `json:"most_played_race"`
	RaceGames      map[string]int      `json:"race_games,omitempty"`
	TotalGames     int                 `json:"total_games"`
	FirstPlayed    *time.Time          `json:"first_played,omitempty"`
	LastPlayed     *time.Time          `json:"last_played,omitempty"`
	PlayingFor     string              `json:"playing_for"`
	Record         domain.WindowedRecord `json:"record"`
	Teammates      []domain.TeammateEntry `json:"teammates,omitempty"`
	Sparkline      string              `json:"sparkline,omitempty"`
}

// BuildBrief runs the full analytics pass for one resolved opponent:
// normalized history → windowed record, trend, smurf warning; roster data
// → teammate table and race distribution. Never fails: missing history
// degrades to zero counts, unknown trend, and no warning.
func BuildBrief(stats *domain.CharacterStats, history domain.MatchHistory, liveRace string, now time.Time) Brief {
	record := Windowed(Outcomes(history), now)

	b := Brief{
		Player:         stats.Character.Name,
		Region:         stats.Character.Region,
		BattleTag:      stats.Character.BattleTag,
		MaxLeague:      domain.League(stats.LeagueMax).String(),
		CurrentMMR:     currentMMR(stats),
		PreviousMMR:    stats.PreviousRating,
		RatingMax:      stats.RatingMax,
		Trend:          Trend(history),
		SmurfWarning:   Smurf(&record),
		CurrentRace:    domain.NormalizeRace(liveRace),
		MostPlayedRace: MostPlayedRace(stats.RaceGames),
		RaceGames:      stats.RaceGames,
		TotalGames:     stats.TotalGamesPlayed,
		Record:         record,
		Teammates:      Teammates(stats.Character.Teams, stats.Character.Name),
		Sparkline:      Sparkline(history, windowWeek, now),
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

// currentMMR prefers the current season rating and falls back to the
// previous one for characters that have not played this season yet.
func currentMMR(stats *domain.CharacterStats) int {
	if stats.CurrentRating != 0 {
		return stats.CurrentRating
	}
	return stats.PreviousRating
}

// MostPlayedRace picks the race with the highest game count. Empty
// distribution yields "Unknown".
func MostPlayedRace(raceGames map[string]int) string {
	best := ""
	bestCount := -1
	for race, games := range raceGames {
		if games > bestCount || (games == bestCount && race < best) {
			best = race
			bestCount = games
		}
	}
	if best == "" {
		return "Unknown"
	}
	return domain.NormalizeRace(best)
}

// KV is one ordered row of a flattened brief.
type KV struct {
	Key   string
	Value string
}

// Flat renders the brief as ordered string key/value pairs, the shape
// presentation collaborators consume.
func (b Brief) Flat() []KV {
	fmtTime := func(t *time.Time) string {
		if t == nil {
			return "unknown"
		}
		return t.UTC().Format(time.RFC3339)
	}
	warn := "none"
	if b.SmurfWarning != domain.SmurfNone {
		warn = string(b.SmurfWarning)
	}
	currentRace := b.CurrentRace
	if b.CurrentRace != "Unknown" && b.MostPlayedRace != "Unknown" && b.CurrentRace != b.MostPlayedRace {
		currentRace += " (off-race)"
	}

	rows := []KV{
		{"Player", b.Player},
		{"Region", b.Region},
		{"Max League", b.MaxLeague},
		{"Current MMR", fmt.Sprintf("%d", b.CurrentMMR)},
		{"Highest MMR", fmt.Sprintf("%d", b.RatingMax)},
		{"Trend", string(b.Trend)},
		{"Smurf Warning", warn},
		{"Current Race", currentRace},
		{"Most Played Race", b.MostPlayedRace},
		{"Total Games", fmt.Sprintf("%d", b.TotalGames)},
		{"Playing For", b.PlayingFor},
		{"Most Recent Game", fmtTime(b.LastPlayed)},
		{"Wins (1d)", fmt.Sprintf("%d", b.Record.Day.Wins)},
		{"Losses (1d)", fmt.Sprintf("%d", b.Record.Day.Losses)},
		{"Wins (3d)", fmt.Sprintf("%d", b.Record.ThreeDay.Wins)},
		{"Losses (3d)", fmt.Sprintf("%d", b.Record.ThreeDay.Losses)},
		{"Wins (7d)", fmt.Sprintf("%d", b.Record.Week.Wins)},
		{"Losses (7d)", fmt.Sprintf("%d", b.Record.Week.Losses)},
		{"Wins (30d)", fmt.Sprintf("%d", b.Record.Month.Wins)},
		{"Losses (30d)", fmt.Sprintf("%d", b.Record.Month.Losses)},
		{"Lifetime Wins", fmt.Sprintf("%d", b.Record.Lifetime.Wins)},
		{"Lifetime Losses", fmt.Sprintf("%d", b.Record.Lifetime.Losses)},
	}
	for _, tm := range topTeammates(b.Teammates, constants.TopTeammateRows) {
		rows = append(rows, KV{
			Key:   "Teammate " + tm.Name,
			Value: fmt.Sprintf("%dg, last %s", tm.Count, tm.LastPlayed.UTC().Format("2006-01-02")),
		})
	}
	return rows
}

// topTeammates orders by game count, ties broken by first-seen order, and
// keeps the top n rows.
func topTeammates(teammates []domain.TeammateEntry, n int) []domain.TeammateEntry {
	out := make([]domain.TeammateEntry, len(teammates))
	copy(out, teammates)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// HumanDuration renders the span between two instants as whole years and
// months, matching the "playing for" line of the overlay.
func HumanDuration(start, end time.Time) string {
	if end.Before(start) {
		return "less than a month"
	}
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%s %s", plural(years, "year"), plural(months, "month"))
	case years > 0:
		return plural(years, "year")
	case months > 0:
		return plural(months, "month")
	default:
		return "less than a month"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
