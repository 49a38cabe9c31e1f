package analytics

import (
	"smurfbrief/internal/domain"
)

// Teammates builds the co-player frequency table from a character's
// historical team compositions. Every teammate name across every team is
// counted once per team, the subject excluded; the latest lastPlayed seen
// for a name is kept. Teams without a lastPlayed timestamp are skipped.
// Output preserves first-seen order; callers re-sort at presentation time
// if they want frequency or recency order.
func Teammates(teams []domain.TeamObservation, selfName string) []domain.TeammateEntry {
	var order []string
	byName := make(map[string]*domain.TeammateEntry)

	for _, team := range teams {
		if team.LastPlayed == nil {
			continue
		}
		ts := *team.LastPlayed
		for _, member := range team.Members {
			if member.Name == selfName {
				continue
			}
			entry, ok := byName[member.Name]
			if !ok {
				entry = &domain.TeammateEntry{Name: member.Name}
				byName[member.Name] = entry
				order = append(order, member.Name)
			}
			entry.Count++
			if ts.After(entry.LastPlayed) {
				entry.LastPlayed = ts
			}
		}
	}

	out := make([]domain.TeammateEntry, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}
