package domain

import "strings"

// League is the SC2Pulse numeric league type.
type League int

const (
	LeagueBronze League = iota
	LeagueSilver
	LeagueGold
	LeaguePlatinum
	LeagueDiamond
	LeagueMaster
	LeagueGrandmaster
)

func (l League) String() string {
	switch l {
	case LeagueBronze:
		return "Bronze"
	case LeagueSilver:
		return "Silver"
	case LeagueGold:
		return "Gold"
	case LeaguePlatinum:
		return "Platinum"
	case LeagueDiamond:
		return "Diamond"
	case LeagueMaster:
		return "Master"
	case LeagueGrandmaster:
		return "Grandmaster"
	default:
		return "Unknown"
	}
}

// NormalizeRace maps game-client race aliases ("Terr", "Prot", "random")
// and SC2Pulse race keys ("TERRAN") onto one display name.
func NormalizeRace(alias string) string {
	switch strings.ToLower(strings.TrimSpace(alias)) {
	case "terr", "terran":
		return "Terran"
	case "prot", "protoss":
		return "Protoss"
	case "zerg":
		return "Zerg"
	case "rand", "random":
		return "Random"
	default:
		return "Unknown"
	}
}
