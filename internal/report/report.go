package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"smurfbrief/internal/analytics"
)

// PrintBrief writes one opponent brief as a two-column field table.
func PrintBrief(w io.Writer, brief analytics.Brief) {
	fmt.Fprintf(w, "\n%s  |  %s  |  MMR %d %s  %s\n\n",
		brief.Player, brief.MaxLeague, brief.CurrentMMR, brief.Trend.Symbol(), brief.Sparkline)

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))
	table.Header("FIELD", "VALUE")
	for _, kv := range brief.Flat() {
		table.Append(kv.Key, kv.Value)
	}
	table.Render()
}

// PrintTeammates writes the co-player frequency table in first-seen order.
func PrintTeammates(w io.Writer, brief analytics.Brief) {
	if len(brief.Teammates) == 0 {
		fmt.Fprintln(w, "(no teammate history)")
		return
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))
	table.Header("TEAMMATE", "GAMES", "LAST PLAYED")
	for _, tm := range brief.Teammates {
		table.Append(tm.Name, strconv.Itoa(tm.Count), tm.LastPlayed.UTC().Format("2006-01-02 15:04"))
	}
	table.Render()
}

// PrintEncounters writes the local-log record for one opponent.
func PrintEncounters(w io.Writer, s analytics.EncounterSummary) {
	if s.TimesPlayed == 0 {
		fmt.Fprintln(w, "no encounters logged")
		return
	}

	record := fmt.Sprintf("%dW – %dL", s.Wins, s.Losses)
	if s.Ties > 0 {
		record += fmt.Sprintf(" – %dT", s.Ties)
	}

	fmt.Fprintf(w, "\n%s (%s)\nPlayed %d times\nYour record: %s\nFirst: %s   Last: %s\n",
		s.Player, s.Region, s.TimesPlayed, record,
		s.FirstPlayed.UTC().Format("2006-01-02"), s.LastPlayed.UTC().Format("2006-01-02"))
}
