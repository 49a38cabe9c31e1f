package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"smurfbrief/internal/analytics"
	"smurfbrief/internal/api"
	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	"smurfbrief/internal/logger"
	"smurfbrief/internal/report"
	"smurfbrief/internal/resolver"
)

var lookupMMR int

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Resolve a player name and print their match-history brief",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().IntVar(&lookupMMR, "mmr", 0, "MMR hint centering the candidate filter (0 disables)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	log := logger.WithLevel(logger.New(), cfg.LogLevel)

	pulse := api.NewPulseClient(cfg)
	res := resolver.New(pulse, log)

	ctx, cancel := context.WithTimeout(context.Background(), constants.EvaluationTimeout)
	defer cancel()

	var hint *resolver.MMRRange
	if lookupMMR > 0 {
		hint = &resolver.MMRRange{
			Min: lookupMMR - constants.MMRHintSpread,
			Max: lookupMMR + constants.MMRHintSpread,
		}
	}

	stats, err := res.Resolve(ctx, args[0], hint)
	if err != nil {
		return err
	}

	var uids []string
	for _, team := range stats.Character.Teams {
		if team.LegacyUID != "" {
			uids = append(uids, team.LegacyUID)
		}
	}
	points, err := pulse.TeamHistory(ctx, uids)
	if err != nil {
		log.Warn().Err(err).Msg("team history unavailable, brief degrades to sentinel values")
		points = nil
	}

	brief := analytics.BuildBrief(stats, analytics.Normalize(points), "", time.Now().UTC())
	report.PrintBrief(os.Stdout, brief)
	report.PrintTeammates(os.Stdout, brief)
	return nil
}
