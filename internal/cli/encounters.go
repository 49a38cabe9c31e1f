package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"smurfbrief/internal/analytics"
	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	"smurfbrief/internal/database"
	"smurfbrief/internal/logger"
	"smurfbrief/internal/report"
	"smurfbrief/internal/repository"
)

var encountersLimit int

var encountersCmd = &cobra.Command{
	Use:   "encounters <character-id>",
	Short: "Show the local log record against one opponent",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncounters,
}

func init() {
	encountersCmd.Flags().IntVar(&encountersLimit, "limit", constants.EncounterQueryLimit, "max log rows to aggregate")
}

func runEncounters(cmd *cobra.Command, args []string) error {
	characterID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid character id: %w", err)
	}

	cfg := config.Default()
	log := logger.WithLevel(logger.New(), cfg.LogLevel)

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewEncounterRepository(db, log)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	rows, err := repo.ListFor(ctx, characterID, encountersLimit)
	if err != nil {
		return err
	}

	report.PrintEncounters(os.Stdout, analytics.SummarizeEncounters(rows))
	return nil
}
