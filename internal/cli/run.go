package cli

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	fxmodules "smurfbrief/internal/fx"
	"smurfbrief/internal/overlay"
	"smurfbrief/internal/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the game-client poller and overlay endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		fx.New(
			fxmodules.Module,
			fx.Invoke(runApp),
		).Run()
	},
}

func runApp(
	lc fx.Lifecycle,
	cfg *config.Config,
	poller *service.Poller,
	publisher *overlay.Publisher,
	db *sql.DB,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.OverlayAddr,
		Handler: overlay.Handler(publisher, logger),
	}

	pollCtx, cancelPoll := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("overlay endpoint starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("overlay endpoint failed")
				}
			}()
			go poller.Run(pollCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelPoll()
			publisher.CloseAll()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing encounter log database")
			}
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("overlay endpoint shutdown failed")
				return err
			}
			logger.Info().Msg("stopped gracefully")
			return nil
		},
	})
}
