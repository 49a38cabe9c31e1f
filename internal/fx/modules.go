package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"smurfbrief/internal/api"
	"smurfbrief/internal/config"
	"smurfbrief/internal/database"
	"smurfbrief/internal/logger"
	"smurfbrief/internal/overlay"
	"smurfbrief/internal/repository"
	"smurfbrief/internal/resolver"
	"smurfbrief/internal/service"
)

func provideResolver(pulse *api.PulseClient, log zerolog.Logger) *resolver.Resolver {
	return resolver.New(pulse, log)
}

func provideEvaluator(
	cfg *config.Config,
	res *resolver.Resolver,
	pulse *api.PulseClient,
	repo *repository.EncounterRepository,
	log zerolog.Logger,
) *service.Evaluator {
	return service.NewEvaluator(cfg, res, pulse, repo, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewEncounterRepository),
	// api clients
	fx.Provide(api.NewPulseClient),
	fx.Provide(api.NewGameClient),
	// core
	fx.Provide(provideResolver),
	fx.Provide(provideEvaluator),
	fx.Provide(overlay.NewPublisher),
	fx.Provide(service.NewPoller),
)
