package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"smurfbrief/internal/api"
	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	"smurfbrief/internal/domain"
	"smurfbrief/internal/overlay"
	"smurfbrief/internal/repository"
)

// Poller drives the strictly serialized polling loop: one fetch, one
// resolve, one analytics pass, one publish per tick, never more than one
// evaluation in flight.
type Poller struct {
	cfg       *config.Config
	game      *api.GameClient
	evaluator *Evaluator
	publisher *overlay.Publisher
	repo      *repository.EncounterRepository
	logger    zerolog.Logger

	previousState string
	lastResolved  map[string]*domain.CharacterStats
}

func NewPoller(
	cfg *config.Config,
	game *api.GameClient,
	evaluator *Evaluator,
	publisher *overlay.Publisher,
	repo *repository.EncounterRepository,
	logger zerolog.Logger,
) *Poller {
	return &Poller{
		cfg:       cfg,
		game:      game,
		evaluator: evaluator,
		publisher: publisher,
		repo:      repo,
		logger:    logger,
	}
}

// Run blocks until the context is cancelled, evaluating the lobby once
// per poll interval.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.cfg.PollInterval).Msg("poller started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("poller stopped")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// Reset forgets the previous lobby state so the next tick re-evaluates.
func (p *Poller) Reset() {
	p.previousState = ""
	p.logger.Info().Msg("poller state reset, next tick re-evaluates")
}

func (p *Poller) pollOnce(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, constants.GameClientTimeout)
	players, err := p.game.Players(pollCtx)
	cancel()
	if err != nil {
		p.logger.Error().Err(err).Msg("polling error")
		return
	}
	if len(players) == 0 {
		return
	}

	for _, player := range players {
		if player.Finished() {
			p.onGameEnded(players)
			return
		}
	}

	state := fingerprint(players)
	if state == p.previousState {
		return
	}
	p.previousState = state
	p.publisher.CloseAll()

	var opponents []domain.LivePlayer
	for _, player := range players {
		if !p.cfg.IsAlly(player.Name) {
			opponents = append(opponents, player)
		}
	}
	if len(opponents) == 0 {
		return
	}

	evaluationID := uuid.New().String()
	p.logger.Info().
		Str("evaluation_id", evaluationID).
		Str("lobby", state).
		Int("opponents", len(opponents)).
		Msg("new game detected")

	evalCtx, cancel := context.WithTimeout(ctx, constants.EvaluationTimeout)
	defer cancel()

	ev := p.evaluator.Evaluate(evalCtx, evaluationID, opponents)
	p.lastResolved = ev.Resolved
	if len(ev.Payload.Players) == 0 {
		p.logger.Warn().Str("evaluation_id", evaluationID).Msg("no opponent resolved, nothing to publish")
		return
	}
	p.publisher.Publish(ev.Payload)
}

// onGameEnded clears the overlays and journals each resolved opponent's
// outcome to the encounter log in the background.
func (p *Poller) onGameEnded(players []domain.LivePlayer) {
	p.publisher.CloseAll()
	p.previousState = ""

	resolved := p.lastResolved
	p.lastResolved = nil
	if len(resolved) == 0 {
		p.logger.Info().Msg("game ended, waiting for next lobby")
		return
	}

	g := new(errgroup.Group)
	for _, player := range players {
		stats, ok := resolved[player.Name]
		if !ok {
			continue
		}
		status, ok := matchStatus(player.Result)
		if !ok {
			continue
		}

		g.Go(func() error {
			time.Sleep(constants.EncounterLogDelay)

			ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
			defer cancel()

			return p.repo.Append(ctx, domain.Encounter{
				BattlenetID: stats.Character.BattlenetID,
				CharacterID: stats.Character.ID,
				AccountID:   stats.Character.AccountID,
				Name:        stats.Character.Name,
				Realm:       stats.Character.Realm,
				Region:      stats.Character.Region,
				MatchStatus: status,
				MMR:         stats.CurrentRating,
			})
		})
	}

	go func() {
		if err := g.Wait(); err != nil {
			p.logger.Warn().Err(err).Msg("failed to journal encounter")
		}
	}()

	p.logger.Info().Msg("game ended, encounters journaled, waiting for next lobby")
}

func matchStatus(result string) (domain.MatchStatus, bool) {
	switch result {
	case "Victory":
		return domain.StatusVictory, true
	case "Defeat":
		return domain.StatusDefeat, true
	case "Tie":
		return domain.StatusTie, true
	default:
		return "", false
	}
}

func fingerprint(players []domain.LivePlayer) string {
	parts := make([]string, 0, len(players))
	for _, p := range players {
		parts = append(parts, p.Name+"/"+p.Race)
	}
	return strings.Join(parts, ",")
}
