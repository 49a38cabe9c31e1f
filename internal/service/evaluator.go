package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"smurfbrief/internal/analytics"
	"smurfbrief/internal/config"
	"smurfbrief/internal/constants"
	"smurfbrief/internal/domain"
	"smurfbrief/internal/overlay"
	"smurfbrief/internal/resolver"
)

// HistoryFetcher is the team-history collaborator: merged (timestamp,
// rating) pairs for a set of team correlation ids.
type HistoryFetcher interface {
	TeamHistory(ctx context.Context, legacyUIDs []string) ([]domain.RatingSnapshot, error)
}

// EncounterLog is the subset of the local log the evaluator queries.
type EncounterLog interface {
	ListFor(ctx context.Context, characterID int64, limit int) ([]domain.Encounter, error)
}

// Evaluation is the outcome of one analytics pass over a lobby: the
// publishable payload plus the resolved stats per live opponent name,
// kept so the poller can journal outcomes once the game ends.
type Evaluation struct {
	Payload  overlay.Payload
	Resolved map[string]*domain.CharacterStats
}

// Evaluator turns a set of live opponents into briefs. One evaluation at
// a time; every step is synchronous and produces value objects only.
type Evaluator struct {
	cfg      *config.Config
	resolver *resolver.Resolver
	history  HistoryFetcher
	log      EncounterLog
	logger   zerolog.Logger
}

func NewEvaluator(
	cfg *config.Config,
	res *resolver.Resolver,
	history HistoryFetcher,
	log EncounterLog,
	logger zerolog.Logger,
) *Evaluator {
	return &Evaluator{cfg: cfg, resolver: res, history: history, log: log, logger: logger}
}

// Evaluate resolves each opponent and runs the analytics core. Resolution
// failures are per-opponent: a NotFound or upstream failure drops that
// player's panel and the pass continues. The returned payload is empty
// (and should not be published) only when no opponent resolved at all.
func (e *Evaluator) Evaluate(ctx context.Context, evaluationID string, opponents []domain.LivePlayer) Evaluation {
	logger := e.logger.With().Str("evaluation_id", evaluationID).Logger()
	now := time.Now().UTC()

	ev := Evaluation{
		Payload: overlay.Payload{
			EvaluationID: evaluationID,
			Mode:         mode(len(opponents)),
			GeneratedAt:  now,
		},
		Resolved: make(map[string]*domain.CharacterStats),
	}

	var hint *resolver.MMRRange
	if e.cfg.PlayerMMR > 0 {
		hint = &resolver.MMRRange{
			Min: e.cfg.PlayerMMR - constants.MMRHintSpread,
			Max: e.cfg.PlayerMMR + constants.MMRHintSpread,
		}
	}

	var resolved []*domain.CharacterStats
	for _, opp := range opponents {
		stats, err := e.resolver.Resolve(ctx, opp.Name, hint)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn().Str("name", opp.Name).Msg("opponent not found on the ladder")
			} else {
				logger.Error().Err(err).Str("name", opp.Name).Msg("opponent resolution failed")
			}
			continue
		}

		history := e.characterHistory(ctx, logger, stats)
		brief := analytics.BuildBrief(stats, history, opp.Race, now)
		ev.Payload.Players = append(ev.Payload.Players, brief)
		ev.Resolved[opp.Name] = stats
		resolved = append(resolved, stats)

		if summary, ok := e.encounterSummary(ctx, logger, stats.Character.ID); ok {
			ev.Payload.Encounters = append(ev.Payload.Encounters, summary)
		}

		logger.Info().
			Str("name", stats.Character.Name).
			Int("mmr", brief.CurrentMMR).
			Str("trend", string(brief.Trend)).
			Str("smurf_warning", string(brief.SmurfWarning)).
			Msg("opponent brief built")
	}

	if len(opponents) >= 2 && len(resolved) == len(opponents) {
		e.addTeamPanel(ctx, logger, &ev, resolved, now)
	}
	return ev
}

// characterHistory gathers the rating series across every historical team
// of the character and normalizes it. Fetch failures degrade to an empty
// history: the brief still renders with sentinel values.
func (e *Evaluator) characterHistory(ctx context.Context, logger zerolog.Logger, stats *domain.CharacterStats) domain.MatchHistory {
	var uids []string
	for _, team := range stats.Character.Teams {
		if team.LegacyUID != "" {
			uids = append(uids, team.LegacyUID)
		}
	}
	if len(uids) == 0 {
		return domain.MatchHistory{}
	}

	points, err := e.history.TeamHistory(ctx, uids)
	if err != nil {
		logger.Warn().Err(err).Str("name", stats.Character.Name).Msg("team history unavailable")
		return domain.MatchHistory{}
	}
	return analytics.Normalize(points)
}

func (e *Evaluator) encounterSummary(ctx context.Context, logger zerolog.Logger, characterID int64) (analytics.EncounterSummary, bool) {
	rows, err := e.log.ListFor(ctx, characterID, constants.EncounterQueryLimit)
	if err != nil {
		logger.Warn().Err(err).Int64("character_id", characterID).Msg("encounter log query failed")
		return analytics.EncounterSummary{}, false
	}
	if len(rows) == 0 {
		return analytics.EncounterSummary{}, false
	}
	return analytics.SummarizeEncounters(rows), true
}

// addTeamPanel reconstructs the merged opponent team and attaches its
// brief plus the combined per-player record. An ambiguous team match
// skips the team panel only.
func (e *Evaluator) addTeamPanel(ctx context.Context, logger zerolog.Logger, ev *Evaluation, resolved []*domain.CharacterStats, now time.Time) {
	combined := analytics.CombineRecords(ev.Payload.Players)
	ev.Payload.Combined = &combined
	ev.Payload.AverageMMR = analytics.AverageMMR(ev.Payload.Players)

	team, err := analytics.MergeTeam(resolved)
	if err != nil {
		if errors.Is(err, domain.ErrAmbiguousTeamMatch) {
			logger.Warn().Err(err).Msg("no historical team matches the live roster, skipping team panel")
		} else {
			logger.Error().Err(err).Msg("team reconstruction failed")
		}
		return
	}

	points, err := e.history.TeamHistory(ctx, team.LegacyUIDs)
	if err != nil {
		logger.Warn().Err(err).Msg("merged team history unavailable")
		points = nil
	}
	brief := analytics.BuildTeamBrief(team, analytics.Normalize(points), now)
	ev.Payload.Team = &brief
}

func mode(opponents int) string {
	switch opponents {
	case 0, 1:
		return "1v1"
	default:
		return fmt.Sprintf("%dv%d", opponents, opponents)
	}
}
