package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"smurfbrief/internal/domain"
)

// EncounterRepository is the append-only local log of past opponents.
type EncounterRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewEncounterRepository(db *sql.DB, logger zerolog.Logger) *EncounterRepository {
	return &EncounterRepository{db: db, logger: logger}
}

// Append journals one encounter. A missing ID gets a fresh nanoid; a
// zero CreatedAt gets the current instant.
func (r *EncounterRepository) Append(ctx context.Context, e domain.Encounter) error {
	if e.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generate nanoid: %w", err)
		}
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	const q = `
        INSERT INTO encounters
            (id, battlenet_id, character_id, account_id, name, realm, region, match_status, mmr, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.BattlenetID, e.CharacterID, e.AccountID,
		e.Name, e.Realm, e.Region, string(e.MatchStatus), e.MMR, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert encounter: %w", err)
	}

	r.logger.Debug().
		Str("id", e.ID).
		Int64("character_id", e.CharacterID).
		Str("status", string(e.MatchStatus)).
		Msg("encounter appended")
	return nil
}

// MostRecent returns the newest encounter for a character, or nil when the
// character has never been logged.
func (r *EncounterRepository) MostRecent(ctx context.Context, characterID int64) (*domain.Encounter, error) {
	rows, err := r.ListFor(ctx, characterID, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListFor returns up to limit encounters for a character, newest first.
func (r *EncounterRepository) ListFor(ctx context.Context, characterID int64, limit int) ([]domain.Encounter, error) {
	const q = `
        SELECT id, battlenet_id, character_id, account_id, name, realm, region, match_status, mmr, created_at
        FROM encounters
        WHERE character_id = ?
        ORDER BY created_at DESC
        LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, characterID, limit)
	if err != nil {
		return nil, fmt.Errorf("query encounters: %w", err)
	}
	defer rows.Close()

	var out []domain.Encounter
	for rows.Next() {
		var e domain.Encounter
		var status string
		if err := rows.Scan(
			&e.ID, &e.BattlenetID, &e.CharacterID, &e.AccountID,
			&e.Name, &e.Realm, &e.Region, &status, &e.MMR, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		e.MatchStatus = domain.MatchStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}
