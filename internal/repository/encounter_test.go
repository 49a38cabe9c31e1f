package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"smurfbrief/internal/config"
	"smurfbrief/internal/database"
	"smurfbrief/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "encounters.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppendAndListFor(t *testing.T) {
	repo := NewEncounterRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	rows := []domain.Encounter{
		{BattlenetID: 11, CharacterID: 42, AccountID: 5, Name: "Rival", Realm: 1, Region: "EU", MatchStatus: domain.StatusVictory, MMR: 3100, CreatedAt: base},
		{BattlenetID: 11, CharacterID: 42, AccountID: 5, Name: "Rival", Realm: 1, Region: "EU", MatchStatus: domain.StatusDefeat, MMR: 3150, CreatedAt: base.Add(time.Hour)},
		{BattlenetID: 99, CharacterID: 77, AccountID: 6, Name: "Other", Realm: 1, Region: "EU", MatchStatus: domain.StatusTie, MMR: 2900, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, e := range rows {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.ListFor(ctx, 42, 10)
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for character 42, got %d", len(got))
	}
	if got[0].MatchStatus != domain.StatusDefeat || got[1].MatchStatus != domain.StatusVictory {
		t.Errorf("expected newest first, got %q then %q", got[0].MatchStatus, got[1].MatchStatus)
	}
	if got[0].ID == "" {
		t.Error("expected a generated id on rows appended without one")
	}
	if got[0].MMR != 3150 || got[0].Name != "Rival" {
		t.Errorf("unexpected row data: %+v", got[0])
	}
}

func TestListForHonorsLimit(t *testing.T) {
	repo := NewEncounterRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := domain.Encounter{
			CharacterID: 42,
			Name:        "Rival",
			MatchStatus: domain.StatusVictory,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.ListFor(ctx, 42, 3)
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected limit of 3, got %d rows", len(got))
	}
}

func TestMostRecent(t *testing.T) {
	repo := NewEncounterRepository(testDB(t), zerolog.Nop())
	ctx := context.Background()

	got, err := repo.MostRecent(ctx, 42)
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for an unseen character, got %+v", got)
	}

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	older := domain.Encounter{ID: "old", CharacterID: 42, Name: "Rival", MatchStatus: domain.StatusVictory, CreatedAt: base}
	newer := domain.Encounter{ID: "new", CharacterID: 42, Name: "Rival", MatchStatus: domain.StatusDefeat, CreatedAt: base.Add(time.Hour)}
	for _, e := range []domain.Encounter{older, newer} {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err = repo.MostRecent(ctx, 42)
	if err != nil {
		t.Fatalf("MostRecent: %v", err)
	}
	if got == nil || got.ID != "new" {
		t.Errorf("expected the newest row, got %+v", got)
	}
}
