package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	GameClientTimeout  = 5 * time.Second
	DatabaseTimeout    = 5 * time.Second
	EvaluationTimeout  = 30 * time.Second
)

const (
	DefaultPollInterval = 5 * time.Second
	EncounterLogDelay   = 2 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// MMRHintSpread widens the local user's MMR into the resolver's
	// candidate filter range.
	MMRHintSpread = 500

	EncounterQueryLimit = 40
	TopTeammateRows     = 3
)
