package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"smurfbrief/internal/constants"
)

type Config struct {
	// Local user identity, used to split the lobby into "us" and "them"
	// and to center the resolver's MMR hint.
	PlayerName  string
	PlayerMMR   int
	TeamMembers []string

	GameClientURL string
	PulseBaseURL  string
	PollInterval  time.Duration

	DBPath      string
	OverlayAddr string
	LogLevel    string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		PlayerName:    getEnv("SB_PLAYER_NAME", ""),
		GameClientURL: getEnv("SB_GAME_CLIENT_URL", "http://localhost:6119/game"),
		PulseBaseURL:  getEnv("SB_PULSE_BASE_URL", "https://sc2pulse.nephest.com"),
		DBPath:        getEnv("SB_DB_PATH", "smurfbrief.db"),
		OverlayAddr:   getEnv("SB_OVERLAY_ADDR", "127.0.0.1:6180"),
		LogLevel:      getEnv("SB_LOG_LEVEL", "info"),
		PollInterval:  constants.DefaultPollInterval,
	}

	if cfg.PlayerName == "" {
		return nil, fmt.Errorf("SB_PLAYER_NAME is required")
	}

	mmr, err := strconv.Atoi(getEnv("SB_PLAYER_MMR", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SB_PLAYER_MMR: %w", err)
	}
	cfg.PlayerMMR = mmr

	if raw := getEnv("SB_TEAM_MEMBERS", ""); raw != "" {
		for _, member := range strings.Split(raw, ",") {
			if member = strings.TrimSpace(member); member != "" {
				cfg.TeamMembers = append(cfg.TeamMembers, member)
			}
		}
	}

	if raw := getEnv("SB_POLL_INTERVAL", ""); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SB_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = interval
	}

	logger.Info().
		Str("player", cfg.PlayerName).
		Int("mmr", cfg.PlayerMMR).
		Strs("team_members", cfg.TeamMembers).
		Str("game_client_url", cfg.GameClientURL).
		Str("db_path", cfg.DBPath).
		Str("overlay_addr", cfg.OverlayAddr).
		Dur("poll_interval", cfg.PollInterval).
		Msg("configuration loaded")

	return cfg, nil
}

// Default builds a config from environment defaults without requiring the
// player identity. One-off CLI commands use it; the poller requires Load.
func Default() *Config {
	_ = godotenv.Load()
	return &Config{
		PlayerName:    getEnv("SB_PLAYER_NAME", ""),
		GameClientURL: getEnv("SB_GAME_CLIENT_URL", "http://localhost:6119/game"),
		PulseBaseURL:  getEnv("SB_PULSE_BASE_URL", "https://sc2pulse.nephest.com"),
		DBPath:        getEnv("SB_DB_PATH", "smurfbrief.db"),
		OverlayAddr:   getEnv("SB_OVERLAY_ADDR", "127.0.0.1:6180"),
		LogLevel:      getEnv("SB_LOG_LEVEL", "info"),
		PollInterval:  constants.DefaultPollInterval,
	}
}

// IsAlly reports whether a lobby name belongs to the local user or a
// configured teammate.
func (c *Config) IsAlly(name string) bool {
	if name == c.PlayerName {
		return true
	}
	for _, member := range c.TeamMembers {
		if name == member {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
