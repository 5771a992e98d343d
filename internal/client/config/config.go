package config

import "time"

// DefaultTokenSigningKey signs mock session tokens when no key is configured.
const DefaultTokenSigningKey = "dev-only-session-signing-key"

// Config holds runtime settings for the session client.
//
// Fields:
//   - DatabasePath: SQLite file holding the session; empty keeps it in memory.
//   - RedisURL: when set, the session is kept in Redis instead of SQLite.
//   - LatencySimulation: delay applied to login and register.
//   - SerializeMutations: run at most one session action at a time.
//   - TokenTTL / TokenSigningKey: lifetime and HS256 key of the session token.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
type Config struct {
	DatabasePath       string
	RedisURL           string
	LatencySimulation  time.Duration
	SerializeMutations bool
	TokenTTL           time.Duration
	TokenSigningKey    string
	LogLevel           string
	LogFormat          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "session.db"
	c.RedisURL = ""
	c.LatencySimulation = time.Second
	c.SerializeMutations = false
	c.TokenTTL = 30 * 24 * time.Hour
	c.TokenSigningKey = DefaultTokenSigningKey
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
