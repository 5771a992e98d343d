// Package config loads runtime configuration for the session client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c, -config or --config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite session database ("" keeps it in memory)
//	-r string   redis URL; when set the session lives in Redis and -d is ignored
//	-l int      simulated login/register latency (milliseconds)
//	-s          serialize session actions
//	-t int      session token lifetime (hours)
//	-v string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "1s" or
// integer nanoseconds. Keys that are absent leave the current value alone:
//
//	{
//	  "database_path": "session.db",
//	  "redis_url": "redis://localhost:6379/0",
//	  "latency_simulation": "1s",
//	  "serialize_mutations": false,
//	  "token_ttl": "720h",
//	  "token_signing_key": "change-me",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// The signing key is only read from JSON so it stays out of shell history.
package config
