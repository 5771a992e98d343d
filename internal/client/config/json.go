package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authsession/internal/flagx"
	"github.com/dmitrijs2005/authsession/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from a zero value.
type JsonConfig struct {
	DatabasePath       *string         `json:"database_path"`
	RedisURL           *string         `json:"redis_url"`
	LatencySimulation  *timex.Duration `json:"latency_simulation"`
	SerializeMutations *bool           `json:"serialize_mutations"`
	TokenTTL           *timex.Duration `json:"token_ttl"`
	TokenSigningKey    *string         `json:"token_signing_key"`
	LogLevel           *string         `json:"log_level"`
	LogFormat          *string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Without such a flag it does nothing. Read and unmarshal
// errors panic; configuration mistakes should stop the program early.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RedisURL != nil {
		cfg.RedisURL = *jc.RedisURL
	}
	if jc.LatencySimulation != nil {
		cfg.LatencySimulation = jc.LatencySimulation.Duration
	}
	if jc.SerializeMutations != nil {
		cfg.SerializeMutations = *jc.SerializeMutations
	}
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.TokenSigningKey != nil {
		cfg.TokenSigningKey = *jc.TokenSigningKey
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
}
