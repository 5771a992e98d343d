package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authsession/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args down to the flags it knows about using
// flagx.FilterArgs, so other arguments do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-l", "-s", "-t", "-v"}, "-s")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the session database")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "redis URL for the session store (overrides -d)")
	latency := fs.Int("l", int(cfg.LatencySimulation.Milliseconds()), "simulated login latency (in milliseconds)")
	fs.BoolVar(&cfg.SerializeMutations, "s", cfg.SerializeMutations, "serialize session actions")
	ttl := fs.Int("t", int(cfg.TokenTTL.Hours()), "session token lifetime (in hours)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only convert the integer flags that were given, so a sub-unit value
	// from JSON is not truncated.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "l":
			cfg.LatencySimulation = time.Duration(*latency) * time.Millisecond
		case "t":
			cfg.TokenTTL = time.Duration(*ttl) * time.Hour
		}
	})
}
