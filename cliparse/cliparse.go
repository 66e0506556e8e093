package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            int
	RedisURL        string
	CORSOrigin      string
	VoterSalt       string
	PollExpiryHours int
	SweepInterval   time.Duration
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("livepoll", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.RedisURL, "r", "", "Redis URL")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origins (comma separated)")

	// Poll lifecycle tuning
	fs.IntVar(&cfg.PollExpiryHours, "expiry-hours", 0, "Default poll expiry in hours")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", 0, "Expired poll sweep interval")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterSalt, "voter-salt", "", "Voter fingerprint salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001 // default
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, errors.New("port out of range")
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}

	if cfg.PollExpiryHours == 0 {
		if hoursStr := os.Getenv("POLL_EXPIRY_HOURS"); hoursStr != "" {
			hours, err := strconv.Atoi(hoursStr)
			if err != nil {
				return Config{}, errors.New("invalid POLL_EXPIRY_HOURS env variable")
			}
			cfg.PollExpiryHours = hours
		} else {
			cfg.PollExpiryHours = 24
		}
	}
	if cfg.PollExpiryHours < 1 || cfg.PollExpiryHours > 168 {
		return Config{}, errors.New("POLL_EXPIRY_HOURS must be between 1 and 168")
	}

	if cfg.SweepInterval == 0 {
		if intervalStr := os.Getenv("SWEEP_INTERVAL"); intervalStr != "" {
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				return Config{}, errors.New("invalid SWEEP_INTERVAL env variable")
			}
			cfg.SweepInterval = interval
		} else {
			cfg.SweepInterval = time.Hour
		}
	}
	if cfg.SweepInterval < time.Second {
		return Config{}, errors.New("SWEEP_INTERVAL too short")
	}

	// Secrets - MUST be provided
	if cfg.VoterSalt == "" {
		cfg.VoterSalt = os.Getenv("VOTER_SALT")
	}
	if cfg.VoterSalt == "" {
		return Config{}, errors.New("VOTER_SALT required")
	}

	return cfg, nil
}
