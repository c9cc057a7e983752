package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	PlanPath string

	LogFormat string
	LogLevel  string
	Workers   int
	DryRun    bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("Workers must be at least 1")
	}
	return &cfg, nil
}
