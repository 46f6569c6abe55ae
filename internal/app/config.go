package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Inputs    []string // project files or directories to scan
	Output    string   // output file or directory
	CheckPath string   // when set, validate this .gan file and do nothing else

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.CheckPath == "" && len(cfg.Inputs) == 0 {
		return nil, errors.New("at least one input path is required")
	}
	if cfg.CheckPath != "" && len(cfg.Inputs) > 0 {
		return nil, errors.New("check mode takes no input paths")
	}
	if cfg.WorkerCount < 0 {
		return nil, errors.New("worker count cannot be negative")
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
