package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ArchPath points at an architecture description: a .hcl file or
	// directory, or a .yaml/.yml file.
	ArchPath string

	// StartNode/EndNode run one path search after assembly when both
	// are set. MaxDepth bounds the hop count, 0 means unbounded.
	StartNode string
	EndNode   string
	MaxDepth  int

	// IgnoreTopics overrides the default ignore list when non-nil.
	IgnoreTopics []string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ArchPath == "" {
		return nil, errors.New("ArchPath is a required configuration field and cannot be empty")
	}
	if (cfg.StartNode == "") != (cfg.EndNode == "") {
		return nil, errors.New("search requires both a start node and an end node")
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", cfg.MaxDepth)
	}
	return &cfg, nil
}
