package config

import "time"

// EngineConfig describes the external UCI engine used for hints.
type EngineConfig struct {
	// Enabled turns the analysis engine on
	Enabled bool

	// Path is the engine binary
	Path string

	// Args are passed to the engine binary
	Args []string

	// MoveTime is the per-search time budget
	MoveTime time.Duration

	// Depth, when positive, searches to a fixed depth instead of MoveTime
	Depth int

	// Timeout bounds one request including queueing
	Timeout time.Duration
}

// NewEngineConfig creates an EngineConfig with default values. The engine
// is disabled until a path is supplied.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		MoveTime: time.Second,
		Timeout:  10 * time.Second,
	}
}
