// Package config provides configuration for the chess core: rules policy,
// the optional analysis engine, the worker pool, and the log destination.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	// Rules controls draw-rule policy.
	Rules *RulesConfig

	// Engine describes the optional external UCI engine.
	Engine *EngineConfig

	// Workers is the number of analysis workers.
	Workers int

	// QueueSize is the analysis request buffer; 0 means Workers*2.
	QueueSize int

	// LogFile receives diagnostics. Nil silences logging.
	LogFile io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Rules:   NewRulesConfig(),
		Engine:  NewEngineConfig(),
		Workers: 1,
		LogFile: os.Stderr,
	}
}

// Log returns LogFile, or io.Discard when it is nil.
func (c *Config) Log() io.Writer {
	if c == nil || c.LogFile == nil {
		return io.Discard
	}
	return c.LogFile
}

// EffectiveQueueSize returns the request buffer size to use.
func (c *Config) EffectiveQueueSize() int {
	if c.QueueSize > 0 {
		return c.QueueSize
	}
	return c.Workers * 2
}
