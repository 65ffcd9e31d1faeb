package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithLiteralHalfmoveClock keeps the half-move clock from resetting.
func (b *ConfigBuilder) WithLiteralHalfmoveClock(enabled bool) *ConfigBuilder {
	b.cfg.Rules.LiteralHalfmoveClock = enabled
	return b
}

// WithRepetitionLimit sets the occurrence count that draws by repetition.
func (b *ConfigBuilder) WithRepetitionLimit(n int) *ConfigBuilder {
	b.cfg.Rules.RepetitionLimit = n
	return b
}

// WithFiftyMoveLimit sets the half-move clock draw threshold.
func (b *ConfigBuilder) WithFiftyMoveLimit(halfMoves int) *ConfigBuilder {
	b.cfg.Rules.FiftyMoveLimit = halfMoves
	return b
}

// WithEngine enables the analysis engine at path.
func (b *ConfigBuilder) WithEngine(path string, args ...string) *ConfigBuilder {
	b.cfg.Engine.Enabled = path != ""
	b.cfg.Engine.Path = path
	b.cfg.Engine.Args = args
	return b
}

// WithMoveTime sets the engine's per-search time budget.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTime = d
	return b
}

// WithDepth sets a fixed engine search depth.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Engine.Depth = depth
	return b
}

// WithEngineTimeout bounds one analysis request.
func (b *ConfigBuilder) WithEngineTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.Timeout = d
	return b
}

// WithWorkers sets the number of analysis workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithQueueSize sets the analysis request buffer.
func (b *ConfigBuilder) WithQueueSize(n int) *ConfigBuilder {
	b.cfg.QueueSize = n
	return b
}

// WithLogFile sets the log destination.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
