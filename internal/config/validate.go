package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	chesserrors "github.com/lgbarn/chess-core-go/internal/errors"
)

// Validate reports every invalid setting at once. The returned error
// matches ErrInvalidConfig and unwraps to a *multierror.Error.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Rules == nil {
		result = multierror.Append(result, fmt.Errorf("rules: missing"))
	} else {
		if c.Rules.RepetitionLimit < 2 {
			result = multierror.Append(result, fmt.Errorf("rules: repetition limit %d must be at least 2", c.Rules.RepetitionLimit))
		}
		if c.Rules.FiftyMoveLimit < 1 {
			result = multierror.Append(result, fmt.Errorf("rules: fifty-move limit %d must be positive", c.Rules.FiftyMoveLimit))
		}
	}

	if c.Workers < 1 {
		result = multierror.Append(result, fmt.Errorf("workers: %d must be at least 1", c.Workers))
	}
	if c.QueueSize < 0 {
		result = multierror.Append(result, fmt.Errorf("queue size: %d must not be negative", c.QueueSize))
	}

	if e := c.Engine; e != nil && e.Enabled {
		if e.Path == "" {
			result = multierror.Append(result, fmt.Errorf("engine: path required when enabled"))
		}
		if e.MoveTime <= 0 && e.Depth <= 0 {
			result = multierror.Append(result, fmt.Errorf("engine: need a positive move time or depth"))
		}
		if e.Depth < 0 {
			result = multierror.Append(result, fmt.Errorf("engine: depth %d must not be negative", e.Depth))
		}
		if e.Timeout <= 0 {
			result = multierror.Append(result, fmt.Errorf("engine: timeout must be positive"))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", chesserrors.ErrInvalidConfig, err)
	}
	return nil
}
