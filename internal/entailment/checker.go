package entailment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ontocheck/internal/domain"
)

// DefaultMaxDepth bounds nested checks when an Oracle calls back into the
// checker
const DefaultMaxDepth = 32

// Config holds checker settings
type Config struct {
	// MaxDepth is the longest chain of nested checks allowed on one context.
	// Zero disables the depth limit; repeat detection still applies.
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns production defaults
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// Checker decides whether candidate axioms follow from a knowledge base.
// It holds no mutable state and is safe for concurrent use.
type Checker struct {
	config Config
	logger *zap.Logger
}

// NewChecker creates a checker. A nil logger disables logging.
func NewChecker(cfg Config, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{config: cfg, logger: logger}
}

// Check reports whether ax is entailed by kb as seen through oracle.
//
// A verdict is only returned when every query succeeded. Failures come back
// as ErrUnsupportedAxiomKind, ErrCycleDetected or an *OracleError.
//
// ctx carries the chain of axioms currently under evaluation. An Oracle that
// re-enters Check must pass along the context it received.
func (c *Checker) Check(ctx context.Context, ax domain.Axiom, kb KnowledgeBase, oracle Oracle) (bool, error) {
	if ax == nil {
		return false, fmt.Errorf("check: nil axiom")
	}
	if kb == nil || oracle == nil {
		return false, fmt.Errorf("check %s: knowledge base and oracle are required", ax.Kind())
	}

	entry, err := classify(ax)
	if err != nil {
		return false, err
	}
	if err := domain.Validate(ax); err != nil {
		return false, fmt.Errorf("check: %w", err)
	}

	key := ax.Key()
	nested, err := enter(ctx, key, c.config.MaxDepth)
	if err != nil {
		c.logger.Warn("Entailment check aborted",
			zap.String("axiom", key),
			zap.Strings("in_progress", InProgress(ctx)),
			zap.Error(err))
		return false, err
	}

	start := time.Now()
	entailed, err := entry.eval(nested, ax, evaluation{kb: kb, oracle: oracle})
	if err != nil {
		var oerr *OracleError
		if errors.As(err, &oerr) {
			c.logger.Debug("Oracle query failed",
				zap.String("axiom", key),
				zap.String("op", oerr.Op),
				zap.Error(oerr.Err))
		}
		return false, err
	}

	c.logger.Debug("Axiom checked",
		zap.String("kind", ax.Kind().String()),
		zap.String("rule", entry.name),
		zap.String("axiom", key),
		zap.Bool("entailed", entailed),
		zap.Duration("duration", time.Since(start)))
	return entailed, nil
}
