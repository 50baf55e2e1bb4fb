package entailment

import (
	"context"
	"fmt"
)

type frameKey struct{}

// frame is one link of the in-progress chain carried by the context.
// Frames are never mutated; each nested check adds a new one.
type frame struct {
	key    string
	depth  int
	parent *frame
}

func currentFrame(ctx context.Context) *frame {
	f, _ := ctx.Value(frameKey{}).(*frame)
	return f
}

// enter returns a context that records key as being evaluated. It fails with
// ErrCycleDetected if key is already on the chain or the chain would grow
// past maxDepth.
func enter(ctx context.Context, key string, maxDepth int) (context.Context, error) {
	parent := currentFrame(ctx)
	for f := parent; f != nil; f = f.parent {
		if f.key == key {
			return nil, fmt.Errorf("%w: %s is already being evaluated", ErrCycleDetected, key)
		}
	}

	depth := 1
	if parent != nil {
		depth = parent.depth + 1
	}
	if maxDepth > 0 && depth > maxDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds limit %d at %s", ErrCycleDetected, depth, maxDepth, key)
	}

	return context.WithValue(ctx, frameKey{}, &frame{key: key, depth: depth, parent: parent}), nil
}

// InProgress returns the keys of the axioms being evaluated on ctx's chain,
// innermost first
func InProgress(ctx context.Context) []string {
	var keys []string
	for f := currentFrame(ctx); f != nil; f = f.parent {
		keys = append(keys, f.key)
	}
	return keys
}
