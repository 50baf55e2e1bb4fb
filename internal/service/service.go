package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"ontocheck/internal/domain"
	"ontocheck/internal/entailment"
)

// DefaultConcurrency bounds parallel checks in CheckAll
const DefaultConcurrency = 4

// Verdict is the outcome of checking one candidate axiom
type Verdict struct {
	Axiom    domain.Axiom `json:"-"`
	Key      string       `json:"axiom"`
	Entailed bool         `json:"entailed"`
	Cached   bool         `json:"cached"`
	Err      error        `json:"-"`
}

// EntailmentService checks candidate axioms against the installed snapshot.
// Verdicts are memoized by axiom key until the next Reload.
type EntailmentService struct {
	checker  *entailment.Checker
	eventBus *EventBus
	logger   *zap.Logger

	mu         sync.RWMutex
	snapshot   *Snapshot
	generation uint64
	memo       map[string]bool

	group singleflight.Group
}

// NewEntailmentService creates a service with no snapshot installed
func NewEntailmentService(checker *entailment.Checker, eventBus *EventBus, logger *zap.Logger) *EntailmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntailmentService{
		checker:  checker,
		eventBus: eventBus,
		logger:   logger,
		memo:     make(map[string]bool),
	}
}

// Reload installs a new snapshot and discards memoized verdicts
func (s *EntailmentService) Reload(snap Snapshot) error {
	if snap.KB == nil || snap.Oracle == nil {
		return fmt.Errorf("reload: snapshot needs a knowledge base and an oracle")
	}

	s.mu.Lock()
	s.snapshot = &snap
	s.generation++
	s.memo = make(map[string]bool)
	generation := s.generation
	s.mu.Unlock()

	s.logger.Info("Snapshot reloaded",
		zap.String("source", snap.Source),
		zap.Int("axioms", snap.Axioms),
		zap.Uint64("generation", generation))

	s.eventBus.Publish(Event{
		Type: EventSnapshotReloaded,
		Payload: map[string]interface{}{
			"source":     snap.Source,
			"axioms":     snap.Axioms,
			"generation": generation,
		},
	})
	return nil
}

// Check reports whether ax is entailed by the installed snapshot. Concurrent
// checks of the same axiom share one evaluation.
func (s *EntailmentService) Check(ctx context.Context, ax domain.Axiom) (bool, error) {
	v := s.check(ctx, ax)
	return v.Entailed, v.Err
}

// CheckAll checks every candidate, at most DefaultConcurrency at a time.
// Verdicts are returned in input order; a failed check is reported in its
// Verdict and does not stop the others.
func (s *EntailmentService) CheckAll(ctx context.Context, axioms []domain.Axiom) []Verdict {
	verdicts := make([]Verdict, len(axioms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)
	for i, ax := range axioms {
		g.Go(func() error {
			verdicts[i] = s.check(gctx, ax)
			return nil
		})
	}
	_ = g.Wait()

	return verdicts
}

func (s *EntailmentService) check(ctx context.Context, ax domain.Axiom) Verdict {
	if ax == nil {
		return Verdict{Err: fmt.Errorf("check: nil axiom")}
	}
	key := ax.Key()
	v := Verdict{Axiom: ax, Key: key}

	s.mu.RLock()
	snap, generation := s.snapshot, s.generation
	entailed, cached := s.memo[key]
	s.mu.RUnlock()

	if snap == nil {
		v.Err = fmt.Errorf("check %s: no snapshot loaded", key)
		return v
	}
	if cached {
		v.Entailed, v.Cached = entailed, true
		return v
	}

	// Nested checks issued by an oracle bypass the group so a repeated key
	// surfaces as a cycle instead of waiting on itself.
	if len(entailment.InProgress(ctx)) > 0 {
		v.Entailed, v.Err = s.checker.Check(ctx, ax, snap.KB, snap.Oracle)
		return v
	}

	// The shared evaluation outlives any single caller; each caller still
	// gives up when its own context is done.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(fmt.Sprintf("%d/%s", generation, key), func() (interface{}, error) {
		entailed, err := s.checker.Check(shared, ax, snap.KB, snap.Oracle)
		if err != nil {
			return false, err
		}
		s.mu.Lock()
		if s.generation == generation {
			s.memo[key] = entailed
		}
		s.mu.Unlock()
		return entailed, nil
	})

	var result singleflight.Result
	select {
	case result = <-ch:
	case <-ctx.Done():
		v.Err = fmt.Errorf("check %s: %w", key, ctx.Err())
		return v
	}
	if result.Err != nil {
		s.logger.Debug("Check failed", zap.String("axiom", key), zap.Error(result.Err))
		v.Err = result.Err
		return v
	}
	v.Entailed = result.Val.(bool)

	s.eventBus.Publish(Event{
		Type: EventAxiomChecked,
		Payload: map[string]interface{}{
			"axiom":    key,
			"kind":     ax.Kind().String(),
			"entailed": v.Entailed,
		},
	})
	return v
}

// MemoSize returns the number of memoized verdicts
func (s *EntailmentService) MemoSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memo)
}
