package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontocheck/internal/domain"
	"ontocheck/internal/entailment"
	"ontocheck/internal/reasoner"
	"ontocheck/internal/repository/sqlite"
)

// ============================================================================
// Test Helpers
// ============================================================================

func class(iri string) domain.Class {
	return domain.NewClass(domain.IRI(iri))
}

func peopleDocument(t *testing.T) *domain.Document {
	t.Helper()
	eq, err := domain.NewEquivalentClasses(class("Person"), class("Human"))
	require.NoError(t, err)

	doc := domain.NewDocument()
	doc.IRI = "http://example.org/people"
	doc.AddAxiom(domain.SubClassOf{Sub: class("Student"), Super: class("Person")})
	doc.AddAxiom(eq)
	doc.AddAxiom(domain.ClassAssertion{Individual: "alice", Class: class("Student")})
	doc.AddAxiom(domain.ClassAssertion{Individual: "rex", Class: class("Dog")})
	return doc
}

func newTestService(t *testing.T, bus *EventBus) *EntailmentService {
	t.Helper()
	return NewEntailmentService(entailment.NewChecker(entailment.DefaultConfig(), nil), bus, nil)
}

// countingOracle counts Instances calls and can block them
type countingOracle struct {
	entailment.Oracle
	calls   atomic.Int32
	release chan struct{}
}

func (o *countingOracle) Instances(ctx context.Context, ce domain.ClassExpression, strict bool) (domain.IndividualSet, error) {
	o.calls.Add(1)
	if o.release != nil {
		<-o.release
	}
	return o.Oracle.Instances(ctx, ce, strict)
}

type failingOracle struct {
	entailment.Oracle
}

func (failingOracle) Instances(context.Context, domain.ClassExpression, bool) (domain.IndividualSet, error) {
	return nil, errors.New("reasoner offline")
}

// ============================================================================
// EntailmentService Tests
// ============================================================================

func TestCheckWithoutSnapshot(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Check(context.Background(), domain.ClassAssertion{Individual: "a", Class: class("A")})
	assert.ErrorContains(t, err, "no snapshot loaded")
}

func TestReloadRejectsIncompleteSnapshot(t *testing.T) {
	svc := newTestService(t, nil)
	assert.Error(t, svc.Reload(Snapshot{}))
}

func TestCheckAgainstDocumentSnapshot(t *testing.T) {
	svc := newTestService(t, nil)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, svc.Reload(snap))

	ctx := context.Background()
	entailed, err := svc.Check(ctx, domain.ClassAssertion{Individual: "alice", Class: class("Human")})
	require.NoError(t, err)
	assert.True(t, entailed)

	entailed, err = svc.Check(ctx, domain.ClassAssertion{Individual: "rex", Class: class("Person")})
	require.NoError(t, err)
	assert.False(t, entailed)
}

func TestCheckMemoizesUntilReload(t *testing.T) {
	svc := newTestService(t, nil)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	oracle := &countingOracle{Oracle: snap.Oracle}
	snap.Oracle = oracle
	require.NoError(t, svc.Reload(snap))

	ctx := context.Background()
	candidate, err := domain.NewEquivalentClasses(class("Person"), class("Human"))
	require.NoError(t, err)

	first := svc.CheckAll(ctx, []domain.Axiom{candidate})
	require.NoError(t, first[0].Err)
	assert.True(t, first[0].Entailed)
	assert.False(t, first[0].Cached)
	calls := oracle.calls.Load()

	second := svc.CheckAll(ctx, []domain.Axiom{candidate})
	require.NoError(t, second[0].Err)
	assert.True(t, second[0].Cached)
	assert.Equal(t, calls, oracle.calls.Load())
	assert.Equal(t, 1, svc.MemoSize())

	require.NoError(t, svc.Reload(snap))
	assert.Zero(t, svc.MemoSize())

	third := svc.CheckAll(ctx, []domain.Axiom{candidate})
	assert.False(t, third[0].Cached)
	assert.Greater(t, oracle.calls.Load(), calls)
}

func TestConcurrentChecksShareEvaluation(t *testing.T) {
	svc := newTestService(t, nil)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	oracle := &countingOracle{Oracle: snap.Oracle, release: make(chan struct{})}
	snap.Oracle = oracle
	require.NoError(t, svc.Reload(snap))

	candidate, err := domain.NewDisjointClasses(class("Dog"), class("Student"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entailed, err := svc.Check(context.Background(), candidate)
			assert.NoError(t, err)
			results[i] = entailed
		}()
	}

	// let the callers pile up behind the first evaluation
	time.Sleep(50 * time.Millisecond)
	close(oracle.release)
	wg.Wait()

	for _, r := range results {
		assert.True(t, r)
	}
	// one evaluation issues one strict Instances query per member
	assert.LessOrEqual(t, oracle.calls.Load(), int32(2*len(results)))
	assert.Equal(t, 1, svc.MemoSize())
}

func TestCancelledCallerDoesNotFailSharedCheck(t *testing.T) {
	svc := newTestService(t, nil)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	oracle := &countingOracle{Oracle: snap.Oracle, release: make(chan struct{})}
	snap.Oracle = oracle
	require.NoError(t, svc.Reload(snap))

	candidate, err := domain.NewDisjointClasses(class("Dog"), class("Student"))
	require.NoError(t, err)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Check(firstCtx, candidate)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return oracle.calls.Load() > 0 }, time.Second, 5*time.Millisecond)

	secondCtx, cancelSecond := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelSecond()
	type outcome struct {
		entailed bool
		err      error
	}
	second := make(chan outcome, 1)
	go func() {
		entailed, err := svc.Check(secondCtx, candidate)
		second <- outcome{entailed, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(oracle.release)
	got := <-second
	require.NoError(t, got.err)
	assert.True(t, got.entailed)
	assert.Equal(t, 1, svc.MemoSize())
}

func TestErrorsAreNotMemoized(t *testing.T) {
	svc := newTestService(t, nil)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	snap.Oracle = failingOracle{Oracle: snap.Oracle}
	require.NoError(t, svc.Reload(snap))

	candidate, err := domain.NewEquivalentClasses(class("Person"), class("Human"))
	require.NoError(t, err)

	_, err = svc.Check(context.Background(), candidate)
	var oerr *entailment.OracleError
	require.ErrorAs(t, err, &oerr)
	assert.Zero(t, svc.MemoSize())
}

func TestCheckAllPreservesOrderAndReportsFailures(t *testing.T) {
	svc := newTestService(t, nil)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, svc.Reload(snap))

	candidates := []domain.Axiom{
		domain.ClassAssertion{Individual: "alice", Class: class("Person")},
		domain.SubClassOf{Sub: class("Student"), Super: class("Person")},
		domain.ClassAssertion{Individual: "rex", Class: class("Student")},
		domain.Declaration{Entity: domain.EntityClass, IRI: "Robot"},
	}
	verdicts := svc.CheckAll(context.Background(), candidates)
	require.Len(t, verdicts, len(candidates))

	for i, v := range verdicts {
		assert.Equal(t, candidates[i].Key(), v.Key)
	}
	assert.True(t, verdicts[0].Entailed)
	assert.ErrorIs(t, verdicts[1].Err, entailment.ErrUnsupportedAxiomKind)
	assert.False(t, verdicts[2].Entailed)
	assert.NoError(t, verdicts[2].Err)
	assert.True(t, verdicts[3].Entailed)
}

func TestEventsPublished(t *testing.T) {
	bus := NewEventBus()
	events := make(chan Event, 10)
	bus.Subscribe(events)

	svc := newTestService(t, bus)
	snap, err := DocumentSnapshot(peopleDocument(t), "people.yaml", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, svc.Reload(snap))

	_, err = svc.Check(context.Background(), domain.ClassAssertion{Individual: "alice", Class: class("Person")})
	require.NoError(t, err)

	reloaded := <-events
	assert.Equal(t, EventSnapshotReloaded, reloaded.Type)
	checked := <-events
	assert.Equal(t, EventAxiomChecked, checked.Type)
	payload, ok := checked.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, payload["entailed"])
}

func TestEventBusDropsForSlowSubscriber(t *testing.T) {
	bus := NewEventBus()
	full := make(chan Event)
	bus.Subscribe(full)

	done := make(chan struct{})
	go func() {
		bus.Publish(Event{Type: EventAxiomChecked})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	var nilBus *EventBus
	nilBus.Publish(Event{Type: EventAxiomChecked})
}

// ============================================================================
// Store Tests
// ============================================================================

func TestImportAndStoreSnapshot(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	bus := NewEventBus()
	events := make(chan Event, 10)
	bus.Subscribe(events)

	result, err := ImportDocument(ctx, store, peopleDocument(t), "people.yaml", false, bus)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 4, result.Added)
	assert.Equal(t, EventAxiomsImported, (<-events).Type)

	extra := domain.NewDocument()
	extra.AddAxiom(domain.ClassAssertion{Individual: "alice", Class: class("Student")})
	extra.AddAxiom(domain.ClassAssertion{Individual: "bob", Class: class("Student")})
	result, err = ImportDocument(ctx, store, extra, "extra.yaml", true, bus)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 5, result.Total)

	snap, err := StoreSnapshot(ctx, store, "sqlite", reasoner.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Axioms)

	svc := newTestService(t, nil)
	require.NoError(t, svc.Reload(snap))

	entailed, err := svc.Check(ctx, domain.ClassAssertion{Individual: "bob", Class: class("Human")})
	require.NoError(t, err)
	assert.True(t, entailed)
}
