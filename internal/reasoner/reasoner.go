// Package reasoner provides a reference entailment.Oracle built on the Google
// Mangle Datalog engine.
//
// The reasoner translates SubClassOf, EquivalentClasses and ClassAssertion
// axioms into facts over named classes, evaluates the closure rules in
// program.go once, and materializes the derived relations. Queries are
// answered from the materialized maps, so a Reasoner is immutable after New
// and safe for concurrent use.
//
// Composite expressions are handled structurally: an intersection on the
// super side of a subsumption yields one edge per operand, a union on the sub
// side likewise. Shapes that do not reduce to named-class facts (a union
// asserted as a type, an intersection as a subclass) are skipped and counted
// in Stats.Skipped.
package reasoner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"go.uber.org/zap"

	"ontocheck/internal/domain"
)

// Config holds reasoner configuration
type Config struct {
	// FactLimit caps the number of stated facts. Zero means unlimited.
	FactLimit int `yaml:"fact_limit"`
}

// DefaultConfig returns production defaults
func DefaultConfig() Config {
	return Config{FactLimit: 100000}
}

// Stats describes a materialized reasoner
type Stats struct {
	StatedFacts  int `json:"stated_facts"`
	DerivedFacts int `json:"derived_facts"`
	Classes      int `json:"classes"`
	Individuals  int `json:"individuals"`
	Skipped      int `json:"skipped"`
}

type relation map[domain.IRI]map[domain.IRI]bool

func (r relation) add(a, b domain.IRI) {
	if r[a] == nil {
		r[a] = make(map[domain.IRI]bool)
	}
	r[a][b] = true
}

// Reasoner answers instance, superclass and type queries
type Reasoner struct {
	logger *zap.Logger

	direct   relation // subclass_of
	closure  relation // super_of
	asserted map[domain.IRI]domain.IndividualSet
	inferred map[domain.IRI]domain.IndividualSet
	types    map[domain.Individual]map[domain.IRI]bool

	stats Stats
}

// New evaluates the closure program over axioms. A nil logger disables
// logging.
func New(cfg Config, axioms []domain.Axiom, logger *zap.Logger) (*Reasoner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	unit, err := parse.Unit(strings.NewReader(program))
	if err != nil {
		return nil, fmt.Errorf("failed to parse closure program: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze closure program: %w", err)
	}

	b := &factBuilder{limit: cfg.FactLimit, store: factstore.NewSimpleInMemoryStore()}
	for _, a := range axioms {
		if err := b.addAxiom(a); err != nil {
			return nil, err
		}
	}

	evalStats, err := mengine.EvalProgramWithStats(programInfo, b.store)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate closure program: %w", err)
	}

	r := &Reasoner{
		logger:   logger,
		direct:   make(relation),
		closure:  make(relation),
		asserted: make(map[domain.IRI]domain.IndividualSet),
		inferred: make(map[domain.IRI]domain.IndividualSet),
		types:    make(map[domain.Individual]map[domain.IRI]bool),
	}
	if err := r.materialize(b.store); err != nil {
		return nil, err
	}
	r.stats.StatedFacts = b.count
	r.stats.Skipped = b.skipped

	logger.Debug("Reasoner materialized",
		zap.Int("stated_facts", r.stats.StatedFacts),
		zap.Int("derived_facts", r.stats.DerivedFacts),
		zap.Int("classes", r.stats.Classes),
		zap.Int("individuals", r.stats.Individuals),
		zap.Int("skipped", r.stats.Skipped),
		zap.Any("eval", evalStats))
	return r, nil
}

// Stats returns counts gathered while materializing
func (r *Reasoner) Stats() Stats {
	return r.stats
}

func (r *Reasoner) materialize(store factstore.FactStore) error {
	classes := make(map[domain.IRI]bool)
	derived := 0

	read := func(pred string, fn func(a, b string)) error {
		return store.GetFacts(ast.NewQuery(ast.PredicateSym{Symbol: pred, Arity: 2}), func(atom ast.Atom) error {
			a, err := stringArg(atom, 0)
			if err != nil {
				return err
			}
			b, err := stringArg(atom, 1)
			if err != nil {
				return err
			}
			fn(a, b)
			return nil
		})
	}

	if err := read(predEdge, func(a, b string) {
		classes[domain.IRI(a)] = true
		classes[domain.IRI(b)] = true
	}); err != nil {
		return fmt.Errorf("read %s: %w", predEdge, err)
	}

	if err := read(predSubclassOf, func(a, b string) {
		r.direct.add(domain.IRI(a), domain.IRI(b))
	}); err != nil {
		return fmt.Errorf("read %s: %w", predSubclassOf, err)
	}

	if err := read(predSuperOf, func(a, b string) {
		r.closure.add(domain.IRI(a), domain.IRI(b))
		derived++
	}); err != nil {
		return fmt.Errorf("read %s: %w", predSuperOf, err)
	}

	if err := read(predInstanceOf, func(ind, c string) {
		iri := domain.IRI(c)
		if r.asserted[iri] == nil {
			r.asserted[iri] = domain.NewIndividualSet()
		}
		r.asserted[iri].Add(domain.Individual(ind))
		classes[iri] = true
	}); err != nil {
		return fmt.Errorf("read %s: %w", predInstanceOf, err)
	}

	if err := read(predTypeOf, func(ind, c string) {
		iri, i := domain.IRI(c), domain.Individual(ind)
		if r.inferred[iri] == nil {
			r.inferred[iri] = domain.NewIndividualSet()
		}
		r.inferred[iri].Add(i)
		if r.types[i] == nil {
			r.types[i] = make(map[domain.IRI]bool)
		}
		r.types[i][iri] = true
		derived++
	}); err != nil {
		return fmt.Errorf("read %s: %w", predTypeOf, err)
	}

	r.stats.DerivedFacts = derived
	r.stats.Classes = len(classes)
	r.stats.Individuals = len(r.types)
	return nil
}

func stringArg(atom ast.Atom, i int) (string, error) {
	if i >= len(atom.Args) {
		return "", fmt.Errorf("%s: missing argument %d", atom.Predicate.Symbol, i)
	}
	c, ok := atom.Args[i].(ast.Constant)
	if !ok || c.Type != ast.StringType {
		return "", fmt.Errorf("%s: argument %d is not a string constant", atom.Predicate.Symbol, i)
	}
	return c.Symbol, nil
}

// Instances returns the extension of ce. Strict retrieval only counts stated
// class assertions.
func (r *Reasoner) Instances(ctx context.Context, ce domain.ClassExpression, strict bool) (domain.IndividualSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch v := ce.(type) {
	case domain.Class:
		src := r.inferred
		if strict {
			src = r.asserted
		}
		return src[v.IRI].Union(nil), nil
	case domain.ObjectIntersectionOf:
		var out domain.IndividualSet
		for i, op := range v.Operands() {
			ext, err := r.Instances(ctx, op, strict)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				out = ext
			} else {
				out = out.Intersect(ext)
			}
		}
		return out, nil
	case domain.ObjectUnionOf:
		out := domain.NewIndividualSet()
		for _, op := range v.Operands() {
			ext, err := r.Instances(ctx, op, strict)
			if err != nil {
				return nil, err
			}
			out = out.Union(ext)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("instances: unsupported class expression %T", ce)
	}
}

// Superclasses returns the direct parents (strict) or the full closure of
// ce, excluding ce itself. Direct parents come from stated subsumptions only;
// an equivalent class appears in the closure but not among the parents.
func (r *Reasoner) Superclasses(ctx context.Context, ce domain.ClassExpression, strict bool) (domain.ClassSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch v := ce.(type) {
	case domain.Class:
		src := r.closure
		if strict {
			src = r.direct
		}
		out := domain.NewClassSet()
		for iri := range src[v.IRI] {
			if iri != v.IRI {
				out.Add(domain.NewClass(iri))
			}
		}
		return out, nil
	case domain.ObjectIntersectionOf:
		out := domain.NewClassSet()
		for _, op := range v.Operands() {
			out.Add(op)
			if strict {
				continue
			}
			s, err := r.Superclasses(ctx, op, false)
			if err != nil {
				return nil, err
			}
			out.AddAll(s)
		}
		return out, nil
	case domain.ObjectUnionOf:
		var common domain.ClassSet
		for i, op := range v.Operands() {
			s, err := r.Superclasses(ctx, op, strict)
			if err != nil {
				return nil, err
			}
			s.Add(op)
			if i == 0 {
				common = s
				continue
			}
			for k := range common {
				if _, ok := s[k]; !ok {
					delete(common, k)
				}
			}
		}
		return common, nil
	default:
		return nil, fmt.Errorf("superclasses: unsupported class expression %T", ce)
	}
}

// Types returns every named class ind is inferred to instantiate
func (r *Reasoner) Types(ctx context.Context, ind domain.Individual) (domain.ClassSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := domain.NewClassSet()
	for iri := range r.types[ind] {
		out.Add(domain.NewClass(iri))
	}
	return out, nil
}
