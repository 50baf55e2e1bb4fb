package reasoner

import (
	"fmt"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/factstore"

	"ontocheck/internal/domain"
)

// factBuilder translates axioms into extensional facts
type factBuilder struct {
	limit   int
	store   factstore.FactStore
	count   int
	skipped int
}

func (b *factBuilder) add(pred string, x, y domain.IRI) error {
	if b.limit > 0 && b.count >= b.limit {
		return fmt.Errorf("fact limit exceeded: %d", b.limit)
	}
	atom := ast.Atom{
		Predicate: ast.PredicateSym{Symbol: pred, Arity: 2},
		Args:      []ast.BaseTerm{ast.String(string(x)), ast.String(string(y))},
	}
	if b.store.Add(atom) {
		b.count++
	}
	return nil
}

func (b *factBuilder) addAxiom(a domain.Axiom) error {
	switch v := a.(type) {
	case domain.SubClassOf:
		return b.addSubsumption(v.Sub, v.Super)
	case domain.EquivalentClasses:
		members := v.Classes()
		for i, x := range members {
			for j, y := range members {
				if i == j {
					continue
				}
				xc, xNamed := x.(domain.Class)
				yc, yNamed := y.(domain.Class)
				if xNamed && yNamed {
					if i < j {
						if err := b.add(predEquivalent, xc.IRI, yc.IRI); err != nil {
							return err
						}
					}
					continue
				}
				if err := b.addSubsumption(x, y); err != nil {
					return err
				}
			}
		}
	case domain.ClassAssertion:
		targets := superSide(v.Class)
		if len(targets) == 0 {
			b.skipped++
			return nil
		}
		for _, c := range targets {
			if err := b.add(predInstanceOf, domain.IRI(v.Individual), c.IRI); err != nil {
				return err
			}
		}
	}
	return nil
}

// addSubsumption records sub ⊑ super as named-class edges, if it reduces to
// any
func (b *factBuilder) addSubsumption(sub, super domain.ClassExpression) error {
	subs, supers := subSide(sub), superSide(super)
	if len(subs) == 0 || len(supers) == 0 {
		b.skipped++
		return nil
	}
	for _, s := range subs {
		for _, t := range supers {
			if s.IRI == t.IRI {
				continue
			}
			if err := b.add(predSubclassOf, s.IRI, t.IRI); err != nil {
				return err
			}
		}
	}
	return nil
}

// subSide returns the named classes X with X ⊑ ce that ce's structure
// guarantees: the class itself, or every operand of a union
func subSide(ce domain.ClassExpression) []domain.Class {
	switch v := ce.(type) {
	case domain.Class:
		return []domain.Class{v}
	case domain.ObjectUnionOf:
		var out []domain.Class
		for _, op := range v.Operands() {
			out = append(out, subSide(op)...)
		}
		return out
	}
	return nil
}

// superSide returns the named classes X with ce ⊑ X that ce's structure
// guarantees: the class itself, or every operand of an intersection
func superSide(ce domain.ClassExpression) []domain.Class {
	switch v := ce.(type) {
	case domain.Class:
		return []domain.Class{v}
	case domain.ObjectIntersectionOf:
		var out []domain.Class
		for _, op := range v.Operands() {
			out = append(out, superSide(op)...)
		}
		return out
	}
	return nil
}
