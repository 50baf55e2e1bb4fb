package domain

import (
	"fmt"
	"sort"
	"strings"
)

// IRI identifies a class, property, individual or datatype
type IRI string

// Individual is a named individual. Identity is by IRI.
type Individual IRI

// ExpressionType identifies the variant of a ClassExpression
type ExpressionType string

const (
	ExpressionClass          ExpressionType = "Class"
	ExpressionIntersectionOf ExpressionType = "ObjectIntersectionOf"
	ExpressionUnionOf        ExpressionType = "ObjectUnionOf"
)

// ClassExpression is a named class or a boolean combination of class
// expressions. The set of variants is closed: Class, ObjectIntersectionOf
// and ObjectUnionOf.
type ClassExpression interface {
	// Type returns the expression variant
	Type() ExpressionType
	// Key returns a canonical form; two expressions denote the same
	// structure iff their keys are equal
	Key() string
	String() string

	classExpression()
}

// Class is a named (atomic) class
type Class struct {
	IRI IRI
}

// NewClass creates a named class expression
func NewClass(iri IRI) Class {
	return Class{IRI: iri}
}

func (c Class) Type() ExpressionType { return ExpressionClass }
func (c Class) Key() string          { return string(c.IRI) }
func (c Class) String() string       { return string(c.IRI) }
func (Class) classExpression()       {}

// ObjectIntersectionOf denotes the individuals belonging to every operand
type ObjectIntersectionOf struct {
	operands []ClassExpression
}

// NewIntersectionOf builds an intersection. Duplicate operands are collapsed;
// at least two distinct operands are required.
func NewIntersectionOf(operands ...ClassExpression) (ObjectIntersectionOf, error) {
	ops, err := distinctOperands(ExpressionIntersectionOf, operands)
	if err != nil {
		return ObjectIntersectionOf{}, err
	}
	return ObjectIntersectionOf{operands: ops}, nil
}

// Operands returns a copy of the operand list in canonical order
func (e ObjectIntersectionOf) Operands() []ClassExpression {
	return append([]ClassExpression(nil), e.operands...)
}

func (e ObjectIntersectionOf) Type() ExpressionType { return ExpressionIntersectionOf }
func (e ObjectIntersectionOf) Key() string          { return compositeKey(ExpressionIntersectionOf, e.operands) }
func (e ObjectIntersectionOf) String() string       { return e.Key() }
func (ObjectIntersectionOf) classExpression()       {}

// ObjectUnionOf denotes the individuals belonging to at least one operand
type ObjectUnionOf struct {
	operands []ClassExpression
}

// NewUnionOf builds a union. Duplicate operands are collapsed; at least two
// distinct operands are required.
func NewUnionOf(operands ...ClassExpression) (ObjectUnionOf, error) {
	ops, err := distinctOperands(ExpressionUnionOf, operands)
	if err != nil {
		return ObjectUnionOf{}, err
	}
	return ObjectUnionOf{operands: ops}, nil
}

// Operands returns a copy of the operand list in canonical order
func (e ObjectUnionOf) Operands() []ClassExpression {
	return append([]ClassExpression(nil), e.operands...)
}

func (e ObjectUnionOf) Type() ExpressionType { return ExpressionUnionOf }
func (e ObjectUnionOf) Key() string          { return compositeKey(ExpressionUnionOf, e.operands) }
func (e ObjectUnionOf) String() string       { return e.Key() }
func (ObjectUnionOf) classExpression()       {}

// distinctOperands dedupes by key and sorts so that Key is independent of
// the order operands were written in
func distinctOperands(t ExpressionType, operands []ClassExpression) ([]ClassExpression, error) {
	ops, err := distinctExpressions(operands)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	return ops, nil
}

func distinctExpressions(exprs []ClassExpression) ([]ClassExpression, error) {
	seen := make(map[string]bool, len(exprs))
	out := make([]ClassExpression, 0, len(exprs))
	for _, e := range exprs {
		if e == nil {
			return nil, fmt.Errorf("nil class expression")
		}
		if c, ok := e.(Class); ok && c.IRI == "" {
			return nil, fmt.Errorf("class with empty IRI")
		}
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("requires at least two distinct class expressions, got %d", len(out))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func compositeKey(t ExpressionType, operands []ClassExpression) string {
	keys := make([]string, len(operands))
	for i, op := range operands {
		keys[i] = op.Key()
	}
	return fmt.Sprintf("%s(%s)", t, strings.Join(keys, " "))
}
