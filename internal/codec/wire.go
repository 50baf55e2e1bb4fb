package codec

import (
	"fmt"

	"ontocheck/internal/domain"
)

// wireDocument is the structure shared by every format
type wireDocument struct {
	IRI     string  `yaml:"iri,omitempty" json:"iri,omitempty"`
	Version string  `yaml:"version,omitempty" json:"version,omitempty"`
	Axioms  []Entry `yaml:"axioms" json:"axioms"`
}

// Entry is the wire form of a single axiom. Only the fields of its kind are
// set.
type Entry struct {
	Kind string `yaml:"kind" json:"kind"`

	Entity     string `yaml:"entity,omitempty" json:"entity,omitempty"`
	IRI        string `yaml:"iri,omitempty" json:"iri,omitempty"`
	Property   string `yaml:"property,omitempty" json:"property,omitempty"`
	Subject    string `yaml:"subject,omitempty" json:"subject,omitempty"`
	Object     string `yaml:"object,omitempty" json:"object,omitempty"`
	Value      string `yaml:"value,omitempty" json:"value,omitempty"`
	Domain     string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Range      string `yaml:"range,omitempty" json:"range,omitempty"`
	Individual string `yaml:"individual,omitempty" json:"individual,omitempty"`

	Class   *Expression  `yaml:"class,omitempty" json:"class,omitempty"`
	Classes []Expression `yaml:"classes,omitempty" json:"classes,omitempty"`
	Sub     *Expression  `yaml:"sub,omitempty" json:"sub,omitempty"`
	Super   *Expression  `yaml:"super,omitempty" json:"super,omitempty"`
}

// Expression is the wire form of a class expression. Exactly one field is
// set.
type Expression struct {
	Class          string
	IntersectionOf []Expression
	UnionOf        []Expression
}

// expressionNode is the mapping form of a composite expression
type expressionNode struct {
	IntersectionOf []Expression `yaml:"intersection_of,omitempty" json:"intersection_of,omitempty"`
	UnionOf        []Expression `yaml:"union_of,omitempty" json:"union_of,omitempty"`
}

func (e Expression) node() expressionNode {
	return expressionNode{IntersectionOf: e.IntersectionOf, UnionOf: e.UnionOf}
}

func (n expressionNode) expression() (Expression, error) {
	switch {
	case len(n.IntersectionOf) > 0 && len(n.UnionOf) > 0:
		return Expression{}, fmt.Errorf("class expression sets both intersection_of and union_of")
	case len(n.IntersectionOf) > 0:
		return Expression{IntersectionOf: n.IntersectionOf}, nil
	case len(n.UnionOf) > 0:
		return Expression{UnionOf: n.UnionOf}, nil
	}
	return Expression{}, fmt.Errorf("class expression needs intersection_of or union_of")
}

// ============================================================================
// Domain Conversion
// ============================================================================

// encodeDocument converts a document to its wire form
func encodeDocument(doc *domain.Document) (*wireDocument, error) {
	w := &wireDocument{
		IRI:     string(doc.IRI),
		Version: doc.Version,
		Axioms:  make([]Entry, 0, len(doc.Axioms)),
	}
	for i, a := range doc.Axioms {
		e, err := EncodeAxiom(a)
		if err != nil {
			return nil, fmt.Errorf("axiom %d: %w", i, err)
		}
		w.Axioms = append(w.Axioms, e)
	}
	return w, nil
}

func decodeDocument(w *wireDocument) (*domain.Document, error) {
	doc := domain.NewDocument()
	doc.IRI = domain.IRI(w.IRI)
	doc.Version = w.Version
	for i, e := range w.Axioms {
		a, err := DecodeAxiom(e)
		if err != nil {
			return nil, fmt.Errorf("axiom %d (%s): %w", i, e.Kind, err)
		}
		doc.AddAxiom(a)
	}
	return doc, nil
}

// EncodeAxiom converts an axiom to its wire entry
func EncodeAxiom(a domain.Axiom) (Entry, error) {
	if a == nil {
		return Entry{}, fmt.Errorf("nil axiom")
	}
	e := Entry{Kind: a.Kind().String()}

	switch v := a.(type) {
	case domain.Declaration:
		e.Entity = string(v.Entity)
		e.IRI = string(v.IRI)
	case domain.AnnotationAssertion:
		e.Property = string(v.Property)
		e.Subject = string(v.Subject)
		e.Value = v.Value
	case domain.SubAnnotationPropertyOf:
		e.Sub = &Expression{Class: string(v.Sub)}
		e.Super = &Expression{Class: string(v.Super)}
	case domain.AnnotationPropertyDomain:
		e.Property = string(v.Property)
		e.Domain = string(v.Domain)
	case domain.AnnotationPropertyRange:
		e.Property = string(v.Property)
		e.Range = string(v.Range)
	case domain.EquivalentClasses:
		e.Classes = encodeExpressions(v.Classes())
	case domain.DisjointClasses:
		e.Classes = encodeExpressions(v.Classes())
	case domain.ClassAssertion:
		e.Individual = string(v.Individual)
		e.Class = encodeExpressionPtr(v.Class)
	case domain.SubClassOf:
		e.Sub = encodeExpressionPtr(v.Sub)
		e.Super = encodeExpressionPtr(v.Super)
	case domain.ObjectPropertyAssertion:
		e.Property = string(v.Property)
		e.Subject = string(v.Subject)
		e.Object = string(v.Object)
	default:
		return Entry{}, fmt.Errorf("unsupported axiom type %T", a)
	}
	return e, nil
}

// DecodeAxiom converts a wire entry to a validated axiom
func DecodeAxiom(e Entry) (domain.Axiom, error) {
	kind, err := domain.ParseAxiomKind(e.Kind)
	if err != nil {
		return nil, err
	}

	var a domain.Axiom
	switch kind {
	case domain.KindDeclaration:
		a = domain.Declaration{Entity: domain.EntityType(e.Entity), IRI: domain.IRI(e.IRI)}
	case domain.KindAnnotationAssertion:
		a = domain.AnnotationAssertion{
			Property: domain.IRI(e.Property),
			Subject:  domain.IRI(e.Subject),
			Value:    e.Value,
		}
	case domain.KindSubAnnotationPropertyOf:
		sub, err := namedIRI("sub", e.Sub)
		if err != nil {
			return nil, err
		}
		super, err := namedIRI("super", e.Super)
		if err != nil {
			return nil, err
		}
		a = domain.SubAnnotationPropertyOf{Sub: sub, Super: super}
	case domain.KindAnnotationPropertyDomain:
		a = domain.AnnotationPropertyDomain{Property: domain.IRI(e.Property), Domain: domain.IRI(e.Domain)}
	case domain.KindAnnotationPropertyRange:
		a = domain.AnnotationPropertyRange{Property: domain.IRI(e.Property), Range: domain.IRI(e.Range)}
	case domain.KindEquivalentClasses:
		classes, err := decodeExpressions(e.Classes)
		if err != nil {
			return nil, err
		}
		if a, err = domain.NewEquivalentClasses(classes...); err != nil {
			return nil, err
		}
	case domain.KindDisjointClasses:
		classes, err := decodeExpressions(e.Classes)
		if err != nil {
			return nil, err
		}
		if a, err = domain.NewDisjointClasses(classes...); err != nil {
			return nil, err
		}
	case domain.KindClassAssertion:
		class, err := decodeExpressionPtr("class", e.Class)
		if err != nil {
			return nil, err
		}
		a = domain.ClassAssertion{Individual: domain.Individual(e.Individual), Class: class}
	case domain.KindSubClassOf:
		sub, err := decodeExpressionPtr("sub", e.Sub)
		if err != nil {
			return nil, err
		}
		super, err := decodeExpressionPtr("super", e.Super)
		if err != nil {
			return nil, err
		}
		a = domain.SubClassOf{Sub: sub, Super: super}
	case domain.KindObjectPropertyAssertion:
		a = domain.ObjectPropertyAssertion{
			Property: domain.IRI(e.Property),
			Subject:  domain.Individual(e.Subject),
			Object:   domain.Individual(e.Object),
		}
	default:
		return nil, fmt.Errorf("unknown axiom kind %q", e.Kind)
	}

	if err := domain.Validate(a); err != nil {
		return nil, err
	}
	return a, nil
}

func encodeExpression(ce domain.ClassExpression) Expression {
	switch v := ce.(type) {
	case domain.Class:
		return Expression{Class: string(v.IRI)}
	case domain.ObjectIntersectionOf:
		return Expression{IntersectionOf: encodeExpressions(v.Operands())}
	case domain.ObjectUnionOf:
		return Expression{UnionOf: encodeExpressions(v.Operands())}
	}
	return Expression{}
}

func encodeExpressionPtr(ce domain.ClassExpression) *Expression {
	if ce == nil {
		return nil
	}
	e := encodeExpression(ce)
	return &e
}

func encodeExpressions(ces []domain.ClassExpression) []Expression {
	out := make([]Expression, len(ces))
	for i, ce := range ces {
		out[i] = encodeExpression(ce)
	}
	return out
}

func decodeExpression(e Expression) (domain.ClassExpression, error) {
	switch {
	case e.Class != "":
		return domain.NewClass(domain.IRI(e.Class)), nil
	case len(e.IntersectionOf) > 0:
		ops, err := decodeExpressions(e.IntersectionOf)
		if err != nil {
			return nil, err
		}
		return domain.NewIntersectionOf(ops...)
	case len(e.UnionOf) > 0:
		ops, err := decodeExpressions(e.UnionOf)
		if err != nil {
			return nil, err
		}
		return domain.NewUnionOf(ops...)
	}
	return nil, fmt.Errorf("empty class expression")
}

func decodeExpressionPtr(field string, e *Expression) (domain.ClassExpression, error) {
	if e == nil {
		return nil, fmt.Errorf("%s is required", field)
	}
	ce, err := decodeExpression(*e)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return ce, nil
}

func decodeExpressions(es []Expression) ([]domain.ClassExpression, error) {
	out := make([]domain.ClassExpression, len(es))
	for i, e := range es {
		ce, err := decodeExpression(e)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		out[i] = ce
	}
	return out, nil
}

func namedIRI(field string, e *Expression) (domain.IRI, error) {
	if e == nil || e.Class == "" {
		return "", fmt.Errorf("%s must name a property", field)
	}
	return domain.IRI(e.Class), nil
}
