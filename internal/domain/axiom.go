package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// AxiomKind identifies the variant of an Axiom
type AxiomKind int

const (
	KindUnknown AxiomKind = iota
	KindDeclaration
	KindAnnotationAssertion
	KindSubAnnotationPropertyOf
	KindAnnotationPropertyDomain
	KindAnnotationPropertyRange
	KindEquivalentClasses
	KindDisjointClasses
	KindClassAssertion
	KindSubClassOf
	KindObjectPropertyAssertion

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:                  "Unknown",
	KindDeclaration:              "Declaration",
	KindAnnotationAssertion:      "AnnotationAssertion",
	KindSubAnnotationPropertyOf:  "SubAnnotationPropertyOf",
	KindAnnotationPropertyDomain: "AnnotationPropertyDomain",
	KindAnnotationPropertyRange:  "AnnotationPropertyRange",
	KindEquivalentClasses:        "EquivalentClasses",
	KindDisjointClasses:          "DisjointClasses",
	KindClassAssertion:           "ClassAssertion",
	KindSubClassOf:               "SubClassOf",
	KindObjectPropertyAssertion:  "ObjectPropertyAssertion",
}

// Kinds returns every valid axiom kind
func Kinds() []AxiomKind {
	out := make([]AxiomKind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the enumerated kinds
func (k AxiomKind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

func (k AxiomKind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("AxiomKind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseAxiomKind resolves a kind by its name
func ParseAxiomKind(name string) (AxiomKind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown axiom kind %q", name)
}

// Axiom is an immutable logical statement. The set of implementations is
// closed to this package.
type Axiom interface {
	Kind() AxiomKind
	// Key returns the canonical functional-syntax form of the axiom.
	// Structurally equal axioms have equal keys.
	Key() string
	String() string

	axiom()
}

// Fingerprint returns a short deterministic hash of the axiom key
func Fingerprint(a Axiom) string {
	hash := sha256.Sum256([]byte(a.Key()))
	return fmt.Sprintf("%x", hash[:8])
}

// EntityType is the type named by a Declaration
type EntityType string

const (
	EntityClass              EntityType = "Class"
	EntityObjectProperty     EntityType = "ObjectProperty"
	EntityDataProperty       EntityType = "DataProperty"
	EntityAnnotationProperty EntityType = "AnnotationProperty"
	EntityNamedIndividual    EntityType = "NamedIndividual"
	EntityDatatype           EntityType = "Datatype"
)

// Declaration declares an entity of a given type
type Declaration struct {
	Entity EntityType
	IRI    IRI
}

func (a Declaration) Kind() AxiomKind { return KindDeclaration }
func (a Declaration) Key() string {
	return fmt.Sprintf("Declaration(%s(%s))", a.Entity, a.IRI)
}
func (a Declaration) String() string { return a.Key() }
func (Declaration) axiom()           {}

// AnnotationAssertion attaches an annotation value to a subject
type AnnotationAssertion struct {
	Property IRI
	Subject  IRI
	Value    string
}

func (a AnnotationAssertion) Kind() AxiomKind { return KindAnnotationAssertion }
func (a AnnotationAssertion) Key() string {
	return fmt.Sprintf("AnnotationAssertion(%s %s %q)", a.Property, a.Subject, a.Value)
}
func (a AnnotationAssertion) String() string { return a.Key() }
func (AnnotationAssertion) axiom()           {}

// SubAnnotationPropertyOf states that Sub is a subproperty of Super
type SubAnnotationPropertyOf struct {
	Sub   IRI
	Super IRI
}

func (a SubAnnotationPropertyOf) Kind() AxiomKind { return KindSubAnnotationPropertyOf }
func (a SubAnnotationPropertyOf) Key() string {
	return fmt.Sprintf("SubAnnotationPropertyOf(%s %s)", a.Sub, a.Super)
}
func (a SubAnnotationPropertyOf) String() string { return a.Key() }
func (SubAnnotationPropertyOf) axiom()           {}

// AnnotationPropertyDomain states the domain of an annotation property
type AnnotationPropertyDomain struct {
	Property IRI
	Domain   IRI
}

func (a AnnotationPropertyDomain) Kind() AxiomKind { return KindAnnotationPropertyDomain }
func (a AnnotationPropertyDomain) Key() string {
	return fmt.Sprintf("AnnotationPropertyDomain(%s %s)", a.Property, a.Domain)
}
func (a AnnotationPropertyDomain) String() string { return a.Key() }
func (AnnotationPropertyDomain) axiom()           {}

// AnnotationPropertyRange states the range of an annotation property
type AnnotationPropertyRange struct {
	Property IRI
	Range    IRI
}

func (a AnnotationPropertyRange) Kind() AxiomKind { return KindAnnotationPropertyRange }
func (a AnnotationPropertyRange) Key() string {
	return fmt.Sprintf("AnnotationPropertyRange(%s %s)", a.Property, a.Range)
}
func (a AnnotationPropertyRange) String() string { return a.Key() }
func (AnnotationPropertyRange) axiom()           {}

// EquivalentClasses states that every member denotes the same set of
// individuals
type EquivalentClasses struct {
	classes []ClassExpression
}

// NewEquivalentClasses requires at least two distinct class expressions
func NewEquivalentClasses(classes ...ClassExpression) (EquivalentClasses, error) {
	cs, err := distinctExpressions(classes)
	if err != nil {
		return EquivalentClasses{}, fmt.Errorf("EquivalentClasses: %w", err)
	}
	return EquivalentClasses{classes: cs}, nil
}

// Classes returns a copy of the member expressions in canonical order
func (a EquivalentClasses) Classes() []ClassExpression {
	return append([]ClassExpression(nil), a.classes...)
}

// Mentions reports whether ce is one of the members
func (a EquivalentClasses) Mentions(ce ClassExpression) bool {
	for _, c := range a.classes {
		if c.Key() == ce.Key() {
			return true
		}
	}
	return false
}

func (a EquivalentClasses) Kind() AxiomKind { return KindEquivalentClasses }
func (a EquivalentClasses) Key() string     { return naryKey("EquivalentClasses", a.classes) }
func (a EquivalentClasses) String() string  { return a.Key() }
func (EquivalentClasses) axiom()            {}

// DisjointClasses states that no two members share an individual
type DisjointClasses struct {
	classes []ClassExpression
}

// NewDisjointClasses requires at least two distinct class expressions
func NewDisjointClasses(classes ...ClassExpression) (DisjointClasses, error) {
	cs, err := distinctExpressions(classes)
	if err != nil {
		return DisjointClasses{}, fmt.Errorf("DisjointClasses: %w", err)
	}
	return DisjointClasses{classes: cs}, nil
}

// Classes returns a copy of the member expressions in canonical order
func (a DisjointClasses) Classes() []ClassExpression {
	return append([]ClassExpression(nil), a.classes...)
}

func (a DisjointClasses) Kind() AxiomKind { return KindDisjointClasses }
func (a DisjointClasses) Key() string     { return naryKey("DisjointClasses", a.classes) }
func (a DisjointClasses) String() string  { return a.Key() }
func (DisjointClasses) axiom()            {}

// ClassAssertion states that Individual is an instance of Class
type ClassAssertion struct {
	Individual Individual
	Class      ClassExpression
}

func (a ClassAssertion) Kind() AxiomKind { return KindClassAssertion }
func (a ClassAssertion) Key() string {
	return fmt.Sprintf("ClassAssertion(%s %s)", a.Class.Key(), a.Individual)
}
func (a ClassAssertion) String() string { return a.Key() }
func (ClassAssertion) axiom()           {}

// SubClassOf states that every instance of Sub is an instance of Super
type SubClassOf struct {
	Sub   ClassExpression
	Super ClassExpression
}

func (a SubClassOf) Kind() AxiomKind { return KindSubClassOf }
func (a SubClassOf) Key() string {
	return fmt.Sprintf("SubClassOf(%s %s)", a.Sub.Key(), a.Super.Key())
}
func (a SubClassOf) String() string { return a.Key() }
func (SubClassOf) axiom()           {}

// ObjectPropertyAssertion relates two individuals through a property
type ObjectPropertyAssertion struct {
	Property IRI
	Subject  Individual
	Object   Individual
}

func (a ObjectPropertyAssertion) Kind() AxiomKind { return KindObjectPropertyAssertion }
func (a ObjectPropertyAssertion) Key() string {
	return fmt.Sprintf("ObjectPropertyAssertion(%s %s %s)", a.Property, a.Subject, a.Object)
}
func (a ObjectPropertyAssertion) String() string { return a.Key() }
func (ObjectPropertyAssertion) axiom()           {}

func naryKey(name string, classes []ClassExpression) string {
	keys := make([]string, len(classes))
	for i, c := range classes {
		keys[i] = c.Key()
	}
	return name + "(" + strings.Join(keys, " ") + ")"
}
