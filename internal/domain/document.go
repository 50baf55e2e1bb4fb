package domain

// Document is an ordered list of axioms for import/export operations
type Document struct {
	IRI     IRI     `json:"iri,omitempty"`
	Version string  `json:"version,omitempty"`
	Axioms  []Axiom `json:"-"`
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Axioms: make([]Axiom, 0),
	}
}

// AddAxiom appends an axiom to the document
func (d *Document) AddAxiom(a Axiom) {
	d.Axioms = append(d.Axioms, a)
}

// CountByKind tallies the document's axioms per kind
func (d *Document) CountByKind() map[AxiomKind]int {
	counts := make(map[AxiomKind]int)
	for _, a := range d.Axioms {
		counts[a.Kind()]++
	}
	return counts
}
