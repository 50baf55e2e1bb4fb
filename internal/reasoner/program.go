package reasoner

// program is the Datalog theory evaluated over the extensional facts.
//
//	subclass_of(Sub, Super)  stated SubClassOf between named classes
//	equivalent(A, B)         stated equivalence between named classes
//	instance_of(Ind, Class)  stated ClassAssertion on a named class
//
// Derived:
//
//	edge(Sub, Super)   one-step subsumption, equivalence counted both ways
//	super_of(C, D)     transitive closure of edge; may contain C = D on cycles
//	type_of(Ind, C)    stated or inferred membership
const program = `
Decl subclass_of(Sub, Super).
Decl equivalent(A, B).
Decl instance_of(Ind, Class).
Decl edge(Sub, Super).
Decl super_of(Sub, Super).
Decl type_of(Ind, Class).

edge(X, Y) :- subclass_of(X, Y).
edge(X, Y) :- equivalent(X, Y).
edge(X, Y) :- equivalent(Y, X).

super_of(X, Y) :- edge(X, Y).
super_of(X, Z) :- super_of(X, Y), edge(Y, Z).

type_of(I, C) :- instance_of(I, C).
type_of(I, D) :- instance_of(I, C), super_of(C, D).
`

const (
	predSubclassOf = "subclass_of"
	predEquivalent = "equivalent"
	predInstanceOf = "instance_of"
	predEdge       = "edge"
	predSuperOf    = "super_of"
	predTypeOf     = "type_of"
)
