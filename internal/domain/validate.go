package domain

import "fmt"

// Validate checks that an axiom carries every field its kind requires
func Validate(a Axiom) error {
	if a == nil {
		return fmt.Errorf("nil axiom")
	}
	switch v := a.(type) {
	case Declaration:
		if v.Entity == "" || v.IRI == "" {
			return fmt.Errorf("%s: entity type and IRI are required", v.Kind())
		}
	case AnnotationAssertion:
		if v.Property == "" || v.Subject == "" {
			return fmt.Errorf("%s: property and subject are required", v.Kind())
		}
	case SubAnnotationPropertyOf:
		if v.Sub == "" || v.Super == "" {
			return fmt.Errorf("%s: sub and super are required", v.Kind())
		}
	case AnnotationPropertyDomain:
		if v.Property == "" || v.Domain == "" {
			return fmt.Errorf("%s: property and domain are required", v.Kind())
		}
	case AnnotationPropertyRange:
		if v.Property == "" || v.Range == "" {
			return fmt.Errorf("%s: property and range are required", v.Kind())
		}
	case EquivalentClasses:
		if len(v.classes) < 2 {
			return fmt.Errorf("%s: at least two class expressions are required", v.Kind())
		}
	case DisjointClasses:
		if len(v.classes) < 2 {
			return fmt.Errorf("%s: at least two class expressions are required", v.Kind())
		}
	case ClassAssertion:
		if v.Individual == "" {
			return fmt.Errorf("%s: individual is required", v.Kind())
		}
		if err := validateExpression(v.Class); err != nil {
			return fmt.Errorf("%s: %w", v.Kind(), err)
		}
	case SubClassOf:
		if err := validateExpression(v.Sub); err != nil {
			return fmt.Errorf("%s: sub: %w", v.Kind(), err)
		}
		if err := validateExpression(v.Super); err != nil {
			return fmt.Errorf("%s: super: %w", v.Kind(), err)
		}
	case ObjectPropertyAssertion:
		if v.Property == "" || v.Subject == "" || v.Object == "" {
			return fmt.Errorf("%s: property, subject and object are required", v.Kind())
		}
	default:
		return fmt.Errorf("unsupported axiom type %T", a)
	}
	return nil
}

func validateExpression(ce ClassExpression) error {
	switch v := ce.(type) {
	case nil:
		return fmt.Errorf("class expression is required")
	case Class:
		if v.IRI == "" {
			return fmt.Errorf("class IRI is required")
		}
	case ObjectIntersectionOf:
		if len(v.operands) < 2 {
			return fmt.Errorf("%s needs at least two operands", v.Type())
		}
	case ObjectUnionOf:
		if len(v.operands) < 2 {
			return fmt.Errorf("%s needs at least two operands", v.Type())
		}
	}
	return nil
}
