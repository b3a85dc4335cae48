package semantic

import (
	"github.com/leapstack-labs/prql/pkg/pl"
)

// CoerceToType evaluates a resolved expression as a type expression and
// returns the type value it denotes. Evaluating an already-resolved type is
// the identity.
func CoerceToType(expr *pl.Expr) (*pl.Ty, error) {
	return coerceKindToType(expr.Kind)
}

// coerceToAliasedType evaluates an expression as a type, capturing its alias
// as the field name. Failures get the expression's span attached.
func coerceToAliasedType(expr *pl.Expr) (string, *pl.Ty, error) {
	ty, err := coerceKindToType(expr.Kind)
	if err != nil {
		return "", nil, withSpan(err, expr.Span)
	}
	return expr.Alias, ty, nil
}

func coerceKindToType(kind pl.ExprKind) (*pl.Ty, error) {
	switch kind := kind.(type) {
	// already evaluated type expressions (mostly primitives)
	case *pl.TypeExpr:
		return kind.Ty, nil

	// singletons
	case *pl.LiteralExpr:
		return &pl.Ty{Kind: &pl.SingletonTy{Value: kind.Value}}, nil

	// tuples
	case *pl.TupleExpr:
		elements := kind.Elements
		fields := make([]pl.TupleField, 0, len(elements))

		// special case: {x..}
		if len(elements) == 1 {
			if r, ok := elements[0].Kind.(*pl.RangeExpr); ok && r.End == nil {
				var inner *pl.Ty
				if r.Start != nil {
					var err error
					inner, err = CoerceToType(r.Start)
					if err != nil {
						return nil, withSpan(err, r.Start.Span)
					}
				}
				fields = append(fields, pl.TupleField{Wildcard: true, Ty: inner})
				return &pl.Ty{Kind: &pl.TupleTy{Fields: fields}}, nil
			}
		}

		for _, e := range elements {
			name, ty, err := coerceToAliasedType(e)
			if err != nil {
				return nil, err
			}
			fields = append(fields, pl.TupleField{Name: name, Ty: ty})
		}
		return &pl.Ty{Kind: &pl.TupleTy{Fields: fields}}, nil

	// arrays
	case *pl.ArrayExpr:
		if len(kind.Elements) != 1 {
			return nil, NewStructuralError(nil,
				"for type expressions, arrays must contain exactly one element")
		}
		_, elem, err := coerceToAliasedType(kind.Elements[0])
		if err != nil {
			return nil, err
		}
		return &pl.Ty{Kind: &pl.ArrayTy{Elem: elem}}, nil

	// unions
	case *pl.BinaryExpr:
		if kind.Op != pl.OpOr {
			break
		}
		left, err := CoerceToType(kind.Left)
		if err != nil {
			return nil, withSpan(err, kind.Left.Span)
		}
		right, err := CoerceToType(kind.Right)
		if err != nil {
			return nil, withSpan(err, kind.Right.Span)
		}

		// flatten nested unions
		alternatives := make([]pl.UnionAlternative, 0, 2)
		for _, side := range []*pl.Ty{left, right} {
			if union, ok := side.Kind.(*pl.UnionTy); ok {
				alternatives = append(alternatives, union.Alternatives...)
			} else {
				alternatives = append(alternatives, pl.UnionAlternative{Name: side.Name, Ty: side})
			}
		}
		return &pl.Ty{Kind: &pl.UnionTy{Alternatives: alternatives}}, nil
	}

	return nil, NewTypeExpressionError(nil, "not a type expression: `%s`", renderKind(kind))
}

func renderKind(kind pl.ExprKind) string {
	return (&pl.Expr{Kind: kind}).String()
}
