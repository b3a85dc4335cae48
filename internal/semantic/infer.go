package semantic

import (
	"github.com/leapstack-labs/prql/pkg/pl"
)

// InferType derives a type for literal-shaped expressions without consulting
// an environment. A nil type with a nil error means inference is deferred to
// a later pass.
func InferType(node *pl.Expr) (*pl.Ty, error) {
	if node.Ty != nil {
		return node.Ty, nil
	}

	switch kind := node.Kind.(type) {
	case *pl.LiteralExpr:
		switch kind.Value.(type) {
		case pl.Null:
			return &pl.Ty{Kind: &pl.SingletonTy{Value: pl.Null{}}}, nil
		case pl.Integer:
			return &pl.Ty{Kind: pl.PrimInt}, nil
		case pl.Float:
			return &pl.Ty{Kind: pl.PrimFloat}, nil
		case pl.Boolean:
			return &pl.Ty{Kind: pl.PrimBool}, nil
		case pl.String:
			return &pl.Ty{Kind: pl.PrimText}, nil
		case pl.Date:
			return &pl.Ty{Kind: pl.PrimDate}, nil
		case pl.Time:
			return &pl.Ty{Kind: pl.PrimTime}, nil
		case pl.Timestamp:
			return &pl.Ty{Kind: pl.PrimTimestamp}, nil
		default:
			// quantities (2years etc.) stay unresolved
			return nil, nil
		}

	case *pl.FString:
		return &pl.Ty{Kind: pl.PrimText}, nil

	case *pl.TupleExpr:
		fields := make([]pl.TupleField, 0, len(kind.Elements))
		for _, elem := range kind.Elements {
			ty, err := InferType(elem)
			if err != nil {
				return nil, err
			}
			fields = append(fields, pl.TupleField{Ty: ty})
		}
		return &pl.Ty{Kind: &pl.TupleTy{Fields: fields}}, nil

	default:
		// identifiers, pipelines, calls, s-strings, ranges and transforms
		// are resolved by later passes
		return nil, nil
	}
}
