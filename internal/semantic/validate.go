package semantic

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/prql/pkg/pl"
)

// TableDeclarer is the single capability consumed from the namespace system:
// registering a literal-shaped expression as a table so its columns can be
// inferred like those of ordinary table references.
type TableDeclarer interface {
	DeclareTableForLiteral(id int, existing *pl.Frame, alias string) *pl.Frame
}

// Who lazily produces the label of the operation being validated, for
// diagnostics. A nil Who or an empty result both mean no caller is known.
type Who func() string

// Validator checks and infers expression types. It mutates the validated
// nodes in place: assigning inferred types and, for relation-typed literals,
// attaching declared lineage.
type Validator struct {
	declarer TableDeclarer
}

// NewValidator creates a validator using the given namespace capability.
func NewValidator(declarer TableDeclarer) *Validator {
	return &Validator{declarer: declarer}
}

// ValidateType validates that the found node has the expected type, filling
// the node's type in when it has none.
func (v *Validator) ValidateType(found *pl.Expr, expected *pl.Ty, who Who) error {
	// expected is none: there is no validation to be done
	if expected == nil {
		return nil
	}
	if who == nil {
		who = func() string { return "" }
	}

	// found is none: infer from expected
	if found.Ty == nil {
		if found.Lineage == nil && expected.IsRelation() && v.declarer != nil {
			// inferred tables are needed for s-strings that represent
			// tables; as with normal table references we want to infer
			// their columns, so the table must be declared in the module
			// structure
			found.Lineage = v.declarer.DeclareTableForLiteral(found.ID, nil, found.Alias)
		}

		found.Ty = expected
		return nil
	}

	// special case of container type: tuple
	if tuple, ok := found.Kind.(*pl.TupleExpr); ok {
		matched, err := v.validateTupleType(tuple.Elements, expected, who)
		if err != nil {
			return err
		}
		if matched {
			return nil
		}
	}

	// base case: compare types
	expectedIsAbove := expected.IsSuperTypeOf(found.Ty)

	if !expectedIsAbove {
		mismatch := &TypeMismatchError{
			span:     found.Span,
			Who:      who(),
			Expected: displayTy(expected),
			Found:    displayTy(found.Ty),
		}

		if found.Ty.IsFunction() && !expected.IsFunction() {
			funcName := ""
			if fn, ok := found.Kind.(*pl.FuncExpr); ok {
				funcName = fn.NameHint
			}
			if funcName != "" {
				mismatch.Help = fmt.Sprintf("Have you forgotten an argument to function %s?", funcName)
			} else {
				mismatch.Help = "Have you forgotten an argument in this function call?"
			}
			return mismatch
		}

		if strings.Contains(mismatch.Who, "std.join") && found.Ty.IsTuple() && !expected.IsTuple() {
			mismatch.Help = "Try using `(...)` instead of `{...}`"
			return mismatch
		}

		return mismatch
	}
	return nil
}

// validateTupleType structurally matches a tuple's fields against the
// expected type. A false result without an error means no tuple-shaped
// candidate matched and the caller should fall back to the generic
// comparison.
func (v *Validator) validateTupleType(foundFields []*pl.Expr, expected *pl.Ty, who Who) (bool, error) {
	expectedFields := findPotentialTupleFields(expected)
	if expectedFields == nil {
		return false, nil
	}

	next := 0
	for _, expectedField := range expectedFields {
		if expectedField.Wildcard {
			// the wildcard swallows every remaining found field; any
			// expected fields after it are unreachable
			for ; next < len(foundFields); next++ {
				if err := v.ValidateType(foundFields[next], expectedField.Ty, who); err != nil {
					return false, err
				}
			}
			return true, nil
		}

		if next >= len(foundFields) {
			return false, nil
		}
		if err := v.ValidateType(foundFields[next], expectedField.Ty, who); err != nil {
			return false, err
		}
		next++
	}

	return next == len(foundFields), nil
}

// findPotentialTupleFields digs into the expected type for a tuple-shaped
// field list: a tuple directly, or the first alternative of a union that
// yields one.
func findPotentialTupleFields(expected *pl.Ty) []pl.TupleField {
	switch kind := expected.Kind.(type) {
	case *pl.TupleTy:
		return kind.Fields
	case *pl.UnionTy:
		for _, alt := range kind.Alternatives {
			if fields := findPotentialTupleFields(alt.Ty); fields != nil {
				return fields
			}
		}
		return nil
	default:
		return nil
	}
}

func displayTy(ty *pl.Ty) string {
	if ty.IsTuple() {
		return "a tuple"
	}
	return fmt.Sprintf("type `%s`", ty)
}
