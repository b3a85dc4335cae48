package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/prql/pkg/pl"
)

func typeExpr(ty *pl.Ty) *pl.Expr {
	return &pl.Expr{Kind: &pl.TypeExpr{Ty: ty}}
}

func intTy() *pl.Ty  { return &pl.Ty{Kind: pl.PrimInt} }
func textTy() *pl.Ty { return &pl.Ty{Kind: pl.PrimText} }
func boolTy() *pl.Ty { return &pl.Ty{Kind: pl.PrimBool} }

func TestCoerceToType_ResolvedTypeIsIdempotent(t *testing.T) {
	ty := intTy()

	got, err := CoerceToType(typeExpr(ty))
	require.NoError(t, err)
	assert.Same(t, ty, got)

	// re-evaluating the result wrapped again returns it unchanged
	again, err := CoerceToType(typeExpr(got))
	require.NoError(t, err)
	assert.Same(t, ty, again)
}

func TestCoerceToType_LiteralBecomesSingleton(t *testing.T) {
	got, err := CoerceToType(&pl.Expr{Kind: &pl.LiteralExpr{Value: pl.Integer(1)}})
	require.NoError(t, err)

	single, ok := got.Kind.(*pl.SingletonTy)
	require.True(t, ok)
	assert.Equal(t, pl.Integer(1), single.Value)
}

func TestCoerceToType_Tuple(t *testing.T) {
	// {a = int, bool}
	expr := &pl.Expr{Kind: &pl.TupleExpr{Elements: []*pl.Expr{
		{Kind: &pl.TypeExpr{Ty: intTy()}, Alias: "a"},
		{Kind: &pl.TypeExpr{Ty: boolTy()}},
	}}}

	got, err := CoerceToType(expr)
	require.NoError(t, err)

	tuple, ok := got.Kind.(*pl.TupleTy)
	require.True(t, ok)
	require.Len(t, tuple.Fields, 2)
	assert.Equal(t, "a", tuple.Fields[0].Name)
	assert.Equal(t, pl.PrimInt, tuple.Fields[0].Ty.Kind)
	assert.Empty(t, tuple.Fields[1].Name)
	assert.Equal(t, pl.PrimBool, tuple.Fields[1].Ty.Kind)
}

func TestCoerceToType_WildcardSugar(t *testing.T) {
	tests := []struct {
		name   string
		start  *pl.Expr
		wantTy *pl.Ty
	}{
		{
			name:   "constrained {int..}",
			start:  typeExpr(intTy()),
			wantTy: intTy(),
		},
		{
			name:   "unconstrained {..}",
			start:  nil,
			wantTy: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := &pl.Expr{Kind: &pl.TupleExpr{Elements: []*pl.Expr{
				{Kind: &pl.RangeExpr{Start: tt.start}},
			}}}

			got, err := CoerceToType(expr)
			require.NoError(t, err)

			tuple, ok := got.Kind.(*pl.TupleTy)
			require.True(t, ok)
			require.Len(t, tuple.Fields, 1)
			assert.True(t, tuple.Fields[0].Wildcard)
			if tt.wantTy == nil {
				assert.Nil(t, tuple.Fields[0].Ty)
			} else {
				require.NotNil(t, tuple.Fields[0].Ty)
				assert.Equal(t, tt.wantTy.Kind, tuple.Fields[0].Ty.Kind)
			}
		})
	}
}

func TestCoerceToType_BoundedRangeInTupleIsNotWildcard(t *testing.T) {
	// {1..2} has an upper bound, so it is not the wildcard sugar and the
	// range itself is not a type expression
	expr := &pl.Expr{Kind: &pl.TupleExpr{Elements: []*pl.Expr{
		{Kind: &pl.RangeExpr{
			Start: &pl.Expr{Kind: &pl.LiteralExpr{Value: pl.Integer(1)}},
			End:   &pl.Expr{Kind: &pl.LiteralExpr{Value: pl.Integer(2)}},
		}},
	}}}

	_, err := CoerceToType(expr)
	require.Error(t, err)
	assert.IsType(t, &TypeExpressionError{}, err)
}

func TestCoerceToType_ArrayArity(t *testing.T) {
	tests := []struct {
		name     string
		elements []*pl.Expr
		wantErr  bool
	}{
		{name: "empty fails", elements: nil, wantErr: true},
		{name: "one succeeds", elements: []*pl.Expr{typeExpr(intTy())}},
		{
			name:     "two fail",
			elements: []*pl.Expr{typeExpr(intTy()), typeExpr(boolTy())},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceToType(&pl.Expr{Kind: &pl.ArrayExpr{Elements: tt.elements}})
			if tt.wantErr {
				require.Error(t, err)
				assert.IsType(t, &StructuralError{}, err)
				return
			}
			require.NoError(t, err)
			arr, ok := got.Kind.(*pl.ArrayTy)
			require.True(t, ok)
			assert.Equal(t, pl.PrimInt, arr.Elem.Kind)
		})
	}
}

func TestCoerceToType_UnionFlattening(t *testing.T) {
	// int || (bool || text) must evaluate to one union of three
	// alternatives, never a nested union
	inner := &pl.Expr{Kind: &pl.BinaryExpr{
		Left:  typeExpr(boolTy()),
		Op:    pl.OpOr,
		Right: typeExpr(textTy()),
	}}
	expr := &pl.Expr{Kind: &pl.BinaryExpr{
		Left:  typeExpr(intTy()),
		Op:    pl.OpOr,
		Right: inner,
	}}

	got, err := CoerceToType(expr)
	require.NoError(t, err)

	union, ok := got.Kind.(*pl.UnionTy)
	require.True(t, ok)
	require.Len(t, union.Alternatives, 3)
	for _, alt := range union.Alternatives {
		_, nested := alt.Ty.Kind.(*pl.UnionTy)
		assert.False(t, nested, "union alternatives must not be unions")
	}
	assert.Equal(t, pl.PrimInt, union.Alternatives[0].Ty.Kind)
	assert.Equal(t, pl.PrimBool, union.Alternatives[1].Ty.Kind)
	assert.Equal(t, pl.PrimText, union.Alternatives[2].Ty.Kind)
}

func TestCoerceToType_UnionKeepsAlternativeNames(t *testing.T) {
	named := &pl.Ty{Kind: pl.PrimInt, Name: "id"}
	expr := &pl.Expr{Kind: &pl.BinaryExpr{
		Left:  typeExpr(named),
		Op:    pl.OpOr,
		Right: typeExpr(textTy()),
	}}

	got, err := CoerceToType(expr)
	require.NoError(t, err)

	union, ok := got.Kind.(*pl.UnionTy)
	require.True(t, ok)
	require.Len(t, union.Alternatives, 2)
	assert.Equal(t, "id", union.Alternatives[0].Name)
	assert.Empty(t, union.Alternatives[1].Name)
}

func TestCoerceToType_NotAType(t *testing.T) {
	expr := &pl.Expr{Kind: &pl.Ident{Path: []string{"employees"}}}

	_, err := CoerceToType(expr)
	require.Error(t, err)
	assert.IsType(t, &TypeExpressionError{}, err)
	assert.Contains(t, err.Error(), "not a type expression: `employees`")
}

func TestCoerceToType_NestedFailureCarriesSpan(t *testing.T) {
	span := &pl.Span{Start: 3, End: 12}
	expr := &pl.Expr{Kind: &pl.TupleExpr{Elements: []*pl.Expr{
		{Kind: &pl.Ident{Path: []string{"x"}}, Span: span},
	}}}

	_, err := CoerceToType(expr)
	require.Error(t, err)

	var semErr Error
	require.ErrorAs(t, err, &semErr)
	assert.Equal(t, span, semErr.Span())
}
