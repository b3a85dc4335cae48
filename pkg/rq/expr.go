package rq

import "github.com/leapstack-labs/prql/pkg/pl"

// Expr is a scalar expression over relational columns.
type Expr struct {
	Kind ExprKind
}

// ExprKind is the tagged union of expression shapes.
type ExprKind interface {
	exprKind()
}

// ColumnRef refers to a column by id.
type ColumnRef struct {
	Column CID
}

func (*ColumnRef) exprKind() {}

// Literal is a constant value.
type Literal struct {
	Value pl.Literal
}

func (*Literal) exprKind() {}

// Binary applies an infix SQL operator.
type Binary struct {
	Left  *Expr
	Op    string
	Right *Expr
}

func (*Binary) exprKind() {}

// Call invokes a SQL function. Star stands for a `*` argument, as in
// COUNT(*).
type Call struct {
	Name string
	Args []*Expr
	Star bool
}

func (*Call) exprKind() {}

// InterpolateItem is one piece of an s-string: literal SQL text or an
// embedded expression.
type InterpolateItem struct {
	Text string
	Expr *Expr
}

// SString splices raw SQL with interpolated expressions.
type SString struct {
	Items []InterpolateItem
}

func (*SString) exprKind() {}
