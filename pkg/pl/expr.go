package pl

import (
	"fmt"
	"strings"
)

// Expr is a node of the pipeline-language tree. It is created by the parser
// and resolver stages; the semantic passes annotate it in place (Ty, Lineage)
// and never replace the node itself.
type Expr struct {
	Kind ExprKind

	// Span locates the node in source, when known.
	Span *Span

	// Alias names the node's value, e.g. the field name in `{a = 1}`.
	Alias string

	// ID is the node identity assigned during resolution. Used when a
	// literal-shaped expression is declared as a table.
	ID int

	// Ty is the resolved type. nil until inference or validation fills it.
	Ty *Ty

	// Lineage tracks which relation columns the node's value derives from.
	Lineage *Frame
}

// String renders the node for diagnostics.
func (e *Expr) String() string {
	if e == nil {
		return "?"
	}
	if kind, ok := e.Kind.(fmt.Stringer); ok {
		return kind.String()
	}
	return "?"
}

// ExprKind is the tagged union of syntactic node shapes.
type ExprKind interface {
	exprKind()
}

// Ident is a (possibly dotted) name reference.
type Ident struct {
	Path []string
}

func (*Ident) exprKind() {}

func (i *Ident) String() string { return strings.Join(i.Path, ".") }

// LiteralExpr wraps a literal constant.
type LiteralExpr struct {
	Value Literal
}

func (*LiteralExpr) exprKind() {}

func (l *LiteralExpr) String() string { return l.Value.String() }

// TupleExpr is a brace-delimited sequence of elements.
type TupleExpr struct {
	Elements []*Expr
}

func (*TupleExpr) exprKind() {}

func (t *TupleExpr) String() string {
	parts := make([]string, 0, len(t.Elements))
	for _, e := range t.Elements {
		if e.Alias != "" {
			parts = append(parts, e.Alias+" = "+e.String())
		} else {
			parts = append(parts, e.String())
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ArrayExpr is a bracket-delimited sequence of elements.
type ArrayExpr struct {
	Elements []*Expr
}

func (*ArrayExpr) exprKind() {}

func (a *ArrayExpr) String() string {
	parts := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RangeExpr is a start..end range; either bound may be absent.
type RangeExpr struct {
	Start *Expr
	End   *Expr
}

func (*RangeExpr) exprKind() {}

func (r *RangeExpr) String() string {
	var sb strings.Builder
	if r.Start != nil {
		sb.WriteString(r.Start.String())
	}
	sb.WriteString("..")
	if r.End != nil {
		sb.WriteString(r.End.String())
	}
	return sb.String()
}

// BinOp is a binary operator.
type BinOp int

// Binary operators.
const (
	OpMul BinOp = iota
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpEq
	OpNe
	OpGt
	OpLt
	OpGte
	OpLte
	OpAnd
	OpOr
	OpCoalesce
)

// String returns the operator's source spelling.
func (op BinOp) String() string {
	switch op {
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpCoalesce:
		return "??"
	default:
		return "?"
	}
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Left  *Expr
	Op    BinOp
	Right *Expr
}

func (*BinaryExpr) exprKind() {}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", b.Left.String(), b.Op, b.Right.String())
}

// FuncCall is a function application.
type FuncCall struct {
	Name *Expr
	Args []*Expr
}

func (*FuncCall) exprKind() {}

func (f *FuncCall) String() string {
	parts := make([]string, 0, len(f.Args)+1)
	parts = append(parts, f.Name.String())
	for _, a := range f.Args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

// FuncExpr is a function value, e.g. a partially applied transform.
type FuncExpr struct {
	// NameHint holds the declared name, when the function came from one.
	NameHint string
	Params   []string
	Body     *Expr
}

func (*FuncExpr) exprKind() {}

func (f *FuncExpr) String() string {
	if f.NameHint != "" {
		return f.NameHint
	}
	return "func " + strings.Join(f.Params, " ")
}

// PipelineExpr is a sequence of expressions piped left to right.
type PipelineExpr struct {
	Exprs []*Expr
}

func (*PipelineExpr) exprKind() {}

func (p *PipelineExpr) String() string {
	parts := make([]string, 0, len(p.Exprs))
	for _, e := range p.Exprs {
		parts = append(parts, e.String())
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// InterpolateItem is a segment of an interpolated string: either raw text
// or an embedded expression.
type InterpolateItem struct {
	Text string
	Expr *Expr
}

// SString is a raw SQL interpolation, e.g. s"COUNT(*)".
type SString struct {
	Parts []InterpolateItem
}

func (*SString) exprKind() {}

func (s *SString) String() string { return `s"` + renderInterpolation(s.Parts) + `"` }

// FString is a formatted string interpolation, e.g. f"{a}/{b}".
type FString struct {
	Parts []InterpolateItem
}

func (*FString) exprKind() {}

func (f *FString) String() string { return `f"` + renderInterpolation(f.Parts) + `"` }

func renderInterpolation(parts []InterpolateItem) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.Expr != nil {
			sb.WriteByte('{')
			sb.WriteString(p.Expr.String())
			sb.WriteByte('}')
		} else {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// TransformCall is a resolved relational transform application.
type TransformCall struct {
	Name  string
	Input *Expr
	Args  []*Expr
}

func (*TransformCall) exprKind() {}

func (t *TransformCall) String() string { return t.Name + " ..." }

// TypeExpr wraps an already-evaluated type value appearing in expression
// position.
type TypeExpr struct {
	Ty *Ty
}

func (*TypeExpr) exprKind() {}

func (t *TypeExpr) String() string { return t.Ty.String() }
