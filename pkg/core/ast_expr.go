package core

// ColumnRef is a column reference, optionally table-qualified.
type ColumnRef struct {
	Table  string // optional table/alias qualifier
	Column string
}

func (*ColumnRef) exprNode() {}

// StarExpr is a * projection, optionally table-qualified (t.*).
type StarExpr struct {
	Table string
}

func (*StarExpr) exprNode() {}

// LiteralType classifies SQL literal values.
type LiteralType int

// LiteralType constants.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
	LiteralDate
	LiteralTime
	LiteralTimestamp
)

// Literal is a literal value with its pre-rendered text.
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// BinaryExpr is a binary operation with the operator in SQL spelling.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a prefix operation, e.g. NOT or unary minus.
type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall is a function call, optionally windowed with an OVER clause.
type FuncCall struct {
	Name string
	Args []Expr
	Star bool // COUNT(*)
	Over *WindowSpec
}

func (*FuncCall) exprNode() {}

// WindowSpec is an OVER clause body.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderByItem
}

// ParenExpr is an explicitly parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// RawSQL is a verbatim SQL fragment originating from an s-string. It is
// emitted untouched.
type RawSQL struct {
	Text string
}

func (*RawSQL) exprNode() {}

// SubqueryExpr is a sub-query used in expression position.
type SubqueryExpr struct {
	Select *SelectStmt
}

func (*SubqueryExpr) exprNode() {}
