// Package core defines the SQL output AST produced by the compiler backend.
// The AST is dialect-agnostic; rendering decisions (identifier quoting,
// clause layout) happen in pkg/format with a dialect handler.
package core

// Expr is the interface implemented by all SQL expression nodes.
type Expr interface {
	exprNode()
}

// SelectStmt is a complete SELECT statement, including any WITH-bound CTEs.
type SelectStmt struct {
	With     []CTE
	Distinct bool
	Columns  []SelectItem
	From     *TableRef
	Joins    []Join
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
	Limit    *int64
	Offset   *int64
}

// CTE is a named sub-query bound via a WITH clause.
type CTE struct {
	Name  string
	Query *SelectStmt
}

// SelectItem is one projected column, optionally aliased.
type SelectItem struct {
	Expr  Expr
	Alias string
}

// TableRef is a FROM or JOIN source: either a named table or an inline
// sub-query. Exactly one of Name and Query is set.
type TableRef struct {
	Name  string
	Alias string
	Query *SelectStmt
}

// Join is one JOIN clause.
type Join struct {
	// Type is the join keyword prefix: "", "LEFT", "RIGHT", "FULL".
	Type  string
	Table TableRef
	On    Expr
}

// OrderByItem is one ORDER BY entry.
type OrderByItem struct {
	Expr Expr
	Desc bool
}
