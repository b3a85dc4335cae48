package format

import (
	"github.com/leapstack-labs/prql/pkg/core"
	"github.com/leapstack-labs/prql/pkg/dialect"
)

// Format renders a statement as indented multi-line SQL. The result carries
// no trailing newline; callers append one when emitting a file.
func Format(stmt *core.SelectStmt, d dialect.Handler) string {
	p := newPrinter(d, false)
	p.formatSelectStmt(stmt)
	return p.String()
}

// Compact renders a statement as a single line of SQL.
func Compact(stmt *core.SelectStmt, d dialect.Handler) string {
	p := newPrinter(d, true)
	p.formatSelectStmt(stmt)
	return p.String()
}

// Expr renders a single expression on one line. Used for splicing rendered
// fragments into raw SQL.
func Expr(expr core.Expr, d dialect.Handler) string {
	p := newPrinter(d, true)
	p.formatExpr(expr)
	return p.String()
}
