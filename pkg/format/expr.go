package format

import (
	"strings"

	"github.com/leapstack-labs/prql/pkg/core"
)

func (p *printer) formatExpr(expr core.Expr) {
	switch e := expr.(type) {
	case *core.ColumnRef:
		if e.Table != "" {
			p.ident(e.Table)
			p.write(".")
		}
		p.ident(e.Column)

	case *core.StarExpr:
		if e.Table != "" {
			p.ident(e.Table)
			p.write(".")
		}
		p.write("*")

	case *core.Literal:
		p.formatLiteral(e)

	case *core.BinaryExpr:
		p.formatExpr(e.Left)
		p.space()
		p.write(e.Op)
		p.space()
		p.formatExpr(e.Right)

	case *core.UnaryExpr:
		p.write(e.Op)
		if isWordOp(e.Op) {
			p.space()
		}
		p.formatExpr(e.Expr)

	case *core.FuncCall:
		p.keyword(e.Name)
		p.write("(")
		if e.Star {
			p.write("*")
		}
		for i, arg := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			p.formatExpr(arg)
		}
		p.write(")")
		if e.Over != nil {
			p.formatWindow(e.Over)
		}

	case *core.ParenExpr:
		p.write("(")
		p.formatExpr(e.Expr)
		p.write(")")

	case *core.RawSQL:
		p.write(e.Text)

	case *core.SubqueryExpr:
		p.parens(func() { p.formatSelectStmt(e.Select) })
	}
}

func (p *printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.write("'" + strings.ReplaceAll(lit.Value, "'", "''") + "'")
	case core.LiteralNull:
		p.keyword("NULL")
	case core.LiteralBool:
		p.keyword(lit.Value)
	case core.LiteralDate:
		p.keyword("DATE")
		p.space()
		p.write("'" + lit.Value + "'")
	case core.LiteralTime:
		p.keyword("TIME")
		p.space()
		p.write("'" + lit.Value + "'")
	case core.LiteralTimestamp:
		p.keyword("TIMESTAMP")
		p.space()
		p.write("'" + lit.Value + "'")
	default:
		p.write(lit.Value)
	}
}

func (p *printer) formatWindow(w *core.WindowSpec) {
	p.space()
	p.keyword("OVER")
	p.space()
	p.write("(")
	wrote := false
	if len(w.PartitionBy) > 0 {
		p.keyword("PARTITION BY")
		p.space()
		for i, e := range w.PartitionBy {
			if i > 0 {
				p.write(", ")
			}
			p.formatExpr(e)
		}
		wrote = true
	}
	if len(w.OrderBy) > 0 {
		if wrote {
			p.space()
		}
		p.keyword("ORDER BY")
		p.space()
		for i, item := range w.OrderBy {
			if i > 0 {
				p.write(", ")
			}
			p.formatExpr(item.Expr)
			if item.Desc {
				p.space()
				p.keyword("DESC")
			}
		}
	}
	p.write(")")
}

func isWordOp(op string) bool {
	for _, r := range op {
		if r < 'A' || (r > 'Z' && r < 'a') || r > 'z' {
			return false
		}
	}
	return len(op) > 0
}
