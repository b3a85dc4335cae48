package format

import (
	"strconv"

	"github.com/leapstack-labs/prql/pkg/core"
)

func (p *printer) formatSelectStmt(s *core.SelectStmt) {
	if len(s.With) > 0 {
		p.formatWith(s.With)
	}

	p.keyword("SELECT")
	if s.Distinct {
		p.space()
		p.keyword("DISTINCT")
	}
	p.newline()
	p.indent()
	for i, col := range s.Columns {
		p.formatExpr(col.Expr)
		if col.Alias != "" {
			p.space()
			p.keyword("AS")
			p.space()
			p.ident(col.Alias)
		}
		if i < len(s.Columns)-1 {
			p.write(",")
			p.newline()
		}
	}
	p.dedent()

	if s.From != nil {
		p.newline()
		p.keyword("FROM")
		p.newline()
		p.indent()
		p.formatTableRef(*s.From)
		p.dedent()
	}

	for _, join := range s.Joins {
		p.newline()
		if join.Type != "" {
			p.keyword(join.Type)
			p.space()
		}
		p.keyword("JOIN")
		p.space()
		p.formatTableRef(join.Table)
		if join.On != nil {
			p.space()
			p.keyword("ON")
			p.space()
			p.formatExpr(join.On)
		}
	}

	if s.Where != nil {
		p.formatClause("WHERE", func() { p.formatExpr(s.Where) })
	}

	if len(s.GroupBy) > 0 {
		p.formatClause("GROUP BY", func() {
			for i, e := range s.GroupBy {
				p.formatExpr(e)
				if i < len(s.GroupBy)-1 {
					p.write(",")
					p.newline()
				}
			}
		})
	}

	if s.Having != nil {
		p.formatClause("HAVING", func() { p.formatExpr(s.Having) })
	}

	if len(s.OrderBy) > 0 {
		p.formatClause("ORDER BY", func() { p.formatOrderBy(s.OrderBy) })
	}

	// LIMIT and OFFSET are inline clauses
	if s.Limit != nil {
		p.newline()
		p.keyword("LIMIT")
		p.space()
		p.write(strconv.FormatInt(*s.Limit, 10))
	}
	if s.Offset != nil {
		p.newline()
		p.keyword("OFFSET")
		p.space()
		p.write(strconv.FormatInt(*s.Offset, 10))
	}
}

// formatClause prints a keyword on its own line and the body indented under
// it.
func (p *printer) formatClause(keyword string, body func()) {
	p.newline()
	p.keyword(keyword)
	p.newline()
	p.indent()
	body()
	p.dedent()
}

func (p *printer) formatWith(ctes []core.CTE) {
	p.keyword("WITH")
	p.newline()
	p.indent()
	for i, cte := range ctes {
		p.ident(cte.Name)
		p.space()
		p.keyword("AS")
		p.space()
		p.parens(func() { p.formatSelectStmt(cte.Query) })
		if i < len(ctes)-1 {
			p.write(",")
			p.newline()
		}
	}
	p.dedent()
	p.newline()
}

func (p *printer) formatTableRef(t core.TableRef) {
	if t.Query != nil {
		p.parens(func() { p.formatSelectStmt(t.Query) })
	} else {
		p.ident(t.Name)
	}
	if t.Alias != "" {
		p.space()
		p.keyword("AS")
		p.space()
		p.ident(t.Alias)
	}
}

func (p *printer) formatOrderBy(items []core.OrderByItem) {
	for i, item := range items {
		p.formatExpr(item.Expr)
		if item.Desc {
			p.space()
			p.keyword("DESC")
		}
		if i < len(items)-1 {
			p.write(",")
			p.newline()
		}
	}
}
