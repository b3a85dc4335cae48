// Package sql translates relational queries into dialect-specific SQL text.
// Generation runs single-threaded over a Context that tracks the current
// query's codegen options and the CTEs accumulated so far.
package sql

import (
	"github.com/leapstack-labs/prql/pkg/core"
	"github.com/leapstack-labs/prql/pkg/dialect"
)

// QueryOpts are the codegen switches for the query currently being
// generated. Nested queries save and restore them via the context stack.
type QueryOpts struct {
	// OmitIdentPrefix drops table prefixes from column references. Set when
	// the query reads from a single source.
	OmitIdentPrefix bool

	// PreProjection selects how column references render: true means the
	// projection has not been applied yet, so references resolve to source
	// columns and computed columns inline their expressions (WHERE, GROUP
	// BY, join conditions). False means references use output names
	// (ORDER BY).
	PreProjection bool

	// AllowCTEs permits hoisting nested relations into WITH clauses. When
	// false, nested relations render as inline sub-queries.
	AllowCTEs bool

	// AllowStars permits `*` projections.
	AllowStars bool

	// WindowFunction is true while generating an expression that will carry
	// an OVER clause.
	WindowFunction bool
}

func defaultQueryOpts() QueryOpts {
	return QueryOpts{
		OmitIdentPrefix: false,
		PreProjection:   false,
		AllowCTEs:       true,
		AllowStars:      true,
		WindowFunction:  false,
	}
}

// Context carries all mutable state of one SQL generation run.
type Context struct {
	Dialect dialect.Handler
	Anchor  *AnchorContext

	query      QueryOpts
	queryStack []QueryOpts

	ctes []core.CTE
}

// NewContext returns a generation context for the given dialect with
// default query options.
func NewContext(d dialect.Handler) *Context {
	return &Context{
		Dialect: d,
		Anchor:  NewAnchorContext(),
		query:   defaultQueryOpts(),
	}
}

// Query returns the options of the query currently being generated. The
// pointer stays valid until the next PushQuery or PopQuery.
func (c *Context) Query() *QueryOpts {
	return &c.query
}

// PushQuery saves the current query options. Every PushQuery must be paired
// with exactly one PopQuery on all control paths.
func (c *Context) PushQuery() {
	c.queryStack = append(c.queryStack, c.query)
}

// PopQuery restores the most recently saved query options. Popping an empty
// stack is a compiler bug and panics.
func (c *Context) PopQuery() {
	if len(c.queryStack) == 0 {
		panic("internal compiler error: query options stack is empty")
	}
	c.query = c.queryStack[len(c.queryStack)-1]
	c.queryStack = c.queryStack[:len(c.queryStack)-1]
}

// AddCTE records a hoisted relation for the enclosing WITH clause.
func (c *Context) AddCTE(cte core.CTE) {
	c.ctes = append(c.ctes, cte)
}

// TakeCTEs drains the accumulated CTEs.
func (c *Context) TakeCTEs() []core.CTE {
	ctes := c.ctes
	c.ctes = nil
	return ctes
}
