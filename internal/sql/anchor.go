package sql

import (
	"fmt"

	"github.com/leapstack-labs/prql/pkg/rq"
)

// ColumnDecl is everything the generator knows about one column id: where
// it comes from, what it is called, and, for computed columns, the
// expression that defines it.
type ColumnDecl struct {
	ID   rq.CID
	Name string

	// Table is the source alias used to prefix references.
	Table string

	// Wildcard marks the declaration as standing for all source columns.
	Wildcard bool

	// Expr is set for computed columns.
	Expr   *rq.Expr
	Window *rq.Window
}

// AnchorContext maps column ids to their declarations and hands out names
// for hoisted relations.
type AnchorContext struct {
	columns   map[rq.CID]*ColumnDecl
	nextTable int
}

// NewAnchorContext returns an empty registry.
func NewAnchorContext() *AnchorContext {
	return &AnchorContext{columns: make(map[rq.CID]*ColumnDecl)}
}

// Declare registers a column. Re-declaring an id overwrites the previous
// declaration; ids are unique per query by construction.
func (a *AnchorContext) Declare(decl *ColumnDecl) {
	a.columns[decl.ID] = decl
}

// Lookup resolves a column id.
func (a *AnchorContext) Lookup(cid rq.CID) (*ColumnDecl, error) {
	decl, ok := a.columns[cid]
	if !ok {
		return nil, fmt.Errorf("unknown column id %d", cid)
	}
	return decl, nil
}

// NextTableName returns a fresh name for a hoisted or anonymous relation:
// table_0, table_1, and so on.
func (a *AnchorContext) NextTableName() string {
	name := fmt.Sprintf("table_%d", a.nextTable)
	a.nextTable++
	return name
}
