// Package rq defines the relational query form produced by the lowering
// stage and consumed by the SQL backend. A query is a pipeline of relational
// transforms over table references, with expressions referring to columns by
// stable ids.
package rq

import "errors"

// CID identifies a column across the query.
type CID int

// Relation is a source of rows: an external table or a transform pipeline.
type Relation struct {
	Kind RelationKind
}

// RelationKind is the tagged union of relation shapes.
type RelationKind interface {
	relationKind()
}

// ExternRef names a table defined outside the query.
type ExternRef struct {
	Name string
}

func (*ExternRef) relationKind() {}

// Pipeline is an ordered sequence of transforms.
type Pipeline struct {
	Transforms []Transform
}

func (*Pipeline) relationKind() {}

// Query is a complete relational query. Relation is the main relation whose
// rows the query produces.
type Query struct {
	Relation Relation
}

// ErrNotPipeline is returned when an operation needs the main relation to be
// pipeline-shaped and it is not.
var ErrNotPipeline = errors.New("main relation is not a pipeline")

// MainPipeline returns the transforms of the main relation.
func (q *Query) MainPipeline() ([]Transform, error) {
	pipeline, ok := q.Relation.Kind.(*Pipeline)
	if !ok {
		return nil, ErrNotPipeline
	}
	return pipeline.Transforms, nil
}

// Transform is one relational operation in a pipeline.
type Transform interface {
	transformNode()
}

// ColumnDef declares a column exposed by a source.
type ColumnDef struct {
	ID   CID    `yaml:"id"`
	Name string `yaml:"name"`

	// Wildcard stands for all columns of the source.
	Wildcard bool `yaml:"wildcard"`
}

// From introduces a source relation. Either Name refers to an external
// table, or Relation holds an inline pipeline.
type From struct {
	Name     string      `yaml:"name"`
	Alias    string      `yaml:"alias"`
	Columns  []ColumnDef `yaml:"columns"`
	Relation *Relation   `yaml:"relation"`
}

func (*From) transformNode() {}

// Compute defines a derived column.
type Compute struct {
	ID     CID     `yaml:"id"`
	Name   string  `yaml:"name"`
	Expr   *Expr   `yaml:"expr"`
	Window *Window `yaml:"window"`
}

func (*Compute) transformNode() {}

// Window marks a compute as windowed and carries its OVER clause parts.
type Window struct {
	PartitionBy []CID      `yaml:"partition_by"`
	OrderBy     []SortItem `yaml:"order_by"`
}

// Select projects the relation down to the named columns, in order.
type Select struct {
	Columns []CID
}

func (*Select) transformNode() {}

// Filter keeps rows matching the condition. Filters before the projection
// become WHERE clauses; filters after an aggregation become HAVING.
type Filter struct {
	Expr *Expr `yaml:"expr"`
}

func (*Filter) transformNode() {}

// SortItem is one sort key.
type SortItem struct {
	Column CID  `yaml:"column"`
	Desc   bool `yaml:"desc"`
}

// Sort orders the relation.
type Sort struct {
	Items []SortItem
}

func (*Sort) transformNode() {}

// Take limits the relation to a row window.
type Take struct {
	Limit  *int64 `yaml:"limit"`
	Offset *int64 `yaml:"offset"`
}

func (*Take) transformNode() {}

// Join combines the relation with another source.
type Join struct {
	// Side is "inner", "left", "right" or "full".
	Side string `yaml:"side"`
	With From   `yaml:"with"`
	On   *Expr  `yaml:"on"`
}

func (*Join) transformNode() {}

// Aggregate groups the relation and computes aggregates per group.
type Aggregate struct {
	GroupBy  []CID     `yaml:"group_by"`
	Computes []Compute `yaml:"computes"`
}

func (*Aggregate) transformNode() {}
