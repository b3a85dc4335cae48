package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/prql/pkg/dialect"
	"github.com/leapstack-labs/prql/pkg/format"
	"github.com/leapstack-labs/prql/pkg/pl"
	"github.com/leapstack-labs/prql/pkg/rq"
)

func pipelineQuery(transforms ...rq.Transform) *rq.Query {
	return &rq.Query{Relation: rq.Relation{Kind: &rq.Pipeline{Transforms: transforms}}}
}

func colRef(cid rq.CID) *rq.Expr {
	return &rq.Expr{Kind: &rq.ColumnRef{Column: cid}}
}

func intLit(v int64) *rq.Expr {
	return &rq.Expr{Kind: &rq.Literal{Value: pl.Integer(v)}}
}

func binary(left *rq.Expr, op string, right *rq.Expr) *rq.Expr {
	return &rq.Expr{Kind: &rq.Binary{Left: left, Op: op, Right: right}}
}

func call(name string, args ...*rq.Expr) *rq.Expr {
	return &rq.Expr{Kind: &rq.Call{Name: name, Args: args}}
}

func int64p(v int64) *int64 { return &v }

// compactSQL translates with a fresh generic context and renders on one
// line.
func compactSQL(t *testing.T, q *rq.Query) string {
	t.Helper()
	ctx := NewContext(genericHandler(t))
	stmt, err := translateQuery(ctx, q)
	require.NoError(t, err)
	return format.Compact(stmt, ctx.Dialect)
}

func TestTranslateSingleTable(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "albums", Columns: []rq.ColumnDef{
			{ID: 1, Name: "title"},
			{ID: 2, Wildcard: true},
		}},
		&rq.Compute{ID: 3, Name: "title_len", Expr: call("length", colRef(1))},
		&rq.Filter{Expr: binary(colRef(3), ">", intLit(10))},
		&rq.Select{Columns: []rq.CID{1, 3}},
		&rq.Sort{Items: []rq.SortItem{{Column: 3, Desc: true}}},
		&rq.Take{Limit: int64p(5)},
	)

	sql := compactSQL(t, q)
	assert.Equal(t,
		"SELECT title, LENGTH(title) AS title_len FROM albums"+
			" WHERE LENGTH(title) > 10 ORDER BY title_len DESC LIMIT 5",
		sql)
}

func TestTranslateJoinAggregate(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "tracks", Columns: []rq.ColumnDef{
			{ID: 1, Name: "album_id"},
			{ID: 2, Name: "ms"},
		}},
		&rq.Join{
			Side: "left",
			With: rq.From{Name: "albums", Alias: "al", Columns: []rq.ColumnDef{
				{ID: 3, Name: "id"},
			}},
			On: binary(colRef(1), "==", colRef(3)),
		},
		&rq.Aggregate{
			GroupBy: []rq.CID{1},
			Computes: []rq.Compute{
				{ID: 4, Name: "total_ms", Expr: call("sum", colRef(2))},
			},
		},
		&rq.Filter{Expr: binary(colRef(4), ">", intLit(1000))},
	)

	sql := compactSQL(t, q)
	assert.Equal(t,
		"SELECT tracks.album_id, SUM(tracks.ms) AS total_ms FROM tracks"+
			" LEFT JOIN albums AS al ON tracks.album_id = al.id"+
			" GROUP BY tracks.album_id HAVING SUM(tracks.ms) > 1000",
		sql)
}

func TestTranslateNestedRelationAsCTE(t *testing.T) {
	inner := &rq.Relation{Kind: &rq.Pipeline{Transforms: []rq.Transform{
		&rq.From{Name: "b", Columns: []rq.ColumnDef{{ID: 10, Name: "x"}}},
		&rq.Select{Columns: []rq.CID{10}},
	}}}
	q := pipelineQuery(&rq.From{Alias: "t", Relation: inner})

	sql := compactSQL(t, q)
	assert.Equal(t, "WITH table_0 AS (SELECT x FROM b) SELECT * FROM table_0 AS t", sql)
}

func TestTranslateNestedRelationInlineWithoutCTEs(t *testing.T) {
	inner := &rq.Relation{Kind: &rq.Pipeline{Transforms: []rq.Transform{
		&rq.From{Name: "b", Columns: []rq.ColumnDef{{ID: 10, Name: "x"}}},
		&rq.Select{Columns: []rq.CID{10}},
	}}}
	q := pipelineQuery(&rq.From{Alias: "t", Relation: inner})

	ctx := NewContext(genericHandler(t))
	ctx.Query().AllowCTEs = false
	stmt, err := translateQuery(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM (SELECT x FROM b) AS t", format.Compact(stmt, ctx.Dialect))
	assert.Empty(t, stmt.With)
}

func TestTranslateNestedExternRelation(t *testing.T) {
	inner := &rq.Relation{Kind: &rq.ExternRef{Name: "b"}}
	q := pipelineQuery(&rq.From{Alias: "t", Relation: inner})

	sql := compactSQL(t, q)
	assert.Equal(t, "WITH table_0 AS (SELECT * FROM b) SELECT * FROM table_0 AS t", sql)
}

func TestTranslateWindowCompute(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "emp", Columns: []rq.ColumnDef{
			{ID: 1, Name: "dept"},
			{ID: 2, Name: "salary"},
		}},
		&rq.Compute{
			ID:   3,
			Name: "rnk",
			Expr: call("rank"),
			Window: &rq.Window{
				PartitionBy: []rq.CID{1},
				OrderBy:     []rq.SortItem{{Column: 2, Desc: true}},
			},
		},
		&rq.Select{Columns: []rq.CID{1, 3}},
	)

	sql := compactSQL(t, q)
	assert.Equal(t,
		"SELECT dept, RANK() OVER (PARTITION BY dept ORDER BY salary DESC) AS rnk FROM emp",
		sql)
}

func TestTranslateSString(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "invoices", Columns: []rq.ColumnDef{{ID: 1, Name: "issued"}}},
		&rq.Compute{ID: 2, Name: "issued_year", Expr: &rq.Expr{Kind: &rq.SString{Items: []rq.InterpolateItem{
			{Text: "EXTRACT(YEAR FROM "},
			{Expr: colRef(1)},
			{Text: ")"},
		}}}},
		&rq.Select{Columns: []rq.CID{2}},
	)

	sql := compactSQL(t, q)
	assert.Equal(t, "SELECT EXTRACT(YEAR FROM issued) AS issued_year FROM invoices", sql)
}

func TestTranslateCoalesceOperator(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "a", Columns: []rq.ColumnDef{{ID: 1, Name: "x"}}},
		&rq.Compute{ID: 2, Name: "y", Expr: binary(colRef(1), "??", intLit(0))},
		&rq.Select{Columns: []rq.CID{2}},
	)

	sql := compactSQL(t, q)
	assert.Equal(t, "SELECT COALESCE(x, 0) AS y FROM a", sql)
}

func TestTranslateCombinesFilters(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "a", Columns: []rq.ColumnDef{
			{ID: 1, Name: "x"},
			{ID: 2, Name: "y"},
		}},
		&rq.Filter{Expr: binary(colRef(1), ">", intLit(0))},
		&rq.Filter{Expr: binary(colRef(2), "<", intLit(9))},
	)

	sql := compactSQL(t, q)
	assert.Equal(t, "SELECT * FROM a WHERE x > 0 AND y < 9", sql)
}

func TestTranslateLeavesQueryUntouched(t *testing.T) {
	sel := &rq.Select{Columns: []rq.CID{1, 2}}
	q := pipelineQuery(
		&rq.From{Name: "a", Columns: []rq.ColumnDef{
			{ID: 1, Name: "x"},
			{ID: 2, Name: "y"},
		}},
		sel,
		&rq.Aggregate{
			GroupBy: []rq.CID{2},
			Computes: []rq.Compute{
				{ID: 3, Name: "n", Expr: call("count", colRef(1))},
			},
		},
	)

	sql := compactSQL(t, q)
	assert.Equal(t, "SELECT y, COUNT(x) AS n FROM a GROUP BY y", sql)
	assert.Equal(t, []rq.CID{1, 2}, sel.Columns)
}

func TestTranslateFoldsTakes(t *testing.T) {
	q := pipelineQuery(
		&rq.From{Name: "a", Columns: []rq.ColumnDef{{ID: 1, Wildcard: true}}},
		&rq.Take{Limit: int64p(10)},
		&rq.Take{Offset: int64p(2)},
	)

	sql := compactSQL(t, q)
	assert.Equal(t, "SELECT * FROM a LIMIT 8 OFFSET 2", sql)
}

func TestTranslateStarNotAllowed(t *testing.T) {
	q := pipelineQuery(&rq.From{Name: "a", Columns: []rq.ColumnDef{{ID: 1, Wildcard: true}}})

	ctx := NewContext(genericHandler(t))
	ctx.Query().AllowStars = false
	_, err := translateQuery(ctx, q)
	assert.ErrorIs(t, err, errStarNotAllowed)
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name string
		q    *rq.Query
		want string
	}{
		{
			name: "no from",
			q:    pipelineQuery(&rq.Take{Limit: int64p(1)}),
			want: "pipeline has no from",
		},
		{
			name: "duplicate from",
			q: pipelineQuery(
				&rq.From{Name: "a"},
				&rq.From{Name: "b"},
			),
			want: "more than one from",
		},
		{
			name: "unknown column",
			q: pipelineQuery(
				&rq.From{Name: "a"},
				&rq.Select{Columns: []rq.CID{99}},
			),
			want: "unknown column id 99",
		},
		{
			name: "unknown join side",
			q: pipelineQuery(
				&rq.From{Name: "a", Columns: []rq.ColumnDef{{ID: 1, Name: "x"}}},
				&rq.Join{Side: "sideways", With: rq.From{Name: "b"}, On: colRef(1)},
			),
			want: `unknown join side "sideways"`,
		},
		{
			name: "join without condition",
			q: pipelineQuery(
				&rq.From{Name: "a"},
				&rq.Join{Side: "left", With: rq.From{Name: "b"}},
			),
			want: "join needs a condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(genericHandler(t))
			_, err := translateQuery(ctx, tt.q)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// noCTEDialect reports no CTE support; nested relations must inline.
type noCTEDialect struct {
	dialect.Handler
}

func (noCTEDialect) SupportsCTEs() bool { return false }

func TestTranslateDialectWithoutCTEs(t *testing.T) {
	inner := &rq.Relation{Kind: &rq.Pipeline{Transforms: []rq.Transform{
		&rq.From{Name: "b", Columns: []rq.ColumnDef{{ID: 10, Name: "x"}}},
		&rq.Select{Columns: []rq.CID{10}},
	}}}
	q := pipelineQuery(&rq.From{Relation: inner})

	handler := noCTEDialect{Handler: genericHandler(t)}
	ctx := NewContext(handler)
	stmt, err := translateQuery(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM (SELECT x FROM b) AS table_0", format.Compact(stmt, ctx.Dialect))
}
