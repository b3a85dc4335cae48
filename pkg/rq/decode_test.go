package rq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/prql/pkg/pl"
)

func TestDecodeQuery(t *testing.T) {
	doc := `
relation:
  pipeline:
    - from:
        name: albums
        columns:
          - id: 1
            name: title
          - id: 2
            wildcard: true
    - compute:
        id: 3
        name: title_len
        expr:
          call:
            name: length
            args:
              - column: 1
    - filter:
        expr:
          binary:
            left: {column: 3}
            op: ">"
            right: {literal: {int: 10}}
    - select: [1, 3]
    - sort:
        - column: 3
          desc: true
    - take:
        limit: 5
`
	q, err := DecodeQuery([]byte(doc))
	require.NoError(t, err)

	transforms, err := q.MainPipeline()
	require.NoError(t, err)
	require.Len(t, transforms, 6)

	from, ok := transforms[0].(*From)
	require.True(t, ok)
	assert.Equal(t, "albums", from.Name)
	require.Len(t, from.Columns, 2)
	assert.Equal(t, CID(1), from.Columns[0].ID)
	assert.Equal(t, "title", from.Columns[0].Name)
	assert.True(t, from.Columns[1].Wildcard)

	compute, ok := transforms[1].(*Compute)
	require.True(t, ok)
	assert.Equal(t, CID(3), compute.ID)
	call, ok := compute.Expr.Kind.(*Call)
	require.True(t, ok)
	assert.Equal(t, "length", call.Name)
	require.Len(t, call.Args, 1)

	filter, ok := transforms[2].(*Filter)
	require.True(t, ok)
	binary, ok := filter.Expr.Kind.(*Binary)
	require.True(t, ok)
	assert.Equal(t, ">", binary.Op)
	lit, ok := binary.Right.Kind.(*Literal)
	require.True(t, ok)
	assert.Equal(t, pl.Integer(10), lit.Value)

	sel, ok := transforms[3].(*Select)
	require.True(t, ok)
	assert.Equal(t, []CID{1, 3}, sel.Columns)

	sort, ok := transforms[4].(*Sort)
	require.True(t, ok)
	require.Len(t, sort.Items, 1)
	assert.True(t, sort.Items[0].Desc)

	take, ok := transforms[5].(*Take)
	require.True(t, ok)
	require.NotNil(t, take.Limit)
	assert.Equal(t, int64(5), *take.Limit)
	assert.Nil(t, take.Offset)
}

func TestDecodeQueryExternRelation(t *testing.T) {
	q, err := DecodeQuery([]byte("relation:\n  extern: invoices\n"))
	require.NoError(t, err)

	extern, ok := q.Relation.Kind.(*ExternRef)
	require.True(t, ok)
	assert.Equal(t, "invoices", extern.Name)

	_, err = q.MainPipeline()
	assert.ErrorIs(t, err, ErrNotPipeline)
}

func TestDecodeQueryJoinAndAggregate(t *testing.T) {
	doc := `
relation:
  pipeline:
    - from:
        name: tracks
        columns:
          - id: 1
            name: album_id
          - id: 2
            name: ms
    - join:
        side: left
        with:
          name: albums
          alias: al
          columns:
            - id: 3
              name: id
        on:
          binary:
            left: {column: 1}
            op: "="
            right: {column: 3}
    - aggregate:
        group_by: [1]
        computes:
          - id: 4
            name: total_ms
            expr:
              call:
                name: sum
                args:
                  - column: 2
`
	q, err := DecodeQuery([]byte(doc))
	require.NoError(t, err)

	transforms, err := q.MainPipeline()
	require.NoError(t, err)
	require.Len(t, transforms, 3)

	join, ok := transforms[1].(*Join)
	require.True(t, ok)
	assert.Equal(t, "left", join.Side)
	assert.Equal(t, "albums", join.With.Name)
	assert.Equal(t, "al", join.With.Alias)
	require.NotNil(t, join.On)

	agg, ok := transforms[2].(*Aggregate)
	require.True(t, ok)
	assert.Equal(t, []CID{1}, agg.GroupBy)
	require.Len(t, agg.Computes, 1)
	assert.Equal(t, "total_ms", agg.Computes[0].Name)
}

func TestDecodeQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "relation without kind",
			doc:  "relation:\n  alias: x\n",
			want: "relation needs an `extern` or `pipeline` key",
		},
		{
			name: "unknown transform",
			doc:  "relation:\n  pipeline:\n    - window: {}\n",
			want: "transform needs one of",
		},
		{
			name: "empty expression",
			doc:  "relation:\n  pipeline:\n    - filter:\n        expr: {}\n",
			want: "expression needs one of",
		},
		{
			name: "empty literal",
			doc:  "relation:\n  pipeline:\n    - filter:\n        expr:\n          literal: {}\n",
			want: "literal needs one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuery([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
