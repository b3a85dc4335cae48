package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	d, err := Get("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	// lookup is case-insensitive
	d, err = Get("PostgreS")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Get("oracle")
	require.ErrorIs(t, err, ErrUnknownDialect)
}

func TestList(t *testing.T) {
	names := List()
	assert.Contains(t, names, Generic)
	assert.Contains(t, names, "duckdb")
	assert.IsIncreasing(t, names)
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		ident   string
		want    string
	}{
		{name: "plain stays bare", dialect: "generic", ident: "employees", want: "employees"},
		{name: "underscore stays bare", dialect: "generic", ident: "_tmp_1", want: "_tmp_1"},
		{name: "reserved word", dialect: "generic", ident: "select", want: `"select"`},
		{name: "space", dialect: "generic", ident: "column name", want: `"column name"`},
		{name: "leading digit", dialect: "generic", ident: "1st", want: `"1st"`},
		{name: "embedded quote doubled", dialect: "generic", ident: `a"b`, want: `"a""b"`},
		{name: "mysql backticks", dialect: "mysql", ident: "order", want: "`order`"},
		{name: "mssql brackets", dialect: "mssql", ident: "group", want: "[group]"},
		{name: "mssql bracket escape", dialect: "mssql", ident: "a]b", want: "[a]]b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Get(tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.QuoteIdent(tt.ident))
		})
	}
}

func TestSupportLevel(t *testing.T) {
	d, err := Get("clickhouse")
	require.NoError(t, err)
	assert.Equal(t, Unsupported, d.SupportLevel())
	assert.Equal(t, "unsupported", d.SupportLevel().String())

	d, err = Get("duckdb")
	require.NoError(t, err)
	assert.Equal(t, Supported, d.SupportLevel())
}
