package sql

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/prql/internal/version"
	"github.com/leapstack-labs/prql/pkg/core"
	"github.com/leapstack-labs/prql/pkg/dialect"
	"github.com/leapstack-labs/prql/pkg/format"
	"github.com/leapstack-labs/prql/pkg/rq"
)

// Options control SQL text generation.
type Options struct {
	// Target is "sql" for generic SQL or "sql.<dialect>" for a concrete
	// dialect.
	Target string

	// Format renders indented multi-line SQL and appends a trailing newline.
	Format bool

	// SignatureComment appends a comment identifying the compiler version
	// and target.
	SignatureComment bool
}

// DefaultOptions returns the options used when the caller specifies none.
func DefaultOptions() Options {
	return Options{Target: "sql", Format: true, SignatureComment: true}
}

// ParseTarget resolves a compilation target to a dialect handler. The
// second result reports whether a concrete dialect was requested, as
// opposed to generic SQL.
func ParseTarget(target string) (dialect.Handler, bool, error) {
	if target == "" || target == "sql" {
		handler, err := dialect.Get(dialect.Generic)
		return handler, false, err
	}
	name, ok := strings.CutPrefix(target, "sql.")
	if !ok {
		return nil, false, fmt.Errorf("invalid target %q, expected `sql` or `sql.<dialect>`", target)
	}
	handler, err := dialect.Get(name)
	if err != nil {
		return nil, false, err
	}
	return handler, true, nil
}

// Compile translates a relational query into SQL text.
func Compile(q *rq.Query, opts Options) (string, error) {
	handler, concrete, err := ParseTarget(opts.Target)
	if err != nil {
		return "", err
	}

	ctx := NewContext(handler)
	stmt, err := translateQuery(ctx, q)
	if err != nil {
		return "", err
	}

	var sql string
	if opts.Format {
		sql = format.Format(stmt, handler) + "\n"
	} else {
		sql = format.Compact(stmt, handler)
	}

	if opts.SignatureComment {
		pre, post := " ", ""
		if opts.Format {
			pre, post = "\n", "\n"
		}
		target := ""
		if concrete {
			target = fmt.Sprintf("target:sql.%s ", handler.Name())
		}
		sql += fmt.Sprintf(
			"%s-- Generated by PRQL compiler version:%s %s(https://prql-lang.org)%s",
			pre, version.Version, target, post,
		)
	}
	return sql, nil
}

// SQLTransform pairs a relational transform with the SQL clause it lands
// in. It is a debugging aid with no stability guarantees.
type SQLTransform struct {
	Clause    string
	Transform rq.Transform
}

// Preprocess classifies the main relation's transforms by target SQL
// clause without generating any SQL. It fails if the main relation is not
// pipeline-shaped.
func Preprocess(q *rq.Query) ([]SQLTransform, error) {
	transforms, err := q.MainPipeline()
	if err != nil {
		return nil, err
	}

	out := make([]SQLTransform, 0, len(transforms))
	aggregated := false
	for _, t := range transforms {
		var clause string
		switch t.(type) {
		case *rq.From:
			clause = "FROM"
		case *rq.Join:
			clause = "JOIN"
		case *rq.Compute, *rq.Select:
			clause = "SELECT"
		case *rq.Filter:
			if aggregated {
				clause = "HAVING"
			} else {
				clause = "WHERE"
			}
		case *rq.Aggregate:
			aggregated = true
			clause = "GROUP BY"
		case *rq.Sort:
			clause = "ORDER BY"
		case *rq.Take:
			clause = "LIMIT"
		default:
			return nil, fmt.Errorf("unsupported transform %T", t)
		}
		out = append(out, SQLTransform{Clause: clause, Transform: t})
	}
	return out, nil
}

// Anchor runs preprocessing and anchoring on the main relation with the
// generic dialect and returns the resulting SQL AST. It is a debugging aid
// with no stability guarantees.
func Anchor(q *rq.Query) (*core.SelectStmt, error) {
	handler, err := dialect.Get(dialect.Generic)
	if err != nil {
		return nil, err
	}
	return translateQuery(NewContext(handler), q)
}
