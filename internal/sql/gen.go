package sql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/prql/pkg/core"
	"github.com/leapstack-labs/prql/pkg/format"
	"github.com/leapstack-labs/prql/pkg/pl"
	"github.com/leapstack-labs/prql/pkg/rq"
)

var errStarNotAllowed = errors.New("`*` is not allowed in this position")

// translateQuery generates the SQL AST for a query's main relation. CTEs
// accumulated from nested relations are attached to the outermost statement.
func translateQuery(ctx *Context, q *rq.Query) (*core.SelectStmt, error) {
	transforms, err := q.MainPipeline()
	if err != nil {
		return nil, err
	}
	stmt, err := genQuery(ctx, transforms)
	if err != nil {
		return nil, err
	}
	stmt.With = append(ctx.TakeCTEs(), stmt.With...)
	return stmt, nil
}

func genQuery(ctx *Context, transforms []rq.Transform) (*core.SelectStmt, error) {
	stmt := &core.SelectStmt{}
	if countSources(transforms) == 1 {
		ctx.Query().OmitIdentPrefix = true
	}

	var selected []rq.CID
	haveSelect := false
	aggregated := false

	for _, t := range transforms {
		switch t := t.(type) {
		case *rq.From:
			if stmt.From != nil {
				return nil, fmt.Errorf("pipeline has more than one from")
			}
			ref, err := genSource(ctx, t)
			if err != nil {
				return nil, err
			}
			stmt.From = ref

		case *rq.Compute:
			declareCompute(ctx, t)

		case *rq.Filter:
			cond, err := genPreProjection(ctx, t.Expr)
			if err != nil {
				return nil, err
			}
			if aggregated {
				stmt.Having = conjoin(stmt.Having, cond)
			} else {
				stmt.Where = conjoin(stmt.Where, cond)
			}

		case *rq.Join:
			join, err := genJoin(ctx, t)
			if err != nil {
				return nil, err
			}
			stmt.Joins = append(stmt.Joins, *join)

		case *rq.Aggregate:
			aggregated = true
			haveSelect = true
			// selected may alias a Select transform's Columns slice, so
			// start a fresh one rather than truncating in place.
			selected = nil
			for _, cid := range t.GroupBy {
				expr, err := genPreProjection(ctx, &rq.Expr{Kind: &rq.ColumnRef{Column: cid}})
				if err != nil {
					return nil, err
				}
				stmt.GroupBy = append(stmt.GroupBy, expr)
				selected = append(selected, cid)
			}
			for i := range t.Computes {
				declareCompute(ctx, &t.Computes[i])
				selected = append(selected, t.Computes[i].ID)
			}

		case *rq.Select:
			selected = t.Columns
			haveSelect = true

		case *rq.Sort:
			items, err := genSort(ctx, t.Items)
			if err != nil {
				return nil, err
			}
			stmt.OrderBy = items

		case *rq.Take:
			foldTake(stmt, t)

		default:
			return nil, fmt.Errorf("unsupported transform %T", t)
		}
	}

	if stmt.From == nil {
		return nil, fmt.Errorf("pipeline has no from")
	}

	columns, err := genProjection(ctx, selected, haveSelect)
	if err != nil {
		return nil, err
	}
	stmt.Columns = columns
	return stmt, nil
}

func countSources(transforms []rq.Transform) int {
	n := 0
	for _, t := range transforms {
		switch t.(type) {
		case *rq.From, *rq.Join:
			n++
		}
	}
	return n
}

func declareCompute(ctx *Context, c *rq.Compute) {
	ctx.Anchor.Declare(&ColumnDecl{ID: c.ID, Name: c.Name, Expr: c.Expr, Window: c.Window})
}

// conjoin ANDs a further condition onto an existing clause.
func conjoin(existing, cond core.Expr) core.Expr {
	if existing == nil {
		return cond
	}
	return &core.BinaryExpr{Left: existing, Op: "AND", Right: cond}
}

// genSource resolves a pipeline source into a table reference and declares
// its columns. Inline relations are hoisted into CTEs when the query and
// dialect allow it, otherwise they stay nested sub-queries.
func genSource(ctx *Context, from *rq.From) (*core.TableRef, error) {
	ref := &core.TableRef{Alias: from.Alias}
	prefix := from.Alias

	switch {
	case from.Relation != nil:
		nested, err := genNestedRelation(ctx, from.Relation)
		if err != nil {
			return nil, err
		}
		if ctx.Query().AllowCTEs && ctx.Dialect.SupportsCTEs() {
			name := ctx.Anchor.NextTableName()
			ctx.AddCTE(core.CTE{Name: name, Query: nested})
			ref.Name = name
			if prefix == "" {
				prefix = name
			}
		} else {
			if ref.Alias == "" {
				ref.Alias = ctx.Anchor.NextTableName()
			}
			ref.Query = nested
			prefix = ref.Alias
		}

	case from.Name != "":
		ref.Name = from.Name
		if prefix == "" {
			prefix = from.Name
		}

	default:
		return nil, fmt.Errorf("source needs a table name or a relation")
	}

	for _, col := range from.Columns {
		ctx.Anchor.Declare(&ColumnDecl{
			ID:       col.ID,
			Name:     col.Name,
			Table:    prefix,
			Wildcard: col.Wildcard,
		})
	}
	return ref, nil
}

func genNestedRelation(ctx *Context, rel *rq.Relation) (*core.SelectStmt, error) {
	allowCTEs := ctx.Query().AllowCTEs && ctx.Dialect.SupportsCTEs()
	ctx.PushQuery()
	defer ctx.PopQuery()
	*ctx.Query() = defaultQueryOpts()
	ctx.Query().AllowCTEs = allowCTEs

	switch kind := rel.Kind.(type) {
	case *rq.ExternRef:
		return &core.SelectStmt{
			Columns: []core.SelectItem{{Expr: &core.StarExpr{}}},
			From:    &core.TableRef{Name: kind.Name},
		}, nil
	case *rq.Pipeline:
		return genQuery(ctx, kind.Transforms)
	}
	return nil, fmt.Errorf("unsupported relation kind %T", rel.Kind)
}

func genJoin(ctx *Context, j *rq.Join) (*core.Join, error) {
	var joinType string
	switch j.Side {
	case "", "inner":
		joinType = ""
	case "left":
		joinType = "LEFT"
	case "right":
		joinType = "RIGHT"
	case "full":
		joinType = "FULL"
	default:
		return nil, fmt.Errorf("unknown join side %q", j.Side)
	}

	ref, err := genSource(ctx, &j.With)
	if err != nil {
		return nil, err
	}
	if j.On == nil {
		return nil, fmt.Errorf("join needs a condition")
	}
	on, err := genPreProjection(ctx, j.On)
	if err != nil {
		return nil, err
	}
	return &core.Join{Type: joinType, Table: *ref, On: on}, nil
}

// genPreProjection generates an expression in pre-projection position:
// column references resolve to source columns and computed columns are
// inlined, since SQL forbids output aliases here.
func genPreProjection(ctx *Context, e *rq.Expr) (core.Expr, error) {
	ctx.PushQuery()
	defer ctx.PopQuery()
	ctx.Query().PreProjection = true
	return genExpr(ctx, e)
}

func genSort(ctx *Context, items []rq.SortItem) ([]core.OrderByItem, error) {
	out := make([]core.OrderByItem, 0, len(items))
	for _, item := range items {
		decl, err := ctx.Anchor.Lookup(item.Column)
		if err != nil {
			return nil, err
		}
		if decl.Name == "" {
			return nil, fmt.Errorf("column %d has no name to sort by", item.Column)
		}
		out = append(out, core.OrderByItem{
			Expr: &core.ColumnRef{Column: decl.Name},
			Desc: item.Desc,
		})
	}
	return out, nil
}

// foldTake intersects the statement's row window with a further take:
// offsets add up, the remaining limit shrinks.
func foldTake(stmt *core.SelectStmt, t *rq.Take) {
	if t.Offset != nil && *t.Offset > 0 {
		offset := *t.Offset
		if stmt.Limit != nil {
			remaining := *stmt.Limit - offset
			if remaining < 0 {
				remaining = 0
			}
			stmt.Limit = &remaining
		}
		if stmt.Offset != nil {
			offset += *stmt.Offset
		}
		stmt.Offset = &offset
	}
	if t.Limit != nil {
		if stmt.Limit == nil || *t.Limit < *stmt.Limit {
			limit := *t.Limit
			stmt.Limit = &limit
		}
	}
}

func genProjection(ctx *Context, selected []rq.CID, haveSelect bool) ([]core.SelectItem, error) {
	if !haveSelect {
		if !ctx.Query().AllowStars {
			return nil, errStarNotAllowed
		}
		return []core.SelectItem{{Expr: &core.StarExpr{}}}, nil
	}

	items := make([]core.SelectItem, 0, len(selected))
	for _, cid := range selected {
		decl, err := ctx.Anchor.Lookup(cid)
		if err != nil {
			return nil, err
		}
		item, err := genProjectionItem(ctx, decl)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func genProjectionItem(ctx *Context, decl *ColumnDecl) (core.SelectItem, error) {
	switch {
	case decl.Wildcard:
		if !ctx.Query().AllowStars {
			return core.SelectItem{}, errStarNotAllowed
		}
		table := decl.Table
		if ctx.Query().OmitIdentPrefix {
			table = ""
		}
		return core.SelectItem{Expr: &core.StarExpr{Table: table}}, nil

	case decl.Expr != nil:
		expr, err := genComputed(ctx, decl)
		if err != nil {
			return core.SelectItem{}, err
		}
		return core.SelectItem{Expr: expr, Alias: decl.Name}, nil

	default:
		table := decl.Table
		if ctx.Query().OmitIdentPrefix {
			table = ""
		}
		return core.SelectItem{Expr: &core.ColumnRef{Table: table, Column: decl.Name}}, nil
	}
}

// genComputed generates a computed column's defining expression, attaching
// the OVER clause for windowed computes.
func genComputed(ctx *Context, decl *ColumnDecl) (core.Expr, error) {
	ctx.PushQuery()
	defer ctx.PopQuery()
	ctx.Query().PreProjection = true

	if decl.Window == nil {
		return genExpr(ctx, decl.Expr)
	}

	ctx.Query().WindowFunction = true
	expr, err := genExpr(ctx, decl.Expr)
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*core.FuncCall)
	if !ok {
		return nil, fmt.Errorf("window requires a function call, got %T", expr)
	}

	over := &core.WindowSpec{}
	for _, cid := range decl.Window.PartitionBy {
		part, err := genExpr(ctx, &rq.Expr{Kind: &rq.ColumnRef{Column: cid}})
		if err != nil {
			return nil, err
		}
		over.PartitionBy = append(over.PartitionBy, part)
	}
	for _, item := range decl.Window.OrderBy {
		key, err := genExpr(ctx, &rq.Expr{Kind: &rq.ColumnRef{Column: item.Column}})
		if err != nil {
			return nil, err
		}
		over.OrderBy = append(over.OrderBy, core.OrderByItem{Expr: key, Desc: item.Desc})
	}
	call.Over = over
	return call, nil
}

func genExpr(ctx *Context, e *rq.Expr) (core.Expr, error) {
	switch kind := e.Kind.(type) {
	case *rq.ColumnRef:
		return genColumnRef(ctx, kind.Column)

	case *rq.Literal:
		return genLiteral(kind.Value)

	case *rq.Binary:
		left, err := genExpr(ctx, kind.Left)
		if err != nil {
			return nil, err
		}
		right, err := genExpr(ctx, kind.Right)
		if err != nil {
			return nil, err
		}
		if kind.Op == "??" {
			return &core.FuncCall{Name: "coalesce", Args: []core.Expr{left, right}}, nil
		}
		op, err := mapBinaryOp(kind.Op)
		if err != nil {
			return nil, err
		}
		return &core.BinaryExpr{Left: left, Op: op, Right: right}, nil

	case *rq.Call:
		if kind.Star && !ctx.Query().AllowStars {
			return nil, errStarNotAllowed
		}
		args := make([]core.Expr, 0, len(kind.Args))
		for _, arg := range kind.Args {
			a, err := genExpr(ctx, arg)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return &core.FuncCall{Name: kind.Name, Args: args, Star: kind.Star}, nil

	case *rq.SString:
		var b strings.Builder
		for _, item := range kind.Items {
			if item.Expr == nil {
				b.WriteString(item.Text)
				continue
			}
			embedded, err := genExpr(ctx, item.Expr)
			if err != nil {
				return nil, err
			}
			b.WriteString(format.Expr(embedded, ctx.Dialect))
		}
		return &core.RawSQL{Text: b.String()}, nil
	}
	return nil, fmt.Errorf("unsupported expression kind %T", e.Kind)
}

func genColumnRef(ctx *Context, cid rq.CID) (core.Expr, error) {
	decl, err := ctx.Anchor.Lookup(cid)
	if err != nil {
		return nil, err
	}

	if ctx.Query().PreProjection {
		if decl.Expr != nil {
			return genExpr(ctx, decl.Expr)
		}
		if decl.Wildcard {
			return nil, fmt.Errorf("cannot reference a wildcard column in an expression")
		}
		table := decl.Table
		if ctx.Query().OmitIdentPrefix {
			table = ""
		}
		return &core.ColumnRef{Table: table, Column: decl.Name}, nil
	}

	if decl.Name == "" {
		return nil, fmt.Errorf("column %d has no output name", cid)
	}
	return &core.ColumnRef{Column: decl.Name}, nil
}

func genLiteral(lit pl.Literal) (core.Expr, error) {
	switch v := lit.(type) {
	case pl.Null:
		return &core.Literal{Type: core.LiteralNull}, nil
	case pl.Integer:
		return &core.Literal{Type: core.LiteralNumber, Value: strconv.FormatInt(int64(v), 10)}, nil
	case pl.Float:
		return &core.Literal{Type: core.LiteralNumber, Value: strconv.FormatFloat(float64(v), 'g', -1, 64)}, nil
	case pl.Boolean:
		return &core.Literal{Type: core.LiteralBool, Value: strconv.FormatBool(bool(v))}, nil
	case pl.String:
		return &core.Literal{Type: core.LiteralString, Value: string(v)}, nil
	case pl.Date:
		return &core.Literal{Type: core.LiteralDate, Value: string(v)}, nil
	case pl.Time:
		return &core.Literal{Type: core.LiteralTime, Value: string(v)}, nil
	case pl.Timestamp:
		return &core.Literal{Type: core.LiteralTimestamp, Value: string(v)}, nil
	}
	return nil, fmt.Errorf("literal %s cannot be expressed in SQL", lit)
}

func mapBinaryOp(op string) (string, error) {
	switch op {
	case "*", "/", "%", "+", "-", ">", "<", ">=", "<=":
		return op, nil
	case "=", "==":
		return "=", nil
	case "!=":
		return "<>", nil
	case "&&", "and":
		return "AND", nil
	case "||", "or":
		return "OR", nil
	}
	return "", fmt.Errorf("unknown binary operator %q", op)
}
