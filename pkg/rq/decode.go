package rq

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/prql/pkg/pl"
)

// DecodeQuery parses a YAML query document.
func DecodeQuery(data []byte) (*Query, error) {
	var q Query
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decoding query: %w", err)
	}
	return &q, nil
}

// UnmarshalYAML decodes a relation, which is a single-key map: either
// `extern: <table>` or `pipeline: [<transform>, ...]`.
func (r *Relation) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		Extern   *string        `yaml:"extern"`
		Pipeline []transformDoc `yaml:"pipeline"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	switch {
	case doc.Extern != nil:
		r.Kind = &ExternRef{Name: *doc.Extern}
	case doc.Pipeline != nil:
		transforms := make([]Transform, 0, len(doc.Pipeline))
		for _, td := range doc.Pipeline {
			t, err := td.transform()
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			transforms = append(transforms, t)
		}
		r.Kind = &Pipeline{Transforms: transforms}
	default:
		return fmt.Errorf("line %d: relation needs an `extern` or `pipeline` key", node.Line)
	}
	return nil
}

// transformDoc mirrors the YAML shape of a transform: a map with exactly one
// key naming the transform kind.
type transformDoc struct {
	From      *From       `yaml:"from"`
	Compute   *Compute    `yaml:"compute"`
	Select    *[]CID      `yaml:"select"`
	Filter    *Filter     `yaml:"filter"`
	Sort      *[]SortItem `yaml:"sort"`
	Take      *Take       `yaml:"take"`
	Join      *Join       `yaml:"join"`
	Aggregate *Aggregate  `yaml:"aggregate"`
}

func (d transformDoc) transform() (Transform, error) {
	switch {
	case d.From != nil:
		return d.From, nil
	case d.Compute != nil:
		return d.Compute, nil
	case d.Select != nil:
		return &Select{Columns: *d.Select}, nil
	case d.Filter != nil:
		return d.Filter, nil
	case d.Sort != nil:
		return &Sort{Items: *d.Sort}, nil
	case d.Take != nil:
		return d.Take, nil
	case d.Join != nil:
		return d.Join, nil
	case d.Aggregate != nil:
		return d.Aggregate, nil
	}
	return nil, fmt.Errorf("transform needs one of: from, compute, select, filter, sort, take, join, aggregate")
}

// UnmarshalYAML decodes an expression, a single-key map naming the
// expression kind.
func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		Column  *CID         `yaml:"column"`
		Literal *literalDoc  `yaml:"literal"`
		Binary  *binaryDoc   `yaml:"binary"`
		Call    *callDoc     `yaml:"call"`
		SString *[]interpDoc `yaml:"sstring"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	switch {
	case doc.Column != nil:
		e.Kind = &ColumnRef{Column: *doc.Column}
	case doc.Literal != nil:
		value, err := doc.Literal.literal()
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		e.Kind = &Literal{Value: value}
	case doc.Binary != nil:
		e.Kind = &Binary{Left: doc.Binary.Left, Op: doc.Binary.Op, Right: doc.Binary.Right}
	case doc.Call != nil:
		e.Kind = &Call{Name: doc.Call.Name, Args: doc.Call.Args, Star: doc.Call.Star}
	case doc.SString != nil:
		items := make([]InterpolateItem, 0, len(*doc.SString))
		for _, id := range *doc.SString {
			item, err := id.item()
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			items = append(items, item)
		}
		e.Kind = &SString{Items: items}
	default:
		return fmt.Errorf("line %d: expression needs one of: column, literal, binary, call, sstring", node.Line)
	}
	return nil
}

type binaryDoc struct {
	Left  *Expr  `yaml:"left"`
	Op    string `yaml:"op"`
	Right *Expr  `yaml:"right"`
}

type callDoc struct {
	Name string  `yaml:"name"`
	Args []*Expr `yaml:"args"`
	Star bool    `yaml:"star"`
}

type interpDoc struct {
	Text *string `yaml:"text"`
	Expr *Expr   `yaml:"expr"`
}

func (d interpDoc) item() (InterpolateItem, error) {
	switch {
	case d.Text != nil:
		return InterpolateItem{Text: *d.Text}, nil
	case d.Expr != nil:
		return InterpolateItem{Expr: d.Expr}, nil
	}
	return InterpolateItem{}, fmt.Errorf("s-string item needs a `text` or `expr` key")
}

type literalDoc struct {
	Null      bool     `yaml:"null"`
	Int       *int64   `yaml:"int"`
	Float     *float64 `yaml:"float"`
	Bool      *bool    `yaml:"bool"`
	String    *string  `yaml:"string"`
	Date      *string  `yaml:"date"`
	Time      *string  `yaml:"time"`
	Timestamp *string  `yaml:"timestamp"`
}

func (d literalDoc) literal() (pl.Literal, error) {
	switch {
	case d.Null:
		return pl.Null{}, nil
	case d.Int != nil:
		return pl.Integer(*d.Int), nil
	case d.Float != nil:
		return pl.Float(*d.Float), nil
	case d.Bool != nil:
		return pl.Boolean(*d.Bool), nil
	case d.String != nil:
		return pl.String(*d.String), nil
	case d.Date != nil:
		return pl.Date(*d.Date), nil
	case d.Time != nil:
		return pl.Time(*d.Time), nil
	case d.Timestamp != nil:
		return pl.Timestamp(*d.Timestamp), nil
	}
	return nil, fmt.Errorf("literal needs one of: null, int, float, bool, string, date, time, timestamp")
}
