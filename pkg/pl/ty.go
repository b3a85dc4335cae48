package pl

import "strings"

// Ty is a type value produced by evaluating a type expression.
type Ty struct {
	Kind TyKind

	// Name is an optional display name, set when the type was bound to a
	// declaration. Used by diagnostics only.
	Name string
}

// TyKind is the tagged union of type shapes.
type TyKind interface {
	tyKind()
}

// Primitive is one of the scalar base types.
type Primitive int

// Scalar base types.
const (
	PrimInt Primitive = iota
	PrimFloat
	PrimBool
	PrimText
	PrimDate
	PrimTime
	PrimTimestamp
)

func (Primitive) tyKind() {}

// String returns the source-level name of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimBool:
		return "bool"
	case PrimText:
		return "text"
	case PrimDate:
		return "date"
	case PrimTime:
		return "time"
	case PrimTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// SingletonTy is a type inhabited by exactly one value.
type SingletonTy struct {
	Value Literal
}

func (*SingletonTy) tyKind() {}

// TupleField is one field of a tuple type.
//
// A field is either a named/positional single field or a wildcard matching
// any number of trailing fields. A tuple contains at most one wildcard and
// it must be last.
type TupleField struct {
	Name     string // Single fields only; empty for positional fields
	Ty       *Ty    // nil means unconstrained
	Wildcard bool
}

// TupleTy is an ordered sequence of fields.
type TupleTy struct {
	Fields []TupleField
}

func (*TupleTy) tyKind() {}

// ArrayTy is a homogeneous element sequence.
type ArrayTy struct {
	Elem *Ty
}

func (*ArrayTy) tyKind() {}

// UnionAlternative is one named alternative of a union type.
type UnionAlternative struct {
	Name string // optional
	Ty   *Ty
}

// UnionTy is a set-theoretic union of alternatives. Alternatives are never
// themselves unions; construction flattens one level.
type UnionTy struct {
	Alternatives []UnionAlternative
}

func (*UnionTy) tyKind() {}

// FuncTy is the type of a function value.
type FuncTy struct {
	Params []*Ty
	Return *Ty
}

func (*FuncTy) tyKind() {}

// RelationTy denotes a named, column-structured result set.
type RelationTy struct {
	Fields []TupleField
}

func (*RelationTy) tyKind() {}

// IsTuple reports whether the type is a tuple.
func (t *Ty) IsTuple() bool {
	_, ok := t.Kind.(*TupleTy)
	return ok
}

// IsFunction reports whether the type is a function type.
func (t *Ty) IsFunction() bool {
	_, ok := t.Kind.(*FuncTy)
	return ok
}

// IsRelation reports whether the type denotes a relation. Both the explicit
// relation kind and an array of tuples qualify.
func (t *Ty) IsRelation() bool {
	switch kind := t.Kind.(type) {
	case *RelationTy:
		return true
	case *ArrayTy:
		return kind.Elem != nil && kind.Elem.IsTuple()
	default:
		return false
	}
}

// String renders the type the way it would be written in source. A bound
// display name wins over the structural rendering.
func (t *Ty) String() string {
	if t == nil {
		return "?"
	}
	if t.Name != "" {
		return t.Name
	}
	switch kind := t.Kind.(type) {
	case Primitive:
		return kind.String()
	case *SingletonTy:
		return kind.Value.String()
	case *TupleTy:
		return renderTupleFields(kind.Fields)
	case *ArrayTy:
		return "[" + kind.Elem.String() + "]"
	case *UnionTy:
		parts := make([]string, 0, len(kind.Alternatives))
		for _, alt := range kind.Alternatives {
			parts = append(parts, alt.Ty.String())
		}
		return strings.Join(parts, " || ")
	case *FuncTy:
		return "func"
	case *RelationTy:
		return "relation" + renderTupleFields(kind.Fields)
	default:
		return "?"
	}
}

func renderTupleFields(fields []TupleField) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch {
		case f.Wildcard && f.Ty != nil:
			sb.WriteString(f.Ty.String())
			sb.WriteString("..")
		case f.Wildcard:
			sb.WriteString("..")
		default:
			if f.Name != "" {
				sb.WriteString(f.Name)
				sb.WriteString(" = ")
			}
			if f.Ty != nil {
				sb.WriteString(f.Ty.String())
			} else {
				sb.WriteString("?")
			}
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// IsSuperTypeOf reports whether every value admitted by sub is admitted by t.
// The relation is total, deterministic, reflexive and transitive, and agrees
// with tuple structural matching on tuple pairs.
func (t *Ty) IsSuperTypeOf(sub *Ty) bool {
	if t == nil || sub == nil {
		return false
	}

	// A union on the found side must be admitted alternative by alternative.
	if subUnion, ok := sub.Kind.(*UnionTy); ok {
		for _, alt := range subUnion.Alternatives {
			if !t.IsSuperTypeOf(alt.Ty) {
				return false
			}
		}
		return true
	}

	switch kind := t.Kind.(type) {
	case *UnionTy:
		for _, alt := range kind.Alternatives {
			if alt.Ty.IsSuperTypeOf(sub) {
				return true
			}
		}
		return false

	case Primitive:
		if subPrim, ok := sub.Kind.(Primitive); ok {
			return kind == subPrim
		}
		if single, ok := sub.Kind.(*SingletonTy); ok {
			return kind == primitiveOf(single.Value)
		}
		return false

	case *SingletonTy:
		if single, ok := sub.Kind.(*SingletonTy); ok {
			return kind.Value == single.Value
		}
		return false

	case *TupleTy:
		if subTuple, ok := sub.Kind.(*TupleTy); ok {
			return tupleFieldsAdmit(kind.Fields, subTuple.Fields)
		}
		return false

	case *ArrayTy:
		if subArr, ok := sub.Kind.(*ArrayTy); ok {
			return kind.Elem.IsSuperTypeOf(subArr.Elem)
		}
		return false

	case *FuncTy:
		return sub.IsFunction()

	case *RelationTy:
		if subRel, ok := sub.Kind.(*RelationTy); ok {
			return tupleFieldsAdmit(kind.Fields, subRel.Fields)
		}
		return sub.IsRelation()

	default:
		return false
	}
}

// tupleFieldsAdmit walks expected fields against found fields in lock-step,
// mirroring the mutating structural matcher but as a pure comparison.
func tupleFieldsAdmit(expected, found []TupleField) bool {
	i := 0
	for _, exp := range expected {
		if exp.Wildcard {
			for ; i < len(found); i++ {
				if exp.Ty != nil && found[i].Ty != nil && !exp.Ty.IsSuperTypeOf(found[i].Ty) {
					return false
				}
			}
			return true
		}
		if i >= len(found) {
			return false
		}
		if exp.Ty != nil && found[i].Ty != nil && !exp.Ty.IsSuperTypeOf(found[i].Ty) {
			return false
		}
		i++
	}
	return i == len(found)
}

// primitiveOf maps a literal to the primitive that admits it. Returns -1 for
// literals with no primitive type (null, quantities).
func primitiveOf(lit Literal) Primitive {
	switch lit.(type) {
	case Integer:
		return PrimInt
	case Float:
		return PrimFloat
	case Boolean:
		return PrimBool
	case String:
		return PrimText
	case Date:
		return PrimDate
	case Time:
		return PrimTime
	case Timestamp:
		return PrimTimestamp
	default:
		return Primitive(-1)
	}
}
