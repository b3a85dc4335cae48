package pl

import (
	"fmt"
	"strconv"
)

// Literal is a constant value appearing in the source. It doubles as the
// payload of singleton types, so two literals must compare equal exactly
// when they denote the same value.
type Literal interface {
	fmt.Stringer
	literalNode()
}

// Null is the null literal.
type Null struct{}

func (Null) literalNode() {}

func (Null) String() string { return "null" }

// Integer is an integer literal.
type Integer int64

func (Integer) literalNode() {}

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a floating-point literal.
type Float float64

func (Float) literalNode() {}

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Boolean is a boolean literal.
type Boolean bool

func (Boolean) literalNode() {}

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// String is a string literal.
type String string

func (String) literalNode() {}

func (s String) String() string { return strconv.Quote(string(s)) }

// Date is a date literal in ISO-8601 form, e.g. 2023-04-01.
type Date string

func (Date) literalNode() {}

func (d Date) String() string { return "@" + string(d) }

// Time is a time-of-day literal, e.g. 14:30:00.
type Time string

func (Time) literalNode() {}

func (t Time) String() string { return "@" + string(t) }

// Timestamp is a combined date-time literal.
type Timestamp string

func (Timestamp) literalNode() {}

func (t Timestamp) String() string { return "@" + string(t) }

// ValueAndUnit is a quantity with a unit, e.g. 2years or 10minutes.
type ValueAndUnit struct {
	N    int64
	Unit string
}

func (ValueAndUnit) literalNode() {}

func (v ValueAndUnit) String() string {
	return fmt.Sprintf("%d%s", v.N, v.Unit)
}
