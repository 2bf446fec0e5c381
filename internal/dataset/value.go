// Package dataset provides the in-memory tabular model shared by the
// converter and the normalizer, and its CSV representation.
package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind int

// Value kinds.
const (
	KindAbsent Kind = iota
	KindText
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Value is a single cell: absent, text or a decimal number.
type Value struct {
	text string
	num  float64
	kind Kind
}

// Absent returns the absent value.
func Absent() Value {
	return Value{}
}

// Text returns a text value. The empty string is kept as text.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Cell converts a raw CSV cell into a value; empty cells are absent.
func Cell(s string) Value {
	if s == "" {
		return Absent()
	}

	return Text(s)
}

// Kind returns the value kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text returns the text of a text value and whether it is one.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Number returns the number of a numeric value and whether it is one.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String renders the value as it is written to CSV.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return FormatNumber(v.num)
	default:
		return ""
	}
}

// FormatNumber renders a float the way downstream consumers of the
// normalized files expect: shortest representation, always with a
// fractional part ("1.0", "199.99").
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
