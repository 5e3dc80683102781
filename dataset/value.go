package dataset

import (
	"math"
	"strconv"
)

// Kind tags the representation held by a Value.
type Kind uint8

const (
	// KindMissing marks an absent value.
	KindMissing Kind = iota
	// KindNumber marks a float64 value.
	KindNumber
	// KindString marks a string value, used for categorical data such as
	// labels or bin names.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single cell or label. The zero Value is missing.
//
// Values are comparable with == and usable as map keys: NaN is normalised to
// the missing Value on construction, so two missing Values compare equal.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric Value. NaN yields the missing Value.
func Num(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

// Int returns a numeric Value holding i.
func Int(i int) Value {
	return Value{kind: KindNumber, num: float64(i)}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Missing returns the missing Value.
func Missing() Value {
	return Value{}
}

// Nums converts a slice of floats to Values.
func Nums(fs ...float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Num(f)
	}
	return out
}

// Strs converts a slice of strings to Values.
func Strs(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = Str(s)
	}
	return out
}

// Kind reports the representation of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsNumber reports whether v holds a float64.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric content of v. ok is false for strings and missing
// values, in which case f is NaN.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return math.NaN(), false
	}
	return v.num, true
}

// String formats v. Missing values format as "NaN".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	default:
		return "NaN"
	}
}

// Interface returns v as a float64, a string, or nil when missing.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		return nil
	}
}

// matches is the equality used by filters: a missing value never matches
// anything, itself included.
func (v Value) matches(other Value) bool {
	if v.kind == KindMissing || other.kind == KindMissing {
		return false
	}
	return v == other
}

// matchesAny reports whether v matches one of candidates.
func (v Value) matchesAny(candidates []Value) bool {
	for _, c := range candidates {
		if v.matches(c) {
			return true
		}
	}
	return false
}
