package dataset

import (
	"math"
)

// ColumnKind distinguishes numeric feature storage from categorical storage.
type ColumnKind uint8

const (
	// Numeric columns hold float64 values; NaN marks a missing entry.
	Numeric ColumnKind = iota
	// Categorical columns hold arbitrary Values, typically strings produced
	// by binning with named bins.
	Categorical
)

func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// column is the storage for one feature. Exactly one of nums or vals is used,
// according to kind.
type column struct {
	name string
	kind ColumnKind
	nums []float64
	vals []Value
}

func newNumericColumn(name string, nums []float64) *column {
	return &column{name: name, kind: Numeric, nums: nums}
}

// newColumnFromValues stores values numerically when every entry is a number
// or missing, and categorically otherwise.
func newColumnFromValues(name string, values []Value) *column {
	if allNumeric(values) {
		nums := make([]float64, len(values))
		for i, v := range values {
			nums[i], _ = v.Float()
		}
		return newNumericColumn(name, nums)
	}
	vals := make([]Value, len(values))
	copy(vals, values)
	return &column{name: name, kind: Categorical, vals: vals}
}

func allNumeric(values []Value) bool {
	for _, v := range values {
		if v.kind == KindString {
			return false
		}
	}
	return true
}

func (c *column) len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.vals)
}

func (c *column) at(i int) Value {
	if c.kind == Numeric {
		return Num(c.nums[i])
	}
	return c.vals[i]
}

func (c *column) isMissing(i int) bool {
	if c.kind == Numeric {
		return math.IsNaN(c.nums[i])
	}
	return c.vals[i].IsMissing()
}

func (c *column) hasMissing() bool {
	for i := 0; i < c.len(); i++ {
		if c.isMissing(i) {
			return true
		}
	}
	return false
}

func (c *column) values() []Value {
	out := make([]Value, c.len())
	for i := range out {
		out[i] = c.at(i)
	}
	return out
}

func (c *column) clone() *column {
	out := &column{name: c.name, kind: c.kind}
	if c.kind == Numeric {
		out.nums = append([]float64(nil), c.nums...)
	} else {
		out.vals = append([]Value(nil), c.vals...)
	}
	return out
}

// take returns a new column holding the entries at positions, in that order.
func (c *column) take(positions []int) *column {
	out := &column{name: c.name, kind: c.kind}
	if c.kind == Numeric {
		out.nums = make([]float64, len(positions))
		for i, p := range positions {
			out.nums[i] = c.nums[p]
		}
		return out
	}
	out.vals = make([]Value, len(positions))
	for i, p := range positions {
		out.vals[i] = c.vals[p]
	}
	return out
}

// toCategorical converts a numeric column in place.
func (c *column) toCategorical() {
	if c.kind == Categorical {
		return
	}
	c.vals = c.values()
	c.nums = nil
	c.kind = Categorical
}
