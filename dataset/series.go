package dataset

// Series is an ordered sequence of float64 results keyed by sample id or
// feature name. Keys and Values have equal length.
type Series[K comparable] struct {
	Keys   []K
	Values []float64
}

// Len returns the number of entries.
func (s Series[K]) Len() int { return len(s.Keys) }

// Get returns the value stored under key.
func (s Series[K]) Get(key K) (float64, bool) {
	for i, k := range s.Keys {
		if k == key {
			return s.Values[i], true
		}
	}
	return 0, false
}

// ValueCount pairs a distinct value with the number of times it occurs.
type ValueCount struct {
	Value Value
	Count int
}
