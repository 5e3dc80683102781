package dataset

import (
	"sort"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Labels returns the label vector in row order, or nil when unlabelled.
func (ds *DataSet) Labels() []Value {
	if ds.labels == nil {
		return nil
	}
	return append([]Value(nil), ds.labels...)
}

// LabelsAt returns the labels at the given row positions, in that order.
func (ds *DataSet) LabelsAt(positions []int) ([]Value, error) {
	if ds.labels == nil {
		return nil, errors.NewUnlabelledDataSetError("LabelsAt")
	}
	out := make([]Value, len(positions))
	for i, p := range positions {
		if p < 0 || p >= len(ds.labels) {
			return nil, errors.NewValidationError("positions", "row position out of range", p)
		}
		out[i] = ds.labels[p]
	}
	return out, nil
}

// LabelSet returns the distinct non-missing labels in first-seen order.
func (ds *DataSet) LabelSet() []Value {
	return distinct(ds.labels)
}

// FeatureValues returns the distinct non-missing values of a feature in
// first-seen order.
func (ds *DataSet) FeatureValues(feature string) ([]Value, error) {
	c, err := ds.column(feature)
	if err != nil {
		return nil, err
	}
	return distinct(c.values()), nil
}

// FeatureValueCounts returns how often each distinct value of a feature
// occurs, most frequent first. Missing entries are not counted.
func (ds *DataSet) FeatureValueCounts(feature string) ([]ValueCount, error) {
	c, err := ds.column(feature)
	if err != nil {
		return nil, err
	}
	return valueCounts(c.values()), nil
}

// LabelValueCounts returns how often each label occurs, most frequent first.
// An unlabelled DataSet yields an empty result.
func (ds *DataSet) LabelValueCounts() []ValueCount {
	return valueCounts(ds.labels)
}

func distinct(values []Value) []Value {
	seen := make(map[Value]struct{})
	out := []Value{}
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// valueCounts orders by descending count; ties keep first-seen order.
func valueCounts(values []Value) []ValueCount {
	pos := make(map[Value]int)
	out := []ValueCount{}
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if i, ok := pos[v]; ok {
			out[i].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, ValueCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Column returns a copy of a feature's values.
func (ds *DataSet) Column(feature string) ([]Value, error) {
	c, err := ds.column(feature)
	if err != nil {
		return nil, err
	}
	return c.values(), nil
}

// NumericColumn returns a copy of a numeric feature. Missing entries are NaN.
func (ds *DataSet) NumericColumn(feature string) ([]float64, error) {
	c, err := ds.numericColumn(feature)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), c.nums...), nil
}

func (ds *DataSet) numericColumn(feature string) (*column, error) {
	c, err := ds.column(feature)
	if err != nil {
		return nil, err
	}
	if c.kind != Numeric {
		return nil, errors.NewValidationError(feature, "feature is not numeric", c.kind.String())
	}
	return c, nil
}

// NumericView is a mutable borrow of one numeric feature column.
//
// Values aliases the DataSet's storage: writes through it change the DataSet
// that produced it. The view is invalidated by any operation that replaces
// the column, such as SetColumn, Bin or a FillMissing that converts the
// column to categorical.
type NumericView struct {
	Name   string
	Values []float64
}

// MutableNumericColumn returns a view aliasing a numeric feature's storage.
func (ds *DataSet) MutableNumericColumn(feature string) (NumericView, error) {
	c, err := ds.numericColumn(feature)
	if err != nil {
		return NumericView{}, err
	}
	return NumericView{Name: c.name, Values: c.nums}, nil
}

// Row returns the feature values of one sample in column order.
func (ds *DataSet) Row(id any) ([]Value, error) {
	i, err := ds.position(id)
	if err != nil {
		return nil, err
	}
	row := make([]Value, len(ds.columns))
	for j, c := range ds.columns {
		row[j] = c.at(i)
	}
	return row, nil
}

// Label returns the label of one sample.
func (ds *DataSet) Label(id any) (Value, error) {
	if ds.labels == nil {
		return Value{}, errors.NewUnlabelledDataSetError("Label")
	}
	i, err := ds.position(id)
	if err != nil {
		return Value{}, err
	}
	return ds.labels[i], nil
}

func (ds *DataSet) position(id any) (i int, err error) {
	defer func() {
		// non-comparable ids panic on map lookup
		if r := recover(); r != nil {
			err = errors.Wrapf(errors.ErrUnknownSample, "sample %v", id)
		}
	}()
	i, ok := ds.index[id]
	if !ok {
		return 0, errors.Wrapf(errors.ErrUnknownSample, "sample %v", id)
	}
	return i, nil
}

// Matrix returns the feature values as a dense samples-by-features matrix.
// Every feature must be numeric; missing entries are NaN.
func (ds *DataSet) Matrix() (*mat.Dense, error) {
	n, p := ds.NumSamples(), ds.NumFeatures()
	if n == 0 || p == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "matrix of %d samples and %d features", n, p)
	}
	m := mat.NewDense(n, p, nil)
	for j, c := range ds.columns {
		if c.kind != Numeric {
			return nil, errors.NewValidationError(c.name, "feature is not numeric", c.kind.String())
		}
		m.SetCol(j, c.nums)
	}
	return m, nil
}
