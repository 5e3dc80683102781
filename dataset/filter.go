package dataset

import (
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
)

// take builds a new DataSet from the rows at positions, in that order. Labels
// follow their rows.
func (ds *DataSet) take(positions []int) *DataSet {
	cols := make([]*column, len(ds.columns))
	for j, c := range ds.columns {
		cols[j] = c.take(positions)
	}
	ids := make([]any, len(positions))
	for i, p := range positions {
		ids[i] = ds.ids[p]
	}
	var labels []Value
	if ds.labels != nil {
		labels = make([]Value, len(positions))
		for i, p := range positions {
			labels[i] = ds.labels[p]
		}
	}
	return fromParts(cols, ids, labels)
}

// SampleFilter returns the rows whose id is in ids. Rows keep their order in
// the receiver, not the order of ids; ids not present are ignored.
func (ds *DataSet) SampleFilter(ids ...any) *DataSet {
	keep := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if i, err := ds.position(id); err == nil {
			keep[i] = struct{}{}
		}
	}
	positions := make([]int, 0, len(keep))
	for i := range ds.ids {
		if _, ok := keep[i]; ok {
			positions = append(positions, i)
		}
	}
	return ds.take(positions)
}

// ValueFilter returns the rows whose value for feature matches any of values.
// A missing value never matches.
func (ds *DataSet) ValueFilter(feature string, values ...Value) (*DataSet, error) {
	c, err := ds.column(feature)
	if err != nil {
		return nil, err
	}
	var ids []any
	for i, id := range ds.ids {
		if c.at(i).matchesAny(values) {
			ids = append(ids, id)
		}
	}
	return ds.SampleFilter(ids...), nil
}

// LabelFilter returns the rows whose label matches any of labels.
func (ds *DataSet) LabelFilter(labels ...Value) (*DataSet, error) {
	if ds.labels == nil {
		return nil, errors.NewUnlabelledDataSetError("LabelFilter")
	}
	var ids []any
	for i, id := range ds.ids {
		if ds.labels[i].matchesAny(labels) {
			ids = append(ids, id)
		}
	}
	return ds.SampleFilter(ids...), nil
}

// Rows returns the rows with the given ids, in the order given. Unknown ids
// fail with ErrUnknownSample.
func (ds *DataSet) Rows(ids ...any) (*DataSet, error) {
	positions := make([]int, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for k, id := range ids {
		i, err := ds.position(id)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[i]; dup {
			return nil, errors.NewValidationError("ids", "sample ids must be unique", id)
		}
		seen[i] = struct{}{}
		positions[k] = i
	}
	return ds.take(positions), nil
}

// DropColumn returns a copy without the named feature.
func (ds *DataSet) DropColumn(feature string) (*DataSet, error) {
	drop := ds.columnIndex(feature)
	if drop < 0 {
		return nil, errors.Wrapf(errors.ErrUnknownFeature, "feature %q", feature)
	}
	out := ds.Copy()
	out.columns = append(out.columns[:drop], out.columns[drop+1:]...)
	return out, nil
}

// DropEmptySamples returns a copy without the rows whose every feature is
// missing.
func (ds *DataSet) DropEmptySamples() *DataSet {
	var positions []int
	for i := range ds.ids {
		empty := true
		for _, c := range ds.columns {
			if !c.isMissing(i) {
				empty = false
				break
			}
		}
		if !empty {
			positions = append(positions, i)
		}
	}
	if positions == nil {
		positions = []int{}
	}
	return ds.take(positions)
}

// SliceFeatures returns a copy holding only the named features, in the order
// given. Labels are copied through.
func (ds *DataSet) SliceFeatures(features ...string) (*DataSet, error) {
	positions := make([]int, len(features))
	for k, name := range features {
		j := ds.columnIndex(name)
		if j < 0 {
			return nil, errors.Wrapf(errors.ErrUnknownFeature, "feature %q", name)
		}
		positions[k] = j
	}
	return ds.SliceFeaturesAt(positions...)
}

// SliceFeaturesAt is SliceFeatures addressed by column position.
func (ds *DataSet) SliceFeaturesAt(positions ...int) (*DataSet, error) {
	cols := make([]*column, len(positions))
	for k, j := range positions {
		if j < 0 || j >= len(ds.columns) {
			return nil, errors.NewValidationError("positions", "feature position out of range", j)
		}
		cols[k] = ds.columns[j].clone()
	}
	if err := validateFeatureNames(cols); err != nil {
		return nil, err
	}
	var labels []Value
	if ds.labels != nil {
		labels = append([]Value(nil), ds.labels...)
	}
	return fromParts(cols, append([]any(nil), ds.ids...), labels), nil
}
