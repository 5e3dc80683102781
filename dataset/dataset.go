// Package dataset provides DataSet, an in-memory table of features indexed by
// sample id with an optional label per sample.
//
// Every operation either returns a new DataSet, leaving the receiver
// untouched, or mutates the receiver in place. The in-place set is small and
// fixed: SetColumn, SetNumericColumn, FillMissing,
// FillMissingWithFeatureMeans, Bin, NormalizeFeatures and CombineLabels, plus
// writes through a NumericView obtained from MutableNumericColumn. All other
// accessors return owned copies.
//
// A DataSet is not safe for concurrent mutation.
package dataset

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
)

// DataSet is a table of feature columns over a fixed, ordered set of samples.
type DataSet struct {
	columns []*column
	ids     []any
	index   map[any]int
	labels  []Value // nil when unlabelled
}

// New builds a DataSet from raw data and optional labels.
//
// Unsupported data or label representations fail with a ValidationError.
// Labels whose identities differ from the data's sample ids, in set or in
// order, fail with an InconsistentSampleIdError.
func New(data Input, labels LabelInput) (*DataSet, error) {
	convert, ok := converters[data.Kind]
	if !ok {
		return nil, errors.NewValidationError("data", "unsupported representation of data set", data.Kind.String())
	}
	conv, err := convert(data)
	if err != nil {
		return nil, err
	}

	ids := conv.ids
	switch {
	case data.SampleIDs != nil:
		if len(data.SampleIDs) != conv.rows {
			return nil, errors.NewDimensionError("New", conv.rows, len(data.SampleIDs), 0)
		}
		ids = append([]any(nil), data.SampleIDs...)
	case ids == nil:
		ids = make([]any, conv.rows)
		for i := range ids {
			ids[i] = i
		}
	}

	if data.FeatureNames != nil {
		if len(data.FeatureNames) != len(conv.columns) {
			return nil, errors.NewDimensionError("New", len(conv.columns), len(data.FeatureNames), 1)
		}
		for j, name := range data.FeatureNames {
			conv.columns[j].name = name
		}
	}

	if err := validateFeatureNames(conv.columns); err != nil {
		return nil, err
	}
	index, err := buildIndex(ids)
	if err != nil {
		return nil, err
	}
	lbls, err := resolveLabels(labels, ids)
	if err != nil {
		return nil, err
	}

	return &DataSet{columns: conv.columns, ids: ids, index: index, labels: lbls}, nil
}

func validateFeatureNames(cols []*column) error {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c.name]; dup {
			return errors.NewValidationError("features", "feature names must be unique", c.name)
		}
		seen[c.name] = struct{}{}
	}
	return nil
}

func buildIndex(ids []any) (map[any]int, error) {
	index := make(map[any]int, len(ids))
	for i, id := range ids {
		t := reflect.TypeOf(id)
		if t == nil || !t.Comparable() {
			return nil, errors.NewValidationError("sample_ids", "sample ids must be non-nil comparable values", id)
		}
		if _, dup := index[id]; dup {
			return nil, errors.NewValidationError("sample_ids", "sample ids must be unique", id)
		}
		index[id] = i
	}
	return index, nil
}

// fromParts assembles a DataSet from storage that is already valid and
// exclusively owned by the caller.
func fromParts(cols []*column, ids []any, labels []Value) *DataSet {
	index := make(map[any]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return &DataSet{columns: cols, ids: ids, index: index, labels: labels}
}

// Copy returns a deep copy; mutating either DataSet never affects the other.
func (ds *DataSet) Copy() *DataSet {
	cols := make([]*column, len(ds.columns))
	for j, c := range ds.columns {
		cols[j] = c.clone()
	}
	var labels []Value
	if ds.labels != nil {
		labels = append([]Value(nil), ds.labels...)
	}
	return fromParts(cols, append([]any(nil), ds.ids...), labels)
}

// NumSamples returns the number of rows.
func (ds *DataSet) NumSamples() int { return len(ds.ids) }

// NumFeatures returns the number of feature columns.
func (ds *DataSet) NumFeatures() int { return len(ds.columns) }

// IsLabelled reports whether the DataSet carries labels.
func (ds *DataSet) IsLabelled() bool { return ds.labels != nil }

// HasMissingValues reports whether any feature value is missing.
func (ds *DataSet) HasMissingValues() bool {
	for _, c := range ds.columns {
		if c.hasMissing() {
			return true
		}
	}
	return false
}

// FeatureList returns the feature names in column order.
func (ds *DataSet) FeatureList() []string {
	names := make([]string, len(ds.columns))
	for j, c := range ds.columns {
		names[j] = c.name
	}
	return names
}

// SampleIDs returns the sample ids in row order.
func (ds *DataSet) SampleIDs() []any {
	return append([]any(nil), ds.ids...)
}

// FeatureKind returns the storage kind of a feature.
func (ds *DataSet) FeatureKind(feature string) (ColumnKind, error) {
	c, err := ds.column(feature)
	if err != nil {
		return 0, err
	}
	return c.kind, nil
}

func (ds *DataSet) column(feature string) (*column, error) {
	for _, c := range ds.columns {
		if c.name == feature {
			return c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnknownFeature, "feature %q", feature)
}

func (ds *DataSet) columnIndex(feature string) int {
	for j, c := range ds.columns {
		if c.name == feature {
			return j
		}
	}
	return -1
}

// String summarises the DataSet.
func (ds *DataSet) String() string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	return strings.Join([]string{
		fmt.Sprintf("Features: %v", ds.FeatureList()),
		fmt.Sprintf("Samples: %d", ds.NumSamples()),
		fmt.Sprintf("Missing values? %s", yesNo(ds.HasMissingValues())),
		fmt.Sprintf("Labelled? %s", yesNo(ds.IsLabelled())),
	}, "\n")
}
