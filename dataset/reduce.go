package dataset

import (
	"github.com/YuminosukeSato/pmlgo/core/parallel"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
)

// ReduceOption configures ReduceFeatures and ReduceRows.
type ReduceOption func(*reduceConfig)

type reduceConfig struct {
	concurrent bool
}

// Concurrently lets a reduction call fn from several goroutines once the
// input is large enough. fn must then be safe for concurrent use. Results
// keep feature or sample order either way.
func Concurrently() ReduceOption {
	return func(c *reduceConfig) { c.concurrent = true }
}

// mapIndexed calls fn for 0..n-1 on the calling goroutine unless the
// reduction was made concurrent.
func mapIndexed(n, threshold int, opts []ReduceOption, fn func(i int) float64) []float64 {
	var cfg reduceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrent {
		return parallel.Map(n, threshold, fn)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = fn(i)
	}
	return out
}

// ReduceFeatures applies fn to every feature column and returns one result per
// feature, keyed by feature name. fn receives a copy of the column; missing
// entries are NaN. Every feature must be numeric.
//
// fn runs sequentially, in feature order, unless Concurrently is passed.
func (ds *DataSet) ReduceFeatures(fn func(column []float64) float64, opts ...ReduceOption) (Series[string], error) {
	if err := ds.requireNumeric("ReduceFeatures"); err != nil {
		return Series[string]{}, err
	}
	values := mapIndexed(len(ds.columns), parallel.DefaultThreshold/100, opts, func(j int) float64 {
		return fn(append([]float64(nil), ds.columns[j].nums...))
	})
	return Series[string]{Keys: ds.FeatureList(), Values: values}, nil
}

// ReduceRows applies fn to every sample and returns one result per sample,
// keyed by sample id. fn receives the row's values in column order; missing
// entries are NaN. Every feature must be numeric.
//
// fn runs sequentially, in sample order, unless Concurrently is passed.
func (ds *DataSet) ReduceRows(fn func(row []float64) float64, opts ...ReduceOption) (Series[any], error) {
	if err := ds.requireNumeric("ReduceRows"); err != nil {
		return Series[any]{}, err
	}
	p := len(ds.columns)
	values := mapIndexed(ds.NumSamples(), parallel.DefaultThreshold, opts, func(i int) float64 {
		row := make([]float64, p)
		for j, c := range ds.columns {
			row[j] = c.nums[i]
		}
		return fn(row)
	})
	return Series[any]{Keys: ds.SampleIDs(), Values: values}, nil
}

func (ds *DataSet) requireNumeric(op string) error {
	for _, c := range ds.columns {
		if c.kind != Numeric {
			return errors.NewValidationError(c.name, op+" requires numeric features", c.kind.String())
		}
	}
	return nil
}
