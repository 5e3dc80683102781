package dataset

import (
	"math"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/YuminosukeSato/pmlgo/pkg/log"
	"github.com/YuminosukeSato/pmlgo/preprocessing"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SetColumn replaces the named feature in place, or appends it as a new
// feature when no feature has that name. values must hold one entry per
// sample. The column is stored numerically when every value is a number or
// missing.
func (ds *DataSet) SetColumn(feature string, values []Value) error {
	if len(values) != ds.NumSamples() {
		return errors.NewDimensionError("SetColumn", ds.NumSamples(), len(values), 0)
	}
	ds.putColumn(newColumnFromValues(feature, values))
	return nil
}

// SetNumericColumn is SetColumn for float64 data. NaN entries are missing.
func (ds *DataSet) SetNumericColumn(feature string, values []float64) error {
	if len(values) != ds.NumSamples() {
		return errors.NewDimensionError("SetNumericColumn", ds.NumSamples(), len(values), 0)
	}
	ds.putColumn(newNumericColumn(feature, append([]float64(nil), values...)))
	return nil
}

func (ds *DataSet) putColumn(c *column) {
	if j := ds.columnIndex(c.name); j >= 0 {
		ds.columns[j] = c
		return
	}
	ds.columns = append(ds.columns, c)
}

// FillMissing replaces every missing feature value with value, in place.
//
// A string value turns numeric columns that have missing entries into
// categorical columns and raises a DataConversionWarning for each.
func (ds *DataSet) FillMissing(value Value) error {
	if value.IsMissing() {
		return errors.NewValidationError("value", "fill value must not be missing", value.String())
	}
	for _, c := range ds.columns {
		if !c.hasMissing() {
			continue
		}
		if c.kind == Numeric {
			if f, ok := value.Float(); ok {
				for i, v := range c.nums {
					if math.IsNaN(v) {
						c.nums[i] = f
					}
				}
				continue
			}
			c.toCategorical()
			errors.Warn(errors.NewDataConversionWarning(c.name, Numeric.String(), Categorical.String(),
				"filled missing values with a non-numeric value"))
		}
		for i, v := range c.vals {
			if v.IsMissing() {
				c.vals[i] = value
			}
		}
	}
	return nil
}

// FillMissingWithFeatureMeans replaces the missing entries of every numeric
// feature with the mean of that feature's present values, in place. A feature
// with no present values is filled with 0. Categorical features are left
// untouched.
func (ds *DataSet) FillMissingWithFeatureMeans() {
	for _, c := range ds.columns {
		if c.kind != Numeric || !c.hasMissing() {
			continue
		}
		present := make([]float64, 0, len(c.nums))
		for _, v := range c.nums {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		fill := 0.0
		if len(present) > 0 {
			fill = stat.Mean(present, nil)
		}
		for i, v := range c.nums {
			if math.IsNaN(v) {
				c.nums[i] = fill
			}
		}
	}
}

// CombineLabels replaces, in place, every label equal to one of toCombine with
// newLabel.
func (ds *DataSet) CombineLabels(toCombine []Value, newLabel Value) error {
	if ds.labels == nil {
		return errors.NewUnlabelledDataSetError("CombineLabels")
	}
	set := make(map[Value]struct{}, len(toCombine))
	for _, l := range toCombine {
		set[l] = struct{}{}
	}
	for i, l := range ds.labels {
		if _, ok := set[l]; ok {
			ds.labels[i] = newLabel
		}
	}
	return nil
}

// NormalizeFeatures replaces every feature with its z-score, in place.
// mode selects the population or sample standard deviation. Missing entries
// are ignored when computing the statistics and stay missing; a feature with
// zero spread is only centred.
func (ds *DataSet) NormalizeFeatures(mode preprocessing.StdDevMode) error {
	if err := ds.requireNumeric("NormalizeFeatures"); err != nil {
		return err
	}
	if ds.NumSamples() == 0 || ds.NumFeatures() == 0 {
		return nil
	}
	X, err := ds.Matrix()
	if err != nil {
		return err
	}
	scaled, err := preprocessing.NewStandardScaler(true, true, mode).FitTransform(X)
	if err != nil {
		return err
	}
	ds.assignMatrix(scaled)

	log.GetLoggerWithName("dataset").Debug("features normalized",
		log.OperationKey, log.OperationNormalize,
		log.FeaturesKey, ds.NumFeatures(),
		"mode", mode.String(),
	)
	return nil
}

// assignMatrix overwrites every numeric column from m, which must have the
// receiver's shape.
func (ds *DataSet) assignMatrix(m mat.Matrix) {
	for j, c := range ds.columns {
		mat.Col(c.nums, j, m)
	}
}
