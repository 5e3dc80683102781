package dataset

import (
	"math"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/YuminosukeSato/pmlgo/pkg/log"
)

// AllFeatures selects every feature in Bin.
const AllFeatures = "*"

// Bin replaces the values of a numeric feature with bin names, in place.
//
// boundaries are ascending thresholds splitting the line into
// len(boundaries)+1 bins: a value goes to the first bin i with
// value < boundaries[i], or to the last bin when no boundary exceeds it.
// binNames defaults to the integers 0..len(boundaries). When any name is not
// a number the column becomes categorical. Missing values stay missing.
// Boundaries that are not ascending give an unspecified assignment.
//
// feature may be AllFeatures to bin every feature with the same boundaries;
// every feature is validated before any is changed.
func (ds *DataSet) Bin(feature string, boundaries []float64, binNames []Value) error {
	if len(boundaries) == 0 {
		return errors.NewValidationError("boundaries", "at least one boundary is required", len(boundaries))
	}
	numBins := len(boundaries) + 1
	if binNames == nil {
		binNames = make([]Value, numBins)
		for i := range binNames {
			binNames[i] = Int(i)
		}
	}
	if len(binNames) != numBins {
		return errors.NewValidationError("bin_names", "need exactly one name per bin", len(binNames))
	}

	var targets []*column
	if feature == AllFeatures {
		targets = ds.columns
	} else {
		c, err := ds.column(feature)
		if err != nil {
			return err
		}
		targets = []*column{c}
	}
	for _, c := range targets {
		if c.kind != Numeric {
			return errors.NewValidationError(c.name, "can only bin numeric features", c.kind.String())
		}
	}

	numericNames := allNumeric(binNames)
	logger := log.GetLoggerWithName("dataset").With(log.OperationKey, log.OperationBin)
	for _, c := range targets {
		logger.Debug("binning feature", log.FeatureKey, c.name, "bins", numBins)
		binned := make([]Value, len(c.nums))
		for i, v := range c.nums {
			if math.IsNaN(v) {
				continue
			}
			binned[i] = binNames[binIndex(v, boundaries)]
		}
		ds.putColumn(newColumnFromValues(c.name, binned))
		if !numericNames {
			errors.Warn(errors.NewDataConversionWarning(c.name, Numeric.String(), Categorical.String(),
				"binned with non-numeric bin names"))
		}
	}
	return nil
}

func binIndex(v float64, boundaries []float64) int {
	for i, b := range boundaries {
		if v < b {
			return i
		}
	}
	return len(boundaries)
}
