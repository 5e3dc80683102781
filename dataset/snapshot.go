package dataset

import (
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/go-gota/gota/dataframe"
	gseries "github.com/go-gota/gota/series"
)

// LabelColumn is the name of the trailing label column in
// LabelledDataFrame.
const LabelColumn = "label"

// DataFrame returns a snapshot of the feature values as a gota DataFrame.
// Numeric features become Float series and categorical features String
// series; missing values are NaN in both. Sample ids are not part of the
// frame; they line up with SampleIDs.
//
// A DataSet without features yields the empty DataFrame (no columns, no
// rows), since a gota frame has no row index to carry the samples.
func (ds *DataSet) DataFrame() (dataframe.DataFrame, error) {
	if len(ds.columns) == 0 {
		return dataframe.DataFrame{}, nil
	}
	cols := make([]gseries.Series, 0, len(ds.columns)+1)
	for _, c := range ds.columns {
		cols = append(cols, columnSeries(c))
	}
	return newFrame(cols)
}

// LabelledDataFrame is DataFrame with the labels appended as a trailing
// column named LabelColumn.
func (ds *DataSet) LabelledDataFrame() (dataframe.DataFrame, error) {
	if ds.labels == nil {
		return dataframe.DataFrame{}, errors.NewUnlabelledDataSetError("LabelledDataFrame")
	}
	if ds.columnIndex(LabelColumn) >= 0 {
		return dataframe.DataFrame{}, errors.NewValidationError("features", "feature name collides with the label column", LabelColumn)
	}
	cols := make([]gseries.Series, 0, len(ds.columns)+1)
	for _, c := range ds.columns {
		cols = append(cols, columnSeries(c))
	}
	cols = append(cols, columnSeries(newColumnFromValues(LabelColumn, ds.labels)))
	return newFrame(cols)
}

func columnSeries(c *column) gseries.Series {
	if c.kind == Numeric {
		return gseries.New(append([]float64(nil), c.nums...), gseries.Float, c.name)
	}
	strs := make([]string, len(c.vals))
	for i, v := range c.vals {
		strs[i] = v.String()
	}
	return gseries.New(strs, gseries.String, c.name)
}

func newFrame(cols []gseries.Series) (dataframe.DataFrame, error) {
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "build dataframe")
	}
	return df, nil
}
