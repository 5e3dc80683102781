package dataset

import (
	"math"
	"strconv"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/go-gota/gota/dataframe"
	gseries "github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// InputKind tags which representation an Input carries.
type InputKind int

const (
	// InputUnknown is the zero kind and is rejected by New.
	InputUnknown InputKind = iota
	// InputRows is a list of numeric rows.
	InputRows
	// InputValues is a list of rows of Values, allowing strings and missing cells.
	InputValues
	// InputMatrix is a gonum matrix.
	InputMatrix
	// InputDataFrame is a gota DataFrame; its column names become feature names.
	InputDataFrame
	// InputDataSet copies the features and sample ids of an existing DataSet.
	InputDataSet
)

func (k InputKind) String() string {
	switch k {
	case InputRows:
		return "rows"
	case InputValues:
		return "values"
	case InputMatrix:
		return "matrix"
	case InputDataFrame:
		return "dataframe"
	case InputDataSet:
		return "dataset"
	default:
		return "unknown"
	}
}

// Input is raw data to build a DataSet from. Build one with FromRows,
// FromValues, FromMatrix, FromDataFrame or FromDataSet; only the field that
// matches Kind is read.
type Input struct {
	Kind   InputKind
	Rows   [][]float64
	Values [][]Value
	Matrix mat.Matrix
	Frame  *dataframe.DataFrame
	Source *DataSet

	// SampleIDs overrides the default row identities (0..n-1, or the source
	// identities for InputDataSet).
	SampleIDs []any
	// FeatureNames overrides the default feature names ("0".."p-1", or the
	// column names of a DataFrame or DataSet).
	FeatureNames []string
}

// FromRows wraps a list of numeric rows. NaN entries are missing values.
func FromRows(rows [][]float64) Input {
	return Input{Kind: InputRows, Rows: rows}
}

// FromValues wraps a list of rows of Values.
func FromValues(rows [][]Value) Input {
	return Input{Kind: InputValues, Values: rows}
}

// FromMatrix wraps a gonum matrix.
func FromMatrix(m mat.Matrix) Input {
	return Input{Kind: InputMatrix, Matrix: m}
}

// FromDataFrame wraps a gota DataFrame. Float and Int columns become numeric
// features; every other column type becomes categorical.
func FromDataFrame(df dataframe.DataFrame) Input {
	return Input{Kind: InputDataFrame, Frame: &df}
}

// FromDataSet copies the feature matrix and sample ids of ds. Labels are not
// copied; pass them to New explicitly.
func FromDataSet(ds *DataSet) Input {
	return Input{Kind: InputDataSet, Source: ds}
}

// WithSampleIDs returns a copy of in with explicit sample ids.
func (in Input) WithSampleIDs(ids ...any) Input {
	in.SampleIDs = ids
	return in
}

// WithFeatureNames returns a copy of in with explicit feature names.
func (in Input) WithFeatureNames(names ...string) Input {
	in.FeatureNames = names
	return in
}

// converted is the canonical form every input kind is turned into.
type converted struct {
	columns []*column
	rows    int
	ids     []any
}

var converters = map[InputKind]func(Input) (*converted, error){
	InputRows:      convertRows,
	InputValues:    convertValues,
	InputMatrix:    convertMatrix,
	InputDataFrame: convertDataFrame,
	InputDataSet:   convertDataSet,
}

func defaultFeatureName(j int) string {
	return strconv.Itoa(j)
}

func convertRows(in Input) (*converted, error) {
	rows := in.Rows
	n := len(rows)
	p := 0
	if n > 0 {
		p = len(rows[0])
	}
	cols := make([]*column, p)
	for j := range cols {
		cols[j] = newNumericColumn(defaultFeatureName(j), make([]float64, n))
	}
	for i, row := range rows {
		if len(row) != p {
			return nil, errors.NewValidationError("data", "rows must all have the same length", len(row))
		}
		for j, v := range row {
			cols[j].nums[i] = v
		}
	}
	return &converted{columns: cols, rows: n}, nil
}

func convertValues(in Input) (*converted, error) {
	rows := in.Values
	n := len(rows)
	p := 0
	if n > 0 {
		p = len(rows[0])
	}
	byColumn := make([][]Value, p)
	for j := range byColumn {
		byColumn[j] = make([]Value, n)
	}
	for i, row := range rows {
		if len(row) != p {
			return nil, errors.NewValidationError("data", "rows must all have the same length", len(row))
		}
		for j, v := range row {
			byColumn[j][i] = v
		}
	}
	cols := make([]*column, p)
	for j, vals := range byColumn {
		cols[j] = newColumnFromValues(defaultFeatureName(j), vals)
	}
	return &converted{columns: cols, rows: n}, nil
}

func convertMatrix(in Input) (*converted, error) {
	if in.Matrix == nil {
		return nil, errors.NewValidationError("data", "matrix input is nil", nil)
	}
	n, p := in.Matrix.Dims()
	cols := make([]*column, p)
	for j := range cols {
		nums := make([]float64, n)
		for i := range nums {
			nums[i] = in.Matrix.At(i, j)
		}
		cols[j] = newNumericColumn(defaultFeatureName(j), nums)
	}
	return &converted{columns: cols, rows: n}, nil
}

func convertDataFrame(in Input) (*converted, error) {
	if in.Frame == nil {
		return nil, errors.NewValidationError("data", "dataframe input is nil", nil)
	}
	df := in.Frame
	if df.Err != nil {
		return nil, errors.NewValidationError("data", "dataframe carries an error", df.Err.Error())
	}
	n := df.Nrow()
	names := df.Names()
	cols := make([]*column, len(names))
	for j, name := range names {
		s := df.Col(name)
		switch s.Type() {
		case gseries.Float, gseries.Int:
			nums := make([]float64, n)
			for i := range nums {
				e := s.Elem(i)
				if e.IsNA() {
					nums[i] = math.NaN()
					continue
				}
				nums[i] = e.Float()
			}
			cols[j] = newNumericColumn(name, nums)
		default:
			vals := make([]Value, n)
			for i := range vals {
				e := s.Elem(i)
				if e.IsNA() {
					continue
				}
				vals[i] = Str(e.String())
			}
			cols[j] = &column{name: name, kind: Categorical, vals: vals}
		}
	}
	return &converted{columns: cols, rows: n}, nil
}

func convertDataSet(in Input) (*converted, error) {
	if in.Source == nil {
		return nil, errors.NewValidationError("data", "source DataSet is nil", nil)
	}
	src := in.Source
	cols := make([]*column, len(src.columns))
	for j, c := range src.columns {
		cols[j] = c.clone()
	}
	return &converted{columns: cols, rows: src.NumSamples(), ids: src.SampleIDs()}, nil
}
