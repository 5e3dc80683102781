package decomposition

import (
	"math"
	"sort"
	"strconv"

	"github.com/YuminosukeSato/pmlgo/dataset"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
)

// ReducedDataSet is the immutable result of a PCA run: the projected
// coordinates of every source sample plus the eigen data needed to explain
// them. Sample ids and labels are those of the source.
type ReducedDataSet struct {
	coords      *dataset.DataSet
	eigenvalues []float64  // every component, descending
	weights     *mat.Dense // source features x retained components
	features    []string
}

// NewReducedDataSet assembles a ReducedDataSet. coords holds one row per
// sample of source and one column per retained component; weights, when not
// nil, holds one row per source feature and one column per retained
// component. All inputs are copied.
func NewReducedDataSet(coords mat.Matrix, source *dataset.DataSet, eigenvalues []float64, weights mat.Matrix) (*ReducedDataSet, error) {
	n, k := coords.Dims()
	if n != source.NumSamples() {
		return nil, errors.NewDimensionError("NewReducedDataSet", source.NumSamples(), n, 0)
	}
	if k > len(eigenvalues) {
		return nil, errors.NewValidationError("eigenvalues", "fewer eigenvalues than components", len(eigenvalues))
	}

	var w *mat.Dense
	if weights != nil {
		p, wk := weights.Dims()
		if p != source.NumFeatures() {
			return nil, errors.NewDimensionError("NewReducedDataSet", source.NumFeatures(), p, 0)
		}
		if wk != k {
			return nil, errors.NewDimensionError("NewReducedDataSet", k, wk, 1)
		}
		w = mat.DenseCopyOf(weights)
	}

	ids := source.SampleIDs()
	in := dataset.FromMatrix(coords).WithSampleIDs(ids...).WithFeatureNames(componentNames(k)...)
	labels := dataset.NoLabels()
	if source.IsLabelled() {
		labels = dataset.LabelVector(ids, source.Labels())
	}
	ds, err := dataset.New(in, labels)
	if err != nil {
		return nil, err
	}

	return &ReducedDataSet{
		coords:      ds,
		eigenvalues: append([]float64(nil), eigenvalues...),
		weights:     w,
		features:    source.FeatureList(),
	}, nil
}

func componentNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		names[i] = "PC" + strconv.Itoa(i+1)
	}
	return names
}

// NumSamples returns the number of projected samples.
func (r *ReducedDataSet) NumSamples() int { return r.coords.NumSamples() }

// NumComponents returns the number of retained components.
func (r *ReducedDataSet) NumComponents() int { return r.coords.NumFeatures() }

// SampleIDs returns the source sample ids in row order.
func (r *ReducedDataSet) SampleIDs() []any { return r.coords.SampleIDs() }

// IsLabelled reports whether the source carried labels.
func (r *ReducedDataSet) IsLabelled() bool { return r.coords.IsLabelled() }

// Labels returns the source labels, or nil.
func (r *ReducedDataSet) Labels() []dataset.Value { return r.coords.Labels() }

// ComponentNames returns "PC1".."PCk".
func (r *ReducedDataSet) ComponentNames() []string { return r.coords.FeatureList() }

// Coordinates returns the projected samples, one row per sample.
func (r *ReducedDataSet) Coordinates() *mat.Dense {
	m, err := r.coords.Matrix()
	if err != nil {
		return &mat.Dense{}
	}
	return m
}

// DataSet returns the projected samples as a new DataSet.
func (r *ReducedDataSet) DataSet() *dataset.DataSet { return r.coords.Copy() }

// Eigenvalues returns every eigenvalue of the source covariance, largest
// first, including those of components that were not retained.
func (r *ReducedDataSet) Eigenvalues() []float64 {
	return append([]float64(nil), r.eigenvalues...)
}

// Weights returns the loading matrix: one row per source feature, one column
// per retained component in rank order. It is nil when the result was built
// without weights.
func (r *ReducedDataSet) Weights() *mat.Dense {
	if r.weights == nil {
		return nil
	}
	return mat.DenseCopyOf(r.weights)
}

// FirstComponentImpacts returns each source feature's loading on the first
// component, ordered by descending magnitude.
func (r *ReducedDataSet) FirstComponentImpacts() (dataset.Series[string], error) {
	if r.weights == nil {
		return dataset.Series[string]{}, errors.New("reduced data set carries no weights")
	}
	if r.NumComponents() == 0 {
		return dataset.Series[string]{}, errors.Wrap(errors.ErrEmptyData, "no components retained")
	}

	order := make([]int, len(r.features))
	for i := range order {
		order[i] = i
	}
	first := mat.Col(nil, 0, r.weights)
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(first[order[a]]) > math.Abs(first[order[b]])
	})

	s := dataset.Series[string]{
		Keys:   make([]string, len(order)),
		Values: make([]float64, len(order)),
	}
	for i, f := range order {
		s.Keys[i] = r.features[f]
		s.Values[i] = first[f]
	}
	return s, nil
}

// PercentVariance returns the share of the total variance held by the
// retained components.
func (r *ReducedDataSet) PercentVariance() float64 {
	return percentVariance(r.eigenvalues, r.NumComponents())
}

// VarianceValues returns every component's marginal share of the variance,
// ready for a bar or line plot.
func (r *ReducedDataSet) VarianceValues() plotter.Values {
	return plotter.Values(varianceShares(r.eigenvalues))
}

// ComponentXYs returns the samples as points on components i and j
// (zero-based), ready for a scatter plot.
func (r *ReducedDataSet) ComponentXYs(i, j int) (plotter.XYs, error) {
	k := r.NumComponents()
	for _, c := range []int{i, j} {
		if c < 0 || c >= k {
			return nil, errors.NewValidationError("component", "component index out of range", c)
		}
	}
	m := r.Coordinates()
	xys := make(plotter.XYs, r.NumSamples())
	for row := range xys {
		xys[row].X = m.At(row, i)
		xys[row].Y = m.At(row, j)
	}
	return xys, nil
}
