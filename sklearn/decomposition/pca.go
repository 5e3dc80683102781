// Package decomposition implements principal component analysis over a
// dataset.DataSet.
//
// Components are ranked by eigenvalue of the feature covariance matrix,
// largest first. Each eigenvector is oriented so its largest-magnitude
// loading is positive, which makes results independent of the sign the
// eigen solver happens to return. Loadings published with numpy's sign, such
// as the Otago tutorial's [[-0.678 -0.735] [-0.735 0.678]], are matched up to
// the sign of each column. Equal eigenvalues keep the solver's order and are
// not guaranteed to be reproducible across LAPACK backends.
package decomposition

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/pmlgo/dataset"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/YuminosukeSato/pmlgo/pkg/log"
	"github.com/YuminosukeSato/pmlgo/preprocessing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultMinVariance is the retained variance RecommendNumComponents aims for
// when callers have no better figure.
const DefaultMinVariance = 0.9

// RemoveMeans subtracts every feature's mean from that feature, in place.
// Missing values are ignored when computing the means and stay missing.
// Callers that need the original values must operate on a copy.
func RemoveMeans(ds *dataset.DataSet) error {
	X, err := ds.Matrix()
	if err != nil {
		return err
	}
	centred, err := preprocessing.NewStandardScaler(true, false, preprocessing.PopulationStdDev).FitTransform(X)
	if err != nil {
		return err
	}
	for j, name := range ds.FeatureList() {
		if err := ds.SetNumericColumn(name, mat.Col(nil, j, centred)); err != nil {
			return err
		}
	}
	return nil
}

// PCA projects ds onto its first numComponents principal components. ds is
// not modified; the result carries its sample ids and labels.
func PCA(ds *dataset.DataSet, numComponents int) (*ReducedDataSet, error) {
	if numComponents < 1 || numComponents > ds.NumFeatures() {
		return nil, errors.NewValidationError("num_components", "must be between 1 and the number of features", numComponents)
	}
	return NewEstimator(WithNComponents(numComponents)).FitTransform(ds)
}

// RecommendNumComponents returns the smallest number of components whose
// share of the total variance is at least minVariance, which must lie in
// (0, 1]. When rounding keeps every share below minVariance, all components
// are recommended.
func RecommendNumComponents(ds *dataset.DataSet, minVariance float64) (int, error) {
	if err := validateMinVariance(minVariance); err != nil {
		return 0, err
	}
	d, err := decompose(ds)
	if err != nil {
		return 0, err
	}
	k := recommend(d.eigenvalues, minVariance)

	log.GetLoggerWithName("decomposition").Debug("recommended components",
		log.OperationKey, log.OperationRecommend,
		log.MinVarianceKey, minVariance,
		log.ComponentsKey, k,
	)
	return k, nil
}

// PctVariancePerPrincipalComponent returns each component's share of the
// total variance, largest first. The shares are marginal, not cumulative.
func PctVariancePerPrincipalComponent(ds *dataset.DataSet) ([]float64, error) {
	d, err := decompose(ds)
	if err != nil {
		return nil, err
	}
	return varianceShares(d.eigenvalues), nil
}

func validateMinVariance(minVariance float64) error {
	if math.IsNaN(minVariance) || minVariance <= 0 || minVariance > 1 {
		return errors.NewValidationError("min_variance", "must be in (0, 1]", minVariance)
	}
	return nil
}

func recommend(eigenvalues []float64, minVariance float64) int {
	if floats.Sum(eigenvalues) == 0 {
		warnZeroVariance(0)
		return len(eigenvalues)
	}
	for k := 1; k <= len(eigenvalues); k++ {
		if percentVariance(eigenvalues, k) >= minVariance {
			return k
		}
	}
	return len(eigenvalues)
}

// percentVariance is the share of the total variance held by the
// numComponents largest eigenvalues. A zero total yields 0 and an
// UndefinedMetricWarning.
func percentVariance(eigenvalues []float64, numComponents int) float64 {
	sorted := append([]float64(nil), eigenvalues...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if numComponents > len(sorted) {
		numComponents = len(sorted)
	}
	if numComponents < 0 {
		numComponents = 0
	}

	total := floats.Sum(sorted)
	if total == 0 {
		warnZeroVariance(0)
		return 0
	}
	return errors.SafeDivide(floats.Sum(sorted[:numComponents]), total)
}

func varianceShares(eigenvalues []float64) []float64 {
	shares := append([]float64(nil), eigenvalues...)
	total := floats.Sum(shares)
	if total == 0 {
		warnZeroVariance(0)
		return make([]float64, len(shares))
	}
	floats.Scale(1/total, shares)
	return shares
}

func warnZeroVariance(result float64) {
	errors.Warn(errors.NewUndefinedMetricWarning("percent_variance", "zero total variance", result))
}

// eigenBasis is the full decomposition of one data set's covariance.
type eigenBasis struct {
	features    []string
	means       []float64
	centred     *mat.Dense
	eigenvalues []float64  // descending, clamped at 0
	vectors     *mat.Dense // features x features, column k pairs with eigenvalues[k]
}

func decompose(ds *dataset.DataSet) (*eigenBasis, error) {
	if ds.NumSamples() < 2 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "PCA needs at least 2 samples, got %d", ds.NumSamples())
	}
	if ds.HasMissingValues() {
		return nil, errors.Wrap(errors.ErrMissingValues, "PCA over a data set with missing values")
	}
	X, err := ds.Matrix()
	if err != nil {
		return nil, err
	}

	scaler := preprocessing.NewStandardScaler(true, false, preprocessing.PopulationStdDev)
	centredM, err := scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}
	centred := mat.DenseCopyOf(centredM)

	var (
		cov  mat.SymDense
		es   mat.EigenSym
		vecs mat.Dense
	)
	err = errors.SafeExecute("decomposition.covariance", func() error {
		stat.CovarianceMatrix(&cov, centred, nil)
		return errors.CheckMatrix("decomposition.covariance", &cov)
	})
	if err != nil {
		return nil, err
	}
	err = errors.SafeExecute("decomposition.eigen", func() error {
		if !es.Factorize(&cov, true) {
			return errors.WithStack(errors.ErrEigenDecomposition)
		}
		es.VectorsTo(&vecs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	values, vectors := rankComponents(es.Values(nil), &vecs)
	if err := errors.CheckNumericalStability("decomposition.eigen", values, 0); err != nil {
		return nil, err
	}
	return &eigenBasis{
		features:    ds.FeatureList(),
		means:       scaler.Mean,
		centred:     centred,
		eigenvalues: values,
		vectors:     vectors,
	}, nil
}

// rankComponents orders eigenpairs by descending eigenvalue and orients each
// eigenvector so its largest-magnitude loading is positive. The solver
// returns ascending values, so ties keep its order reversed.
func rankComponents(ascending []float64, vecs *mat.Dense) ([]float64, *mat.Dense) {
	p := len(ascending)
	order := make([]int, p)
	for k := range order {
		order[k] = p - 1 - k
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ascending[order[a]] > ascending[order[b]]
	})

	values := make([]float64, p)
	vectors := mat.NewDense(p, p, nil)
	col := make([]float64, p)
	for k, src := range order {
		values[k] = math.Max(ascending[src], 0)

		mat.Col(col, src, vecs)
		if col[floats.MaxIdx(absAll(col))] < 0 {
			floats.Scale(-1, col)
		}
		vectors.SetCol(k, col)
	}
	return values, vectors
}

func absAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Abs(x)
	}
	return out
}
