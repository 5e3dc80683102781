package decomposition

import (
	"context"

	"github.com/YuminosukeSato/pmlgo/core/model"
	"github.com/YuminosukeSato/pmlgo/dataset"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/YuminosukeSato/pmlgo/pkg/log"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.Transformer[*dataset.DataSet, *ReducedDataSet] = (*Estimator)(nil)
	_ model.ParameterGetter                                = (*Estimator)(nil)
)

// Estimator learns principal components from one DataSet and projects any
// DataSet with the same features onto them.
type Estimator struct {
	model.BaseEstimator

	nComponents int     // 0 keeps every component
	minVariance float64 // when > 0, overrides nComponents at Fit
	logger      log.Logger

	features    []string
	means       []float64
	eigenvalues []float64
	weights     *mat.Dense // features x retained components
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithNComponents keeps the first n components. Zero keeps all of them.
func WithNComponents(n int) Option {
	return func(e *Estimator) {
		e.nComponents = n
		e.minVariance = 0
	}
}

// WithMinVariance keeps the fewest components whose share of the variance is
// at least v, chosen at Fit as RecommendNumComponents does.
func WithMinVariance(v float64) Option {
	return func(e *Estimator) {
		e.minVariance = v
		e.nComponents = 0
	}
}

// WithLogger replaces the component logger.
func WithLogger(l log.Logger) Option {
	return func(e *Estimator) {
		e.logger = l
	}
}

// NewEstimator returns an unfitted Estimator.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("decomposition")
	}
	return e
}

// Fit learns the feature means and principal components of ds.
func (e *Estimator) Fit(ds *dataset.DataSet) error {
	if e.minVariance != 0 {
		if err := validateMinVariance(e.minVariance); err != nil {
			return err
		}
	}
	if e.nComponents < 0 || e.nComponents > ds.NumFeatures() {
		return errors.NewValidationError("n_components", "must be between 0 and the number of features", e.nComponents)
	}

	d, err := decompose(ds)
	if err != nil {
		return errors.NewModelError("decomposition.Fit", "decomposition failed", err)
	}

	k := e.nComponents
	switch {
	case e.minVariance > 0:
		k = recommend(d.eigenvalues, e.minVariance)
	case k == 0:
		k = len(d.eigenvalues)
	}

	e.Reset()
	e.features = d.features
	e.means = d.means
	e.eigenvalues = d.eigenvalues
	e.weights = mat.DenseCopyOf(d.vectors.Slice(0, len(d.features), 0, k))
	e.SetFitted()

	if e.logger.Enabled(context.Background(), log.LevelDebug) {
		e.logger.Debug("pca fitted",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, ds.NumSamples(),
			log.FeaturesKey, ds.NumFeatures(),
			log.ComponentsKey, k,
			log.RetainedVarianceKey, percentVariance(e.eigenvalues, k),
		)
	}
	return nil
}

// Transform projects ds onto the fitted components using the means learned
// at Fit. ds must have the fitted features in the same order.
func (e *Estimator) Transform(ds *dataset.DataSet) (*ReducedDataSet, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("decomposition.Estimator", "Transform")
	}
	if ds.NumFeatures() != len(e.features) {
		return nil, errors.NewDimensionError("decomposition.Transform", len(e.features), ds.NumFeatures(), 1)
	}
	for j, name := range ds.FeatureList() {
		if name != e.features[j] {
			return nil, errors.NewValidationError("features", "feature names differ from the fitted data", name)
		}
	}
	if ds.HasMissingValues() {
		return nil, errors.Wrap(errors.ErrMissingValues, "PCA over a data set with missing values")
	}
	X, err := ds.Matrix()
	if err != nil {
		return nil, err
	}

	var coords mat.Dense
	err = errors.SafeExecute("decomposition.project", func() error {
		centred := mat.DenseCopyOf(X)
		centred.Apply(func(_, j int, v float64) float64 { return v - e.means[j] }, centred)
		coords.Mul(centred, e.weights)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("pca transformed",
		log.OperationKey, log.OperationTransform,
		log.SamplesKey, ds.NumSamples(),
	)
	return NewReducedDataSet(&coords, ds, e.eigenvalues, e.weights)
}

// FitTransform fits on ds and projects it.
func (e *Estimator) FitTransform(ds *dataset.DataSet) (*ReducedDataSet, error) {
	e.logger.Debug("pca fit_transform", log.OperationKey, log.OperationFitTransform)
	if err := e.Fit(ds); err != nil {
		return nil, err
	}
	return e.Transform(ds)
}

// NComponents returns the number of retained components, or 0 before Fit.
func (e *Estimator) NComponents() int {
	if e.weights == nil {
		return 0
	}
	_, k := e.weights.Dims()
	return k
}

// Means returns the feature means learned at Fit.
func (e *Estimator) Means() []float64 {
	return append([]float64(nil), e.means...)
}

// GetParams returns the estimator's configuration.
func (e *Estimator) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": e.nComponents,
		"min_variance": e.minVariance,
	}
}
