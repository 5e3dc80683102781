// Package log defines standard attribute keys for data set and decomposition
// operations. Keys follow a dotted "category.name" convention so records can
// be filtered by prefix.

package log

// Operation context.
const (
	// OperationKey names the operation being performed, e.g. "split", "fit".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record,
	// e.g. "dataset", "decomposition".
	ComponentKey = "ml.component"

	// ModelNameKey identifies an estimator type such as "PCA".
	ModelNameKey = "model.name"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns).
	FeaturesKey = "data.features"

	// LabelledKey reports whether the data set carries labels.
	LabelledKey = "data.labelled"

	// FeatureKey names a single feature column.
	FeatureKey = "data.feature"
)

// Decomposition results.
const (
	// ComponentsKey is the number of principal components retained.
	ComponentsKey = "pca.components"

	// RetainedVarianceKey is the fraction of total variance kept by the
	// retained components.
	RetainedVarianceKey = "pca.retained_variance"

	// MinVarianceKey is the variance threshold used for component recommendation.
	MinVarianceKey = "pca.min_variance"
)

// Splitting and configuration.
const (
	// PercentKey is the requested split fraction.
	PercentKey = "split.percent"

	// StratifiedKey reports whether a split was done per label group.
	StratifiedKey = "split.stratified"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Error context.
const (
	// ErrorTypeKey categorizes the error, e.g. "ValidationError".
	ErrorTypeKey = "error.type"

	// StacktraceKey carries the stack trace extracted from an error.
	StacktraceKey = "error.stacktrace"
)

// Standard operation values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationRecommend    = "recommend_num_components"
	OperationSplit        = "split"
	OperationBin          = "bin"
	OperationNormalize    = "normalize_features"
)
