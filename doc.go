// Package pmlgo is a small in-memory data toolkit for Go: a labelled table
// of features with identity-preserving transforms, and principal component
// analysis on top of it.
//
// # Packages
//
//   - dataset: DataSet, built from rows, gonum matrices or gota DataFrames,
//     with filtering, splitting, binning, missing-value handling and
//     normalization.
//   - sklearn/decomposition: PCA, component recommendation and the
//     ReducedDataSet result.
//   - preprocessing: StandardScaler.
//   - pkg/errors and pkg/log: error types and structured logging shared by
//     every package.
//
// # Quick Start
//
//	ds, err := dataset.New(
//	    dataset.FromRows([][]float64{{2.5, 2.4}, {0.5, 0.7}, {2.2, 2.9}}).
//	        WithFeatureNames("x", "y"),
//	    dataset.LabelStrings("a", "b", "a"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	k, err := decomposition.RecommendNumComponents(ds, decomposition.DefaultMinVariance)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reduced, err := decomposition.PCA(ds, k)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(reduced.PercentVariance())
//
// # Mutation
//
// DataSet methods return new values except for a fixed set of in-place
// mutators (SetColumn, SetNumericColumn, FillMissing,
// FillMissingWithFeatureMeans, Bin, NormalizeFeatures, CombineLabels).
// Call Copy first to keep the original.
//
// # Error Handling
//
// Errors carry stack traces from github.com/cockroachdb/errors and can be
// matched with errors.Is and errors.As from pkg/errors:
//
//	_, err := decomposition.RecommendNumComponents(ds, 95)
//	var ve *errors.ValidationError
//	if errors.As(err, &ve) {
//	    // min_variance out of range
//	}
package pmlgo
