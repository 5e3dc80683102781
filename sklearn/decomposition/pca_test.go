package decomposition

import (
	"math"
	"reflect"
	"testing"

	"github.com/YuminosukeSato/pmlgo/dataset"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// otago is the two-feature example from Lindsay Smith's PCA tutorial.
func otago(t *testing.T) *dataset.DataSet {
	t.Helper()
	return mustDataSet(t, dataset.FromRows([][]float64{
		{2.5, 2.4},
		{0.5, 0.7},
		{2.2, 2.9},
		{1.9, 2.2},
		{3.1, 3.0},
		{2.3, 2.7},
		{2.0, 1.6},
		{1.0, 1.1},
		{1.5, 1.6},
		{1.1, 0.9},
	}).WithFeatureNames("x", "y"), dataset.NoLabels())
}

func mustDataSet(t *testing.T, in dataset.Input, labels dataset.LabelInput) *dataset.DataSet {
	t.Helper()
	ds, err := dataset.New(in, labels)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func closeTo(got, want []float64, tol float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

var otagoProjection = mat.NewDense(10, 2, []float64{
	0.827970, 0.175115,
	-1.777580, -0.142857,
	0.992197, -0.384375,
	0.274210, -0.130417,
	1.675801, 0.209498,
	0.912949, -0.175282,
	-0.099109, 0.349825,
	-1.144572, -0.046417,
	-0.438046, -0.017765,
	-1.223821, 0.162675,
})

func TestRemoveMeans(t *testing.T) {
	ds := mustDataSet(t, dataset.FromRows([][]float64{
		{4, 1, 9},
		{2, 3, 0},
		{5, 1, 3},
	}), dataset.NoLabels())

	if err := RemoveMeans(ds); err != nil {
		t.Fatal(err)
	}

	got, err := ds.Matrix()
	if err != nil {
		t.Fatal(err)
	}
	want := mat.NewDense(3, 3, []float64{
		0.33, -0.67, 5,
		-1.67, 1.33, -4,
		1.33, -0.67, -1,
	})
	if !mat.EqualApprox(got, want, 0.005) {
		t.Errorf("centred = %v", mat.Formatted(got))
	}
}

func TestPCA_Otago(t *testing.T) {
	ds := otago(t)

	reduced, err := PCA(ds, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Largest loading in each column is positive.
	wantWeights := mat.NewDense(2, 2, []float64{
		0.6778734, 0.73517866,
		0.73517866, -0.6778734,
	})
	weights := reduced.Weights()
	if !mat.EqualApprox(weights, wantWeights, 1e-3) {
		t.Errorf("Weights() = %v", mat.Formatted(weights))
	}

	// The tutorial publishes numpy's orientation; it differs only in column sign.
	published := mat.NewDense(2, 2, []float64{
		-0.6778734, -0.73517866,
		-0.73517866, 0.6778734,
	})
	for j := 0; j < 2; j++ {
		sign := math.Copysign(1, published.At(0, j)*weights.At(0, j))
		for i := 0; i < 2; i++ {
			if math.Abs(sign*weights.At(i, j)-published.At(i, j)) > 1e-3 {
				t.Errorf("column %d is not the published loading up to sign", j)
			}
		}
	}

	if !mat.EqualApprox(reduced.Coordinates(), otagoProjection, 1e-5) {
		t.Errorf("Coordinates() = %v", mat.Formatted(reduced.Coordinates()))
	}
	if got := reduced.Eigenvalues(); !closeTo(got, []float64{1.28402771, 0.0490834}, 1e-6) {
		t.Errorf("Eigenvalues() = %v", got)
	}
	if got := reduced.ComponentNames(); !reflect.DeepEqual(got, []string{"PC1", "PC2"}) {
		t.Errorf("ComponentNames() = %v", got)
	}
	if !reflect.DeepEqual(reduced.SampleIDs(), ds.SampleIDs()) {
		t.Errorf("SampleIDs() = %v", reduced.SampleIDs())
	}

	x, err := ds.NumericColumn("x")
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 2.5 {
		t.Error("PCA must not centre its input")
	}
}

func TestPCA_Truncated(t *testing.T) {
	reduced, err := PCA(otago(t), 1)
	if err != nil {
		t.Fatal(err)
	}

	if reduced.NumComponents() != 1 {
		t.Errorf("NumComponents() = %d, want 1", reduced.NumComponents())
	}
	if n := len(reduced.Eigenvalues()); n != 2 {
		t.Errorf("kept %d eigenvalues, want all 2 for variance accounting", n)
	}
	if got := reduced.PercentVariance(); math.Abs(got-0.9632) > 1e-4 {
		t.Errorf("PercentVariance() = %v, want 0.9632", got)
	}
	if r, c := reduced.Weights().Dims(); r != 2 || c != 1 {
		t.Errorf("Weights() dims = %dx%d, want 2x1", r, c)
	}
	if got := reduced.Coordinates().At(1, 0); math.Abs(got-otagoProjection.At(1, 0)) > 1e-5 {
		t.Errorf("Coordinates()[1,0] = %v", got)
	}
}

func TestPctVariancePerPrincipalComponent(t *testing.T) {
	got, err := PctVariancePerPrincipalComponent(otago(t))
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(got, []float64{0.9632, 0.0368}, 1e-4) {
		t.Errorf("PctVariancePerPrincipalComponent() = %v", got)
	}
}

func TestRecommendNumComponents(t *testing.T) {
	ds := otago(t)

	tests := []struct {
		minVariance float64
		want        int
	}{
		{0.5, 1},
		{DefaultMinVariance, 1},
		{0.95, 1},
		{0.97, 2},
		{1, 2},
	}
	for _, tt := range tests {
		got, err := RecommendNumComponents(ds, tt.minVariance)
		if err != nil {
			t.Fatalf("RecommendNumComponents(%v) error = %v", tt.minVariance, err)
		}
		if got != tt.want {
			t.Errorf("RecommendNumComponents(%v) = %d, want %d", tt.minVariance, got, tt.want)
		}
	}
}

func TestRecommendNumComponents_OutOfRange(t *testing.T) {
	ds := otago(t)
	for _, v := range []float64{95, 0, -0.1, math.NaN()} {
		_, err := RecommendNumComponents(ds, v)
		var ve *errors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("RecommendNumComponents(%v) error = %v, want ValidationError", v, err)
		}
	}
}

func TestRecommendNumComponents_Monotonic(t *testing.T) {
	ds := mustDataSet(t, dataset.FromRows([][]float64{
		{1, 2, 0, 5},
		{2, 1, 1, 3},
		{3, 5, 0, 1},
		{4, 3, 2, 0},
		{6, 4, 1, 2},
		{5, 8, 3, 1},
	}), dataset.NoLabels())

	prev := 0
	for v := 0.05; v <= 1.0; v += 0.05 {
		k, err := RecommendNumComponents(ds, v)
		if err != nil {
			t.Fatal(err)
		}
		if k < prev {
			t.Errorf("RecommendNumComponents(%v) = %d, below %d", v, k, prev)
		}
		prev = k
	}
}

func TestPercentVariance(t *testing.T) {
	if got := percentVariance([]float64{1.5, 2.2, 0.6, 4.9, 3.8, 5.75}, 3); math.Abs(got-0.77) > 0.005 {
		t.Errorf("percentVariance = %v, want about 0.77", got)
	}
	if got := percentVariance([]float64{3, 1}, 2); got != 1 {
		t.Errorf("percentVariance over all components = %v, want 1", got)
	}
}

func TestPercentVariance_ZeroTotal(t *testing.T) {
	var warned []error
	errors.SetZerologWarnFunc(func(w error) { warned = append(warned, w) })
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })

	if got := percentVariance([]float64{0, 0, 0}, 2); got != 0 {
		t.Errorf("percentVariance = %v, want 0", got)
	}
	if len(warned) != 1 {
		t.Fatalf("raised %d warnings, want 1", len(warned))
	}
	var uw *errors.UndefinedMetricWarning
	if !errors.As(warned[0], &uw) {
		t.Errorf("expected UndefinedMetricWarning, got %v", warned[0])
	}
}

func TestPCA_Validation(t *testing.T) {
	ds := otago(t)

	for _, k := range []int{0, 3, -1} {
		_, err := PCA(ds, k)
		var ve *errors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("PCA(k=%d) error = %v, want ValidationError", k, err)
		}
	}

	missing := mustDataSet(t, dataset.FromRows([][]float64{{1, math.NaN()}, {2, 3}, {4, 1}}), dataset.NoLabels())
	if _, err := PCA(missing, 1); !errors.Is(err, errors.ErrMissingValues) {
		t.Errorf("missing values: error = %v", err)
	}

	single := mustDataSet(t, dataset.FromRows([][]float64{{1, 2}}), dataset.NoLabels())
	if _, err := PCA(single, 1); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("single sample: error = %v", err)
	}

	categorical := mustDataSet(t, dataset.FromValues([][]dataset.Value{
		{dataset.Str("a"), dataset.Num(1)},
		{dataset.Str("b"), dataset.Num(2)},
	}), dataset.NoLabels())
	_, err := PCA(categorical, 1)
	var ve *errors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("categorical: error = %v, want ValidationError", err)
	}
}
