package decomposition

import (
	"math"
	"reflect"
	"testing"

	"github.com/YuminosukeSato/pmlgo/dataset"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestReducedDataSet_KeepsIdentity(t *testing.T) {
	source := mustDataSet(t,
		dataset.FromRows([][]float64{
			{4, 1, 9},
			{2, 3, 0},
			{5, 1, 3},
		}).WithSampleIDs("Cat", "Dog", "Rat"),
		dataset.LabelMap(map[any]dataset.Value{
			"Cat": dataset.Str("pet"),
			"Dog": dataset.Str("pet"),
			"Rat": dataset.Str("pest"),
		}),
	)

	reduced, err := PCA(source, 2)
	if err != nil {
		t.Fatal(err)
	}

	if ids := reduced.SampleIDs(); !reflect.DeepEqual(ids, []any{"Cat", "Dog", "Rat"}) {
		t.Errorf("SampleIDs() = %v", ids)
	}
	if !reduced.IsLabelled() || !reflect.DeepEqual(reduced.Labels(), dataset.Strs("pet", "pet", "pest")) {
		t.Errorf("Labels() = %v", reduced.Labels())
	}
	if reduced.NumSamples() != 3 {
		t.Errorf("NumSamples() = %d", reduced.NumSamples())
	}

	ds := reduced.DataSet()
	if names := ds.FeatureList(); !reflect.DeepEqual(names, []string{"PC1", "PC2"}) {
		t.Errorf("FeatureList() = %v", names)
	}
	if err := ds.SetNumericColumn("PC1", []float64{0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if reduced.Coordinates().At(0, 0) == 0 {
		t.Error("DataSet() must return a copy")
	}
}

func TestReducedDataSet_FirstComponentImpacts(t *testing.T) {
	reduced, err := PCA(otago(t), 1)
	if err != nil {
		t.Fatal(err)
	}

	impacts, err := reduced.FirstComponentImpacts()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(impacts.Keys, []string{"y", "x"}) {
		t.Errorf("Keys = %v, want [y x]", impacts.Keys)
	}
	if !closeTo(impacts.Values, []float64{0.73517866, 0.6778734}, 1e-6) {
		t.Errorf("Values = %v", impacts.Values)
	}
}

func TestReducedDataSet_PlotAdapters(t *testing.T) {
	reduced, err := PCA(otago(t), 2)
	if err != nil {
		t.Fatal(err)
	}

	xys, err := reduced.ComponentXYs(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if xys.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", xys.Len())
	}
	x, y := xys.XY(1)
	if math.Abs(x-otagoProjection.At(1, 0)) > 1e-5 || math.Abs(y-otagoProjection.At(1, 1)) > 1e-5 {
		t.Errorf("XY(1) = (%v, %v)", x, y)
	}

	if _, err := reduced.ComponentXYs(0, 2); err == nil {
		t.Error("expected an error for component 2")
	}

	values := reduced.VarianceValues()
	if values.Len() != 2 {
		t.Fatalf("VarianceValues().Len() = %d, want 2", values.Len())
	}
	if math.Abs(values.Value(0)-0.9632) > 1e-4 {
		t.Errorf("VarianceValues()[0] = %v", values.Value(0))
	}
}

func TestNewReducedDataSet_Validation(t *testing.T) {
	source := otago(t)

	_, err := NewReducedDataSet(mat.NewDense(3, 1, nil), source, []float64{1, 0}, nil)
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("row mismatch: expected DimensionError, got %v", err)
	}

	_, err = NewReducedDataSet(mat.NewDense(10, 1, nil), source, []float64{1, 0}, mat.NewDense(2, 2, nil))
	if !errors.As(err, &de) {
		t.Errorf("weights mismatch: expected DimensionError, got %v", err)
	}

	r, err := NewReducedDataSet(mat.NewDense(10, 1, nil), source, []float64{1, 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Weights() != nil {
		t.Error("Weights() should be nil when none were given")
	}
	if _, err := r.FirstComponentImpacts(); err == nil {
		t.Error("FirstComponentImpacts() needs weights")
	}
	if got := r.PercentVariance(); got != 1 {
		t.Errorf("PercentVariance() = %v, want 1", got)
	}
}
