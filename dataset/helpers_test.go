package dataset

import (
	"io"
	"math"
	"sync"
	"testing"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/YuminosukeSato/pmlgo/pkg/log"
)

func mustNew(t *testing.T, data Input, labels LabelInput) *DataSet {
	t.Helper()
	ds, err := New(data, labels)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ds
}

// animals is a small labelled fixture with string ids.
func animals(t *testing.T) *DataSet {
	t.Helper()
	return mustNew(t,
		FromRows([][]float64{
			{4, 1, 9},
			{2, 3, 0},
			{5, 1, 3},
		}).WithSampleIDs("Cat", "Dog", "Rat").WithFeatureNames("weight", "legs", "tail"),
		LabelMap(map[any]Value{"Cat": Str("pet"), "Dog": Str("pet"), "Rat": Str("pest")}),
	)
}

func sequence(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	return rows
}

func ints(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func numericColumn(t *testing.T, ds *DataSet, feature string) []float64 {
	t.Helper()
	col, err := ds.NumericColumn(feature)
	if err != nil {
		t.Fatalf("NumericColumn(%q) error = %v", feature, err)
	}
	return col
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

// captureWarnings collects library warnings raised during the test.
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var (
		mu  sync.Mutex
		got []error
	)
	errors.SetZerologWarnFunc(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, w)
	})
	t.Cleanup(func() {
		log.SetProvider(log.NewZerologProvider(io.Discard, log.LevelInfo))
	})
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), got...)
	}
}
