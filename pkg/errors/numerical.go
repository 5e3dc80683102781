package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxCollected は1回の検査で集める非有限値の上限
const maxCollected = 10

// divideEpsilon 未満の分母は0とみなす
const divideEpsilon = 1e-10

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckNumericalStability は values に NaN か Inf があれば NumericalInstabilityError を返す
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	var bad []float64
	for _, v := range values {
		if !finite(v) {
			bad = append(bad, v)
			if len(bad) == maxCollected {
				break
			}
		}
	}
	if bad == nil {
		return nil
	}
	return withCallerStack(&NumericalInstabilityError{Operation: operation, Values: bad, Iteration: iteration})
}

// CheckMatrix は m の全要素を検査する
func CheckMatrix(operation string, m mat.Matrix) error {
	r, c := m.Dims()
	var bad []float64
	for i := 0; i < r && len(bad) < maxCollected; i++ {
		for j := 0; j < c && len(bad) < maxCollected; j++ {
			if v := m.At(i, j); !finite(v) {
				bad = append(bad, v)
			}
		}
	}
	if bad == nil {
		return nil
	}
	return withCallerStack(&NumericalInstabilityError{Operation: operation, Values: bad})
}

// SafeDivide は分母がほぼ0なら0を返す
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < divideEpsilon {
		return 0
	}
	return numerator / denominator
}
