// Package preprocessing は特徴量の標準化を提供する
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/pmlgo/core/model"
	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StdDevMode は標準偏差の分母の選択
type StdDevMode int

const (
	// PopulationStdDev は n で割る母標準偏差
	PopulationStdDev StdDevMode = iota
	// SampleStdDev は n-1 で割る標本標準偏差
	SampleStdDev
)

func (m StdDevMode) String() string {
	switch m {
	case PopulationStdDev:
		return "population"
	case SampleStdDev:
		return "sample"
	default:
		return fmt.Sprintf("StdDevMode(%d)", int(m))
	}
}

var (
	_ model.MatrixTransformer = (*StandardScaler)(nil)
	_ model.ParameterGetter   = (*StandardScaler)(nil)
)

// minScale 未満の標準偏差は1として扱う（ゼロ除算を避ける）
const minScale = 1e-8

// StandardScaler は特徴量ごとに平均0、標準偏差1へ変換する
//
// NaN は欠損値として扱う。統計量の計算では無視し、変換後も NaN のまま残す。
type StandardScaler struct {
	model.BaseEstimator

	// 学習結果。WithMean が false なら Mean は全て0、WithStd が false なら Scale は全て1
	Mean      []float64
	Scale     []float64
	NFeatures int

	WithMean bool
	WithStd  bool
	Mode     StdDevMode
}

// NewStandardScaler は未学習のスケーラーを返す
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true, preprocessing.SampleStdDev)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool, mode StdDevMode) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd, Mode: mode}
}

// NewStandardScalerDefault は NewStandardScaler(true, true, PopulationStdDev)
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true, PopulationStdDev)
}

// Fit は列ごとに NaN を除いた平均と標準偏差を求める
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if s.Mode != PopulationStdDev && s.Mode != SampleStdDev {
		return errors.NewValidationError("mode", "unknown standard deviation mode", s.Mode.String())
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, 0, r)
	for j := 0; j < c; j++ {
		col = col[:0]
		for i := 0; i < r; i++ {
			if v := X.At(i, j); !math.IsNaN(v) {
				col = append(col, v)
			}
		}

		mean, variance := s.moments(col)
		if s.WithMean {
			s.Mean[j] = mean
		}

		s.Scale[j] = 1.0
		if s.WithStd {
			if std := math.Sqrt(variance); std >= minScale {
				s.Scale[j] = std
			}
		}
	}

	s.SetFitted()
	return nil
}

// moments は欠損値を除いた列の平均と分散を返す。値が無い列は (0, 0)
func (s *StandardScaler) moments(col []float64) (mean, variance float64) {
	n := len(col)
	switch n {
	case 0:
		return 0, 0
	case 1:
		return col[0], 0
	}
	mean, variance = stat.MeanVariance(col, nil)
	if s.Mode == PopulationStdDev {
		variance *= float64(n-1) / float64(n)
	}
	return mean, variance
}

// Transform は (x - Mean) / Scale を返す。NaN はそのまま残る
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("Transform", X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	})
}

// FitTransform は X で学習して X 自身を変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は Transform の逆変換
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("InverseTransform", X, func(j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	})
}

// apply は学習済みかと列数を確認してから f を要素ごとに適用する
func (s *StandardScaler) apply(method string, X mat.Matrix, f func(j int, v float64) float64) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", method)
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler."+method, s.NFeatures, c, 1)
	}
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 { return f(j, v) }, X)
	return out, nil
}

func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
		"mode":      s.Mode.String(),
	}
}

func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, mode=%s)", s.WithMean, s.WithStd, s.Mode)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, mode=%s, n_features=%d)",
		s.WithMean, s.WithStd, s.Mode, s.NFeatures)
}
