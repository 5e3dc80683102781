package model

import "gonum.org/v1/gonum/mat"

// Transformer は In を学習し Out へ変換するインターフェース
type Transformer[In, Out any] interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X In) error

	// Transform は学習済みのパラメータでデータを変換する
	Transform(X In) (Out, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X In) (Out, error)
}

// MatrixTransformer は行列から行列への変換
type MatrixTransformer = Transformer[mat.Matrix, mat.Matrix]

// Fittable は学習状態を問い合わせられるモデル
type Fittable interface {
	IsFitted() bool
}

// ParameterGetter はハイパーパラメータを公開するモデル
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
