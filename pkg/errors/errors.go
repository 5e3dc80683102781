// Package errors は DataSet 操作と PCA の失敗を表す型付きエラーを提供する。
//
// すべての NewXxx は github.com/cockroachdb/errors で呼び出し元のスタックトレースを付与し、
// 各エラー型は zerolog.LogObjectMarshaler を実装する。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// withCallerStack は NewXxx 自身のフレームを除いたスタックを付ける
func withCallerStack(err error) error {
	return errors.WithStackDepth(err, 2)
}

// 番兵エラー。Wrap/Wrapf で文脈を足しても Is で判定できる。
var (
	ErrEmptyData          = errors.New("empty data")
	ErrEigenDecomposition = errors.New("eigendecomposition did not converge")
	ErrMissingValues      = errors.New("data contains missing values")
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrUnknownSample      = errors.New("unknown sample id")
)

// ValidationError は引数や入力表現が受け付けられないことを表す。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pml: invalid %s: %s (got %v)", e.ParamName, e.Reason, e.Value)
}

func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ValidationError").
		Str("param", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

// NewValidationError は param の値 value が reason により不正であることを表すエラーを返す
func NewValidationError(param, reason string, value interface{}) error {
	return withCallerStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// InconsistentSampleIdError はラベルのサンプルIDがデータの行IDと集合または順序で一致しないことを表す。
type InconsistentSampleIdError struct {
	DataIDs  []interface{}
	LabelIDs []interface{}
}

func (e *InconsistentSampleIdError) Error() string {
	return fmt.Sprintf("pml: label sample ids %v do not match data sample ids %v", e.LabelIDs, e.DataIDs)
}

func (e *InconsistentSampleIdError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "InconsistentSampleIdError").
		Int("data_ids", len(e.DataIDs)).
		Int("label_ids", len(e.LabelIDs))
}

func NewInconsistentSampleIdError(dataIDs, labelIDs []interface{}) error {
	return withCallerStack(&InconsistentSampleIdError{DataIDs: dataIDs, LabelIDs: labelIDs})
}

// UnlabelledDataSetError はラベル付き DataSet を必要とする操作 Op が、ラベルなしで呼ばれたことを表す。
type UnlabelledDataSetError struct {
	Op string
}

func (e *UnlabelledDataSetError) Error() string {
	return fmt.Sprintf("pml: %s requires a labelled DataSet", e.Op)
}

func (e *UnlabelledDataSetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "UnlabelledDataSetError").Str("operation", e.Op)
}

func NewUnlabelledDataSetError(op string) error {
	return withCallerStack(&UnlabelledDataSetError{Op: op})
}

// NotFittedError は Fit 前に学習結果を使うメソッドが呼ばれたことを表す。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("pml: %s.%s called before Fit", e.ModelName, e.Method)
}

func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "NotFittedError").
		Str("model", e.ModelName).
		Str("method", e.Method)
}

func NewNotFittedError(modelName, method string) error {
	return withCallerStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は行数（Axis 0）または特徴量数（Axis 1）の不一致を表す。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("pml: %s: expected %d %s, got %d", e.Op, e.Expected, e.axisName(), e.Got)
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "DimensionError").
		Str("operation", e.Op).
		Str("axis", e.axisName()).
		Int("expected", e.Expected).
		Int("got", e.Got)
}

func NewDimensionError(op string, expected, got, axis int) error {
	return withCallerStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ModelError は推定器の処理 Op が Kind の段階で失敗したことを表し、原因 Err を保持する。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pml: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("pml: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

func (e *ModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ModelError").
		Str("operation", e.Op).
		Str("kind", e.Kind)
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

func NewModelError(op, kind string, err error) error {
	return withCallerStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// NumericalInstabilityError は計算結果に NaN や Inf が現れたことを表す。
// Iteration は反復計算でなければ0。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

// maxReportedValues を超える値はメッセージで省略する
const maxReportedValues = 5

func (e *NumericalInstabilityError) Error() string {
	shown := e.Values
	suffix := ""
	if len(shown) > maxReportedValues {
		shown, suffix = shown[:maxReportedValues], " ..."
	}
	msg := fmt.Sprintf("pml: %s produced non-finite values %v%s", e.Operation, shown, suffix)
	if e.Iteration > 0 {
		msg += fmt.Sprintf(" at iteration %d", e.Iteration)
	}
	return msg
}

func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "NumericalInstabilityError").
		Str("operation", e.Operation).
		Int("count", len(e.Values)).
		Int("iteration", e.Iteration)
}

func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return withCallerStack(&NumericalInstabilityError{Operation: operation, Values: values, Iteration: iteration})
}
