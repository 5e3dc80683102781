package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は recover した panic を表す。gonum は形状の不一致などで panic するため、
// 行列演算は SafeExecute で包んでこのエラーに変換する。
type PanicError struct {
	Operation  string
	PanicValue interface{}
	StackTrace string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap は panic の値が error ならそれを返す（mat.ErrShape などを Is で判定できる）
func (e *PanicError) Unwrap() error {
	err, _ := e.PanicValue.(error)
	return err
}

// String はスタックトレース付きの詳細を返す
func (e *PanicError) String() string {
	return e.Error() + "\nStack trace:\n" + e.StackTrace
}

func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{Operation: operation, PanicValue: panicValue, StackTrace: string(debug.Stack())}
}

// Recover は名前付き戻り値 err へのポインタと共に defer する。
// err が既に設定されていれば、元のエラーを %w で残したまま panic を追記する。
//
//	func project(x, w mat.Matrix) (out *mat.Dense, err error) {
//	    defer errors.Recover(&err, "project")
//	    ...
//	}
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = fmt.Errorf("panic in %s: %v (after %w)", operation, r, *err)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute は fn を実行し、panic をエラーとして返す
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
