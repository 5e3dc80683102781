package errors

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// 警告はエラーではなく、処理を続けたまま利用者に知らせる事象。
// 既定では捨てる。pkg/log の ZerologProvider が SetZerologWarnFunc で出力先を登録し、
// 登録がなければ SetWarningHandler のハンドラに渡す。
var warnings = struct {
	sync.Mutex
	handler func(error)
	zerolog func(error)
}{handler: discardWarning}

func discardWarning(error) {}

// SetWarningHandler は zerolog 出力が無効なときの警告ハンドラを設定する。nil で既定（破棄）に戻る。
//
//	errors.SetWarningHandler(func(w error) { fmt.Fprintln(os.Stderr, w) })
func SetWarningHandler(handler func(w error)) {
	warnings.Lock()
	defer warnings.Unlock()
	if handler == nil {
		handler = discardWarning
	}
	warnings.handler = handler
}

// SetZerologWarnFunc は構造化ログへの警告出力を設定する。nil で無効になる。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warnings.Lock()
	defer warnings.Unlock()
	warnings.zerolog = warnFunc
}

// Warn は w を警告として通知する。ハンドラはロックの外で呼ぶので、中から Warn してよい
func Warn(w error) {
	warnings.Lock()
	deliver := warnings.handler
	if warnings.zerolog != nil {
		deliver = warnings.zerolog
	}
	warnings.Unlock()
	deliver(w)
}

// DataConversionWarning は列の表現が数値からカテゴリへ暗黙に変わったことを表す。
type DataConversionWarning struct {
	Feature  string
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("pml: feature %q converted from %s to %s: %s", w.Feature, w.FromType, w.ToType, w.Reason)
}

func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "DataConversionWarning").
		Str("feature", w.Feature).
		Str("from", w.FromType).
		Str("to", w.ToType).
		Str("reason", w.Reason)
}

func NewDataConversionWarning(feature, from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{Feature: feature, FromType: from, ToType: to, Reason: reason}
}

// UndefinedMetricWarning は指標が定義できず Result で代用したことを表す（例: 全固有値が0）。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("pml: %s is undefined (%s); using %g", w.Metric, w.Condition, w.Result)
}

func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "UndefinedMetricWarning").
		Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result)
}

func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}
