package errors

import "github.com/cockroachdb/errors"

// 以下は github.com/cockroachdb/errors の薄いラッパー。
// 呼び出し側が標準の errors と cockroachdb を両方 import せずに済むようにする。

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func Wrap(err error, message string) error { return errors.WrapWithDepth(1, err, message) }

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.WrapWithDepthf(1, err, format, args...)
}

func New(message string) error { return errors.NewWithDepth(1, message) }

func Newf(format string, args ...interface{}) error {
	return errors.NewWithDepthf(1, format, args...)
}

func WithStack(err error) error { return errors.WithStackDepth(err, 1) }
