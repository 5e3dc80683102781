package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "project")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "project" {
		t.Errorf("Expected operation 'project', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if panicErr.Error() != "panic in project: test panic message" {
		t.Errorf("unexpected message %q", panicErr.Error())
	}
	if !strings.Contains(panicErr.String(), "Stack trace:") {
		t.Error("String() should include stack trace information")
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "covariance")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if !strings.Contains(err.Error(), "panic in covariance: panic after error") {
		t.Errorf("Error message should contain panic info: %s", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("Should be able to identify original error with errors.Is")
	}
}

func TestSafeExecute_GonumShapePanic(t *testing.T) {
	err := SafeExecute("project", func() error {
		var out mat.Dense
		out.Mul(mat.NewDense(2, 3, nil), mat.NewDense(2, 3, nil))
		return nil
	})
	if err == nil {
		t.Fatal("Expected error from gonum shape panic")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if !errors.Is(err, mat.ErrShape) {
		t.Errorf("Expected panic value to unwrap to mat.ErrShape, got %v", panicErr.PanicValue)
	}
}

func TestSafeExecute_PassesThroughResult(t *testing.T) {
	if err := SafeExecute("noop", func() error { return nil }); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	originalErr := fmt.Errorf("function error")
	if err := SafeExecute("noop", func() error { return originalErr }); err != originalErr {
		t.Fatalf("Expected original error, got: %v", err)
	}
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("BenchmarkOp", func() error { return nil })
	}
}
