package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler expands the first ErrAttr on a record into StacktraceAttrKey
// and "source" attributes taken from the cockroachdb error chain.
type ErrFmtHandler struct {
	next slog.Handler
}

func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{next: handler}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := recordError(r); err != nil {
		r.AddAttrs(errorDetails(err)...)
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrFmtHandler) WithGroup(name string) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithGroup(name)}
}

func recordError(r slog.Record) error {
	var found error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		found, _ = attr.Value.Any().(error)
		return false
	})
	return found
}

func errorDetails(err error) []slog.Attr {
	var attrs []slog.Attr
	switch {
	case len(errors.GetSafeDetails(err).SafeDetails) > 0:
		attrs = append(attrs, slog.String(StacktraceAttrKey, errors.GetSafeDetails(err).SafeDetails[0]))
	case errors.GetReportableStackTrace(err) != nil:
		attrs = append(attrs, slog.String(StacktraceAttrKey, fmt.Sprintf("%+v", err)))
	}
	if file, line, fn, ok := errors.GetOneLineSource(err); ok {
		attrs = append(attrs, slog.String("source", fmt.Sprintf("%s:%d %s", file, line, fn)))
	}
	return attrs
}
