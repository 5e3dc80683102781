package log

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologProvider is the default LoggerProvider, writing JSON records through zerolog.
type ZerologProvider struct {
	mu    sync.RWMutex
	out   io.Writer
	level Level
}

// NewZerologProvider creates a provider writing to w at the given minimum level.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{out: w, level: level}
}

func (p *ZerologProvider) base() zerolog.Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return zerolog.New(p.out).
		Level(toZerologLevel(p.level)).
		With().
		Timestamp().
		Logger()
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{zl: p.base()}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	zl := p.base().With().Str(ComponentKey, name).Logger()
	return &zerologLogger{zl: zl}
}

// SetLevel implements LoggerProvider.SetLevel. Loggers already handed out keep
// the level they were created with.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// SetOutput redirects loggers created afterwards to w.
func (p *ZerologProvider) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
}

// warn emits a library warning; structured warnings are embedded as objects.
func (p *ZerologProvider) warn(w error) {
	zl := p.base()
	e := zl.Warn()
	if m, ok := w.(zerolog.LogObjectMarshaler); ok {
		e = e.EmbedObject(m)
	}
	e.Msg(w.Error())
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) { emit(l.zl.Debug(), msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...any)  { emit(l.zl.Info(), msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...any)  { emit(l.zl.Warn(), msg, fields) }

func (l *zerologLogger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Err(err)
			fields = fields[1:]
		}
	}
	emit(e, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	zlevel := toZerologLevel(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

// emit tolerates a nil event, which zerolog returns for disabled levels.
func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// The default provider discards everything, warnings included, until
// SetupLogger, SetOutput or SetProvider points it somewhere.
var (
	providerMu      sync.RWMutex
	defaultZerolog  = NewZerologProvider(io.Discard, LevelInfo)
	defaultProvider LoggerProvider = defaultZerolog
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	errors.SetZerologWarnFunc(defaultZerolog.warn)
}

// SetOutput redirects the package-level provider when it is a *ZerologProvider.
func SetOutput(w io.Writer) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	if zp, ok := defaultProvider.(*ZerologProvider); ok {
		zp.SetOutput(w)
	}
}

// GetLogger returns a logger from the package-level provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a component logger from the package-level provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return defaultProvider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level of the package-level provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	defaultProvider.SetLevel(level)
}

// SetProvider replaces the package-level provider. Warnings raised through
// pkg/errors follow a *ZerologProvider; any other provider leaves them to
// errors.SetWarningHandler.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultProvider = p
	if zp, ok := p.(*ZerologProvider); ok {
		errors.SetZerologWarnFunc(zp.warn)
		return
	}
	errors.SetZerologWarnFunc(nil)
}
