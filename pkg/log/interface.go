// Package log is the logging layer used by dataset and decomposition.
//
// Components ask for a named Logger and pass slog-style key-value pairs,
// using the keys in attributes.go:
//
//	logger := log.GetLoggerWithName("dataset")
//	logger.Debug("split", log.PercentKey, 0.7, log.SamplesKey, ds.NumSamples())
//
// The package-level provider writes JSON through zerolog. Tests hand a
// TestLogger straight to the component and assert on what it captured.
package log

import "context"

// Logger takes a message followed by alternating keys and values.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	// Error attaches a leading error argument under ErrAttrKey.
	Error(msg string, fields ...any)
	With(fields ...any) Logger
	// Enabled guards fields that are costly to build, such as eigenvalue slices.
	Enabled(ctx context.Context, level Level) bool
}

// Level shares its numeric values with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// LoggerProvider hands out loggers that share one level.
type LoggerProvider interface {
	GetLogger() Logger
	// GetLoggerWithName tags every record with ComponentKey=name.
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
