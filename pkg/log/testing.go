package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// capture is the JSON-lines sink shared by a TestLogger and everything derived from it with With.
type capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *capture) write(entry map[string]any) {
	line, err := json.Marshal(entry)
	if err != nil {
		line, _ = json.Marshal(map[string]any{"message": entry["message"], "marshal_error": err.Error()})
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Write(line)
	c.buf.WriteByte('\n')
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// TestLogger records entries at or above its level as JSON lines.
// Error values are stored by their message.
type TestLogger struct {
	sink   *capture
	level  Level
	fields []any
}

// NewTestLogger returns a logger and the buffer it writes to.
//
//	logger, _ := log.NewTestLogger(log.LevelDebug)
//	est := decomposition.NewEstimator(decomposition.WithLogger(logger))
//	...
//	logger.ContainsField(log.ComponentsKey, float64(2))
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	sink := &capture{}
	return &TestLogger{sink: sink, level: level}, &sink.buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.emit(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.emit(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.emit(LevelWarn, msg, fields) }

func (t *TestLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttrKey, err}, fields[1:]...)
		}
	}
	t.emit(LevelError, msg, fields)
}

func (t *TestLogger) With(fields ...any) Logger {
	merged := make([]any, 0, len(t.fields)+len(fields))
	merged = append(merged, t.fields...)
	return &TestLogger{sink: t.sink, level: t.level, fields: append(merged, fields...)}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) emit(level Level, msg string, fields []any) {
	if !t.Enabled(context.Background(), level) {
		return
	}
	entry := map[string]any{"level": level.String(), "message": msg}
	for _, pairs := range [][]any{t.fields, fields} {
		for i := 0; i+1 < len(pairs); i += 2 {
			value := pairs[i+1]
			if err, ok := value.(error); ok {
				value = err.Error()
			}
			entry[fmt.Sprint(pairs[i])] = value
		}
	}
	t.sink.write(entry)
}

// Entries decodes every captured record.
func (t *TestLogger) Entries() ([]map[string]any, error) {
	var entries []map[string]any
	for _, line := range strings.Split(t.sink.String(), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.sink.String(), message)
}

// ContainsField reports whether some record has key equal to value.
// Numbers come back from JSON as float64.
func (t *TestLogger) ContainsField(key string, value any) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}
