package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
)

func TestTestLoggerLevels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("debug message", "key1", "value1")
	testLogger.Info("info message", OperationKey, OperationSplit, SamplesKey, 10)
	testLogger.Warn("warning message")
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorTypeKey, "ValidationError")

	if buffer.Len() == 0 {
		t.Fatal("Expected log output, got empty buffer")
	}
	if testLogger.ContainsMessage("debug message") {
		t.Error("Debug message should be filtered at Info level")
	}
	for _, msg := range []string{"info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !testLogger.ContainsField(SamplesKey, 10.0) {
		t.Error("Expected data.samples=10")
	}
	if !testLogger.ContainsField(ErrAttrKey, "boom") {
		t.Error("Expected error field to be recorded")
	}
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(ModelNameKey, "PCA", ComponentKey, "decomposition")
	contextLogger.Debug("fitted", ComponentsKey, 2)

	if !testLogger.ContainsField(ModelNameKey, "PCA") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentsKey, 2.0) {
		t.Error("Components field not found")
	}

	entries, err := testLogger.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
}

func TestTestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelWarn)
	ctx := context.Background()

	if testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Info should be disabled at Warn level")
	}
	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Error should be enabled at Warn level")
	}
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelInfo)

	logger := provider.GetLoggerWithName("dataset")
	logger.Debug("hidden")
	logger.Info("split done", PercentKey, 0.7, StratifiedKey, true)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Debug record should not be written at Info level")
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &record); err != nil {
		t.Fatalf("output is not a single JSON record: %v\n%s", err, out)
	}
	if record["message"] != "split done" {
		t.Errorf("message = %v", record["message"])
	}
	if record[ComponentKey] != "dataset" {
		t.Errorf("component = %v", record[ComponentKey])
	}
	if record[PercentKey] != 0.7 {
		t.Errorf("percent = %v", record[PercentKey])
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Debug should not be enabled")
	}
	provider.SetLevel(LevelDebug)
	if !provider.GetLogger().Enabled(context.Background(), LevelDebug) {
		t.Error("Debug should be enabled after SetLevel")
	}
}

func TestZerologProviderWarningHook(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelInfo)
	SetProvider(provider)
	defer SetProvider(defaultZerolog)

	errors.Warn(errors.NewDataConversionWarning("height", "numeric", "categorical", "string bin names"))

	out := buf.String()
	if !strings.Contains(out, `"type":"DataConversionWarning"`) {
		t.Errorf("expected structured warning, got %s", out)
	}
	if !strings.Contains(out, `"feature":"height"`) {
		t.Errorf("expected feature field, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultProviderIsSilent(t *testing.T) {
	defaultZerolog.mu.RLock()
	out := defaultZerolog.out
	defaultZerolog.mu.RUnlock()
	if out != io.Discard {
		t.Fatalf("default provider writes to %T, want io.Discard", out)
	}

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	errors.Warn(errors.NewUndefinedMetricWarning("percent_variance", "zero total variance", 0))
	if !strings.Contains(buf.String(), `"type":"UndefinedMetricWarning"`) {
		t.Errorf("warning should follow SetOutput, got %q", buf.String())
	}
}
