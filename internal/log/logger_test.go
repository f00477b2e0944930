package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Level: level, Component: ComponentHTTP, Output: buf})
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo)

	logger.Info("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "component=http") || !strings.Contains(out, "k=v") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelWarn)

	logger.Info("quiet")
	logger.Debug("quieter")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentStorage)

	if logger.Component() != ComponentStorage {
		t.Fatalf("Component() = %q", logger.Component())
	}
	logger.Info("x")
	if !strings.Contains(buf.String(), "component=storage") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentExpense).
		WithOperation(OpCreate).
		WithExpense(7, "12.50", "Food", "2024-01-15").
		WithError(errors.New("boom")).
		WithError(nil)

	if f[FieldExpenseID] != int64(7) || f[FieldCategory] != "Food" || f[FieldError] != "boom" {
		t.Errorf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != len(f)*2 {
		t.Errorf("ToSlice length mismatch")
	}

	noID := NewFields().WithExpense(0, "1.00", "Food", "2024-01-01")
	if _, ok := noID[FieldExpenseID]; ok {
		t.Error("zero id should be omitted")
	}
}

func TestNewContextAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelInfo).With(FieldRequestID, "req-1")

	got := FromContext(NewContext(context.Background(), logger))
	got.Info("inside")

	if got.Component() != ComponentHTTP {
		t.Errorf("component = %q, want %q", got.Component(), ComponentHTTP)
	}
	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Errorf("request id missing from %q", buf.String())
	}
}

func TestFromContextFallback(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil || logger.Component() != ComponentApp {
		t.Fatalf("unexpected fallback logger %+v", logger)
	}
}
