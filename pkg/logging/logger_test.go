package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded", " warn ", slog.LevelWarn},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if level := ParseLevel(tt.value); level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, level, tt.expected)
			}
		})
	}
}

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "ERROR")

	logger := NewLogger()
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("Enabled(WARN) = true, want false with MONOWHEEL_LOG_LEVEL=ERROR")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(ERROR) = false, want true")
	}
}

func TestVehicleID(t *testing.T) {
	t.Run("generate", func(t *testing.T) {
		id1 := GenerateVehicleID()
		id2 := GenerateVehicleID()

		if id1 == id2 {
			t.Error("GenerateVehicleID() returned duplicate IDs")
		}
		if len(id1) != 16 {
			t.Errorf("GenerateVehicleID() length = %d, want 16", len(id1))
		}
	})

	t.Run("round trip", func(t *testing.T) {
		ctx := WithVehicleID(context.Background(), "wheel-1")
		if got := GetVehicleID(ctx); got != "wheel-1" {
			t.Errorf("GetVehicleID() = %q, want %q", got, "wheel-1")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := GetVehicleID(context.Background()); got != "" {
			t.Errorf("GetVehicleID() = %q, want empty string", got)
		}
	})

	t.Run("auto-generate", func(t *testing.T) {
		ctx := WithVehicleID(context.Background(), "")
		if got := GetVehicleID(ctx); len(got) != 16 {
			t.Errorf("GetVehicleID() = %q, want a generated 16 character ID", got)
		}
	})
}

func TestSanitizeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{"nan", slog.Float64("fuel", math.NaN()), "NaN"},
		{"positive infinity", slog.Float64("speed", math.Inf(1)), "+Inf"},
		{"negative infinity", slog.Float64("speed", math.Inf(-1)), "-Inf"},
		{"finite float", slog.Float64("fuel", 12.5), "12.5"},
		{"string", slog.String("surface", "ground"), "ground"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sanitizeAttributes(nil, tt.attr)
			if result.Value.String() != tt.expected {
				t.Errorf("sanitizeAttributes() = %q, want %q", result.Value.String(), tt.expected)
			}
			if result.Key != tt.attr.Key {
				t.Errorf("sanitizeAttributes() key = %q, want %q", result.Key, tt.attr.Key)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)
	ctx := WithVehicleID(context.Background(), "wheel-7")

	decode := func(t *testing.T) map[string]interface{} {
		t.Helper()
		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Failed to parse log JSON: %v (%s)", err, buf.String())
		}
		return entry
	}

	tests := []struct {
		name  string
		log   func()
		level string
		extra map[string]interface{}
	}{
		{
			name:  "info",
			log:   func() { logger.Info(ctx, "surface changed", "surface", "wall") },
			level: "INFO",
			extra: map[string]interface{}{"surface": "wall"},
		},
		{
			name:  "warn",
			log:   func() { logger.Warn(ctx, "fuel exhausted", "fuel", 0.0) },
			level: "WARN",
			extra: map[string]interface{}{"fuel": 0.0},
		},
		{
			name:  "error",
			log:   func() { logger.Error(ctx, "construction failed", errors.New("no body")) },
			level: "ERROR",
			extra: map[string]interface{}{"error": "no body"},
		},
		{
			name:  "debug",
			log:   func() { logger.Debug(ctx, "tick", "speed", math.Inf(1)) },
			level: "DEBUG",
			extra: map[string]interface{}{"speed": "+Inf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			entry := decode(t)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %v", entry["level"], tt.level)
			}
			if entry["vehicle_id"] != "wheel-7" {
				t.Errorf("vehicle_id = %v, want wheel-7", entry["vehicle_id"])
			}
			for k, want := range tt.extra {
				if entry[k] != want {
					t.Errorf("%s = %v, want %v", k, entry[k], want)
				}
			}
		})
	}
}

func TestLogWithoutVehicleID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	logger.Info(context.Background(), "test message")

	if strings.Contains(buf.String(), "vehicle_id") {
		t.Error("Log should not contain vehicle_id when none is set in context")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if result := WrapError(nil, "context"); result != nil {
			t.Errorf("WrapError(nil) = %v, want nil", result)
		}
	})

	t.Run("formatted", func(t *testing.T) {
		original := errors.New("original error")
		wrapped := WrapError(original, "tick %d on %s", 42, "ground")

		if wrapped.Error() != "tick 42 on ground: original error" {
			t.Errorf("WrapError() = %q", wrapped.Error())
		}
		if !errors.Is(wrapped, original) {
			t.Error("WrapError() should preserve original error")
		}
	})
}
