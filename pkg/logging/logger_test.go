package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelInfo, Output: buf})

	logger.Info().Msg("visible message")
	logger.Debug().Msg("suppressed message")

	out := buf.String()
	if !strings.Contains(out, "visible message") {
		t.Errorf("Expected output to contain info message, got: %s", out)
	}
	if strings.Contains(out, "suppressed message") {
		t.Errorf("Expected debug message to be suppressed at info level, got: %s", out)
	}
}

func TestSetup_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelDebug, Output: buf})

	logger.Debug().Msg("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("Expected debug output at debug level, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected zerolog.Level
	}{
		{name: "debug", level: LevelDebug, expected: zerolog.DebugLevel},
		{name: "info", level: LevelInfo, expected: zerolog.InfoLevel},
		{name: "warn", level: LevelWarn, expected: zerolog.WarnLevel},
		{name: "warning alias", level: "warning", expected: zerolog.WarnLevel},
		{name: "error", level: LevelError, expected: zerolog.ErrorLevel},
		{name: "unknown defaults to info", level: "trace2", expected: zerolog.InfoLevel},
		{name: "mixed case", level: "DEBUG", expected: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger("exporter")
	logger.Info().Msg("component test")

	if !strings.Contains(buf.String(), `"component":"exporter"`) {
		t.Errorf("Expected component field in output, got: %s", buf.String())
	}
}
