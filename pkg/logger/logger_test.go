package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewLogger(t *testing.T) {
	l := NewLoggerAt(t.TempDir(), "", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}
	l.SetConsole(&bytes.Buffer{})

	// Test that logger methods don't panic
	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")
	l.Critical("Test critical message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelDiscordColor(t *testing.T) {
	tests := []struct {
		level LogLevel
		color int
	}{
		{LevelCritical, 0xFF0000},
		{LevelError, 0xFF0000},
		{LevelWarn, 0xFFFF00},
		{LevelSuccess, 0x00FF00},
		{LevelInfo, 0x0000FF},
		{LevelDebug, 0x800080},
		{LevelSystem, 0x808080},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.DiscordColor(); got != tt.color {
				t.Errorf("LogLevel.DiscordColor() = %v, want %v", got, tt.color)
			}
		})
	}
}

func TestLogFileCreation(t *testing.T) {
	logsDir := filepath.Join(t.TempDir(), "logs")

	l := NewLoggerAt(logsDir, "", "")
	defer l.Close()

	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	for _, name := range []string{"combined.log", "error.log"} {
		if _, err := os.Stat(filepath.Join(logsDir, name)); os.IsNotExist(err) {
			t.Errorf("Expected %s to be created", name)
		}
	}
}

func TestFileOutputRouting(t *testing.T) {
	logsDir := t.TempDir()
	l := NewLoggerAt(logsDir, "", "")
	var console bytes.Buffer
	l.SetConsole(&console)

	l.Info("routine message", "Ledger")
	l.Error("failed to persist", "Ledger")
	l.Close()

	combined, err := os.ReadFile(filepath.Join(logsDir, "combined.log"))
	if err != nil {
		t.Fatalf("reading combined.log: %v", err)
	}
	errs, err := os.ReadFile(filepath.Join(logsDir, "error.log"))
	if err != nil {
		t.Fatalf("reading error.log: %v", err)
	}

	if !strings.Contains(string(combined), "routine message") || !strings.Contains(string(combined), "failed to persist") {
		t.Errorf("combined.log = %q, want both messages", combined)
	}
	if !strings.Contains(string(combined), "prefix=Ledger") {
		t.Errorf("combined.log = %q, want prefix field", combined)
	}
	if strings.Contains(string(errs), "routine message") {
		t.Errorf("error.log = %q, should not contain info messages", errs)
	}
	if !strings.Contains(string(errs), "failed to persist") {
		t.Errorf("error.log = %q, want error message", errs)
	}
	if !strings.Contains(console.String(), "[Ledger]: routine message") {
		t.Errorf("console = %q, want prefixed message", console.String())
	}
}

func TestGlobalLoggerInit(t *testing.T) {
	// Reset the global logger for this test
	logger = nil
	once = sync.Once{}

	l := Init("", "")
	if l == nil {
		t.Fatal("Expected Init to return a logger")
	}

	l2 := Init("different", "different")
	if l != l2 {
		t.Error("Expected Init to return the same logger on subsequent calls")
	}

	if l3 := Get(); l != l3 {
		t.Error("Expected Get to return the same logger")
	}

	l.Close()
}

func TestWebhookFor(t *testing.T) {
	l := &Logger{errorWebhookURL: "errors", logsWebhookURL: "logs"}

	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelCritical, "errors"},
		{LevelError, "errors"},
		{LevelWarn, "logs"},
		{LevelSystem, "logs"},
	}
	for _, tt := range tests {
		if got := l.webhookFor(tt.level); got != tt.want {
			t.Errorf("webhookFor(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}

	if got := LogLevel(99).String(); got != "UNKNOWN" {
		t.Errorf("LogLevel(99).String() = %v, want UNKNOWN", got)
	}
}
