package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if want := filepath.Join(logDir, "alog.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "key", "value")
	Error("Test error message")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "Test info message") {
		t.Error("info message written below the default warn level")
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Error("warning message missing from log file")
	}
}

func TestInitDebugMode(t *testing.T) {
	var stderr bytes.Buffer
	err := Init(Config{
		Debug:     true,
		ConfigDir: t.TempDir(),
		Stderr:    &stderr,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("Test debug message in debug mode")
	if !strings.Contains(stderr.String(), "Test debug message in debug mode") {
		t.Errorf("debug output not mirrored to stderr: %q", stderr.String())
	}

	Info("Test info message", "component", "test")
	if !strings.Contains(stderr.String(), "component=test") {
		t.Errorf("keyvals missing from output: %q", stderr.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
