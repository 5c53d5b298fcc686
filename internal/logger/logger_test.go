package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	t.Cleanup(func() {
		SetOutput(&bytes.Buffer{})
		log.SetLevel(logrus.InfoLevel)
	})
	return &buf
}

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		expectError bool
	}{
		{name: "Debug level", level: "debug"},
		{name: "Info level", level: "info"},
		{name: "Warn level", level: "warn"},
		{name: "Upper case level", level: "ERROR"},
		{name: "Invalid level", level: "verbose", expectError: true},
		{name: "Empty level", level: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	log.SetLevel(logrus.InfoLevel)

	Debug("hidden debug line")
	Info("visible info line")

	output := buf.String()
	if strings.Contains(output, "hidden debug line") {
		t.Errorf("Debug message should be filtered at info level: %s", output)
	}
	if !strings.Contains(output, "visible info line") {
		t.Errorf("Expected info message in output: %s", output)
	}
}

func TestLogging(t *testing.T) {
	buf := captureOutput(t)

	tests := []struct {
		name          string
		logFunc       func(string, ...map[string]interface{})
		message       string
		fields        map[string]interface{}
		expectedLevel string
	}{
		{
			name:          "Debug message",
			logFunc:       Debug,
			message:       "skipping entry",
			expectedLevel: "debug",
		},
		{
			name:          "Info message",
			logFunc:       Info,
			message:       "work list rendered",
			expectedLevel: "info",
		},
		{
			name:          "Warn message",
			logFunc:       Warn,
			message:       "rebuild failed",
			expectedLevel: "warning",
		},
		{
			name:    "Info with fields",
			logFunc: Info,
			message: "directory read",
			fields: map[string]interface{}{
				"source": "works",
			},
			expectedLevel: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			log.SetLevel(logrus.DebugLevel)

			if tt.fields != nil {
				tt.logFunc(tt.message, tt.fields)
			} else {
				tt.logFunc(tt.message)
			}

			output := buf.String()
			if !strings.Contains(output, "level="+tt.expectedLevel) {
				t.Errorf("Expected log level %s, got %s", tt.expectedLevel, output)
			}
			if !strings.Contains(output, tt.message) {
				t.Errorf("Expected message %s, got %s", tt.message, output)
			}
			for k, v := range tt.fields {
				if !strings.Contains(output, k+"="+v.(string)) {
					t.Errorf("Expected field %s=%v in output: %s", k, v, output)
				}
			}
		})
	}
}

func TestError(t *testing.T) {
	buf := captureOutput(t)

	testError := errors.New("permission denied")

	Error("failed to write destination", testError)
	output := buf.String()
	if !strings.Contains(output, "level=error") {
		t.Error("Expected error level")
	}
	if !strings.Contains(output, "permission denied") {
		t.Error("Expected error details")
	}

	buf.Reset()
	Error("failed to write destination", testError, map[string]interface{}{
		"destination": "index.html",
	})
	output = buf.String()
	if !strings.Contains(output, "destination=index.html") {
		t.Error("Expected error with fields")
	}
}
