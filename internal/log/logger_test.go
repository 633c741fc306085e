package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestJSONFormatterOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	Configure(logger, buf, "info", "json")

	logger.WithField("scope", "employees").Info("picker opened")

	var payload map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON output, got error: %v", err)
	}
	if payload["msg"] != "picker opened" {
		t.Fatalf("expected msg field to be 'picker opened', got %v", payload["msg"])
	}
	if payload["scope"] != "employees" {
		t.Fatalf("expected scope field, got %v", payload["scope"])
	}
}

func TestPrettyFormatterIncludesFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	Configure(logger, buf, "debug", "pretty")

	logger.WithField("members", 3).Info("report built")

	out := buf.String()
	if !strings.Contains(out, "report built") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "members") || !strings.Contains(out, "3") {
		t.Fatalf("expected field in output, got %q", out)
	}
}

func TestLevelParsing(t *testing.T) {
	logger := NewLogger("debug", "json")
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v", logger.GetLevel())
	}

	// Unknown levels fall back to info rather than erroring.
	logger = NewLogger("verbose", "json")
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %v", logger.GetLevel())
	}
}
