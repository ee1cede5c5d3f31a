package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/metricgov/metricgov/pkg/config"
)

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("schema loaded", "metrics", 12)
	out := buf.String()
	if !strings.Contains(out, "schema loaded") || !strings.Contains(out, "metrics=12") {
		t.Errorf("text output = %q", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("schema loaded", "metrics", 12)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["msg"] != "schema loaded" {
		t.Errorf("msg = %v", record["msg"])
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info record passed a warn-level logger")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn record was filtered out")
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "verbose"}, nil); err == nil {
		t.Error("unknown level accepted")
	}
	if _, err := New(config.LoggingConfig{Format: "logfmt"}, nil); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	Component(logger, "validator").Info("ready")
	if !strings.Contains(buf.String(), "component=validator") {
		t.Errorf("component attribute missing: %q", buf.String())
	}
}
