package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type textReport struct{}

func (textReport) Text() string { return "report body\n" }

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextFormatterUsesRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatText).FormatTo(&buf, textReport{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "report body\n" {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]int{"total": 6}
	if err := NewFormatter(FormatJSON).FormatTo(&buf, data); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["total"] != 6 {
		t.Errorf("decoded = %v", decoded)
	}
	if !strings.Contains(buf.String(), "  ") {
		t.Error("JSON output is not indented")
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"mode": "strict"}
	if err := NewFormatter(FormatYAML).FormatTo(&buf, data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "mode: strict") {
		t.Errorf("yaml output = %q", buf.String())
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	underlying := NewExitError(ExitValidationError, errString("schema invalid"))
	if underlying.Code != ExitValidationError {
		t.Errorf("Code = %d, want %d", underlying.Code, ExitValidationError)
	}
	if underlying.Error() != "schema invalid" {
		t.Errorf("Error() = %q", underlying.Error())
	}
}

type errString string

func (e errString) Error() string { return string(e) }
