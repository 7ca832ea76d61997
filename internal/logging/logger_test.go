package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitJSON(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("hidden")
	Warn().Str("table", "trades_by_a_d").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["table"] != "trades_by_a_d" || entry["level"] != "warn" {
		t.Errorf("Unexpected log entry: %v", entry)
	}
}

func TestInitInvalidLevel(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "chatty", Output: &buf})

	Debug().Msg("hidden")
	Info().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("Debug line logged at fallback level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Info line missing at fallback level")
	}
}

func TestInitPretty(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "info", Pretty: true, Output: &buf})
	Info().Msg("console")

	if !strings.Contains(buf.String(), "console") {
		t.Errorf("Expected console output, got %q", buf.String())
	}
	if strings.HasPrefix(buf.String(), "{") {
		t.Error("Pretty output should not be JSON")
	}
}
