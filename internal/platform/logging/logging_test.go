package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/config"
)

func TestNewWithWriter_JSONRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}

	logger.Info().Msg("dropped")
	logger.Warn().Str("employee_id", "42").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single json line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "kept" || entry["employee_id"] != "42" || entry["service"] != "compliance" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewWithWriter(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
