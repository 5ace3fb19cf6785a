package utils

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLogEventFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	LogEvent("", "docs", "generate_ticket", "reservation_id=33")

	out := buf.String()
	if !strings.Contains(out, "[DOCS]") {
		t.Fatalf("module tag missing or not uppercased: %q", out)
	}
	if !strings.Contains(out, "action=generate_ticket") {
		t.Fatalf("action missing: %q", out)
	}
	if !strings.Contains(out, "request_id=-") {
		t.Fatalf("blank request id not normalized: %q", out)
	}
	if !strings.Contains(out, "reservation_id=33") {
		t.Fatalf("message dropped: %q", out)
	}
}
