package diagnostic

import (
	"bytes"
	"strings"
	"testing"
)

func TestReportIncludesLineAndMessage(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, 3, "Unexpected character.")
	out := buf.String()
	if !strings.HasPrefix(out, "3: ") {
		t.Fatalf("expected output to start with the line number, got %q", out)
	}
	if !strings.Contains(out, "Unexpected character.") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestReportUsageOmitsLineNumber(t *testing.T) {
	var buf bytes.Buffer
	ReportUsage(&buf, "Usage: amm [File]")
	out := buf.String()
	if strings.ContainsAny(out, "0123456789") {
		t.Fatalf("expected no digits (no line number) in usage diagnostic, got %q", out)
	}
	if !strings.Contains(out, "Usage: amm [File]") {
		t.Fatalf("expected usage message in output, got %q", out)
	}
}
