package runtime

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestEvaluateStringReportsLexicalErrorAndContinues(t *testing.T) {
	in := NewInterpreter()
	var printed bytes.Buffer
	in.Out = &printed
	out := captureStdout(t, func() {
		EvaluateString(in, "@ print 1;")
	})
	if !strings.Contains(out, "Error:") {
		t.Fatalf("expected a diagnostic for the unexpected character, got %q", out)
	}
	if strings.TrimRight(printed.String(), "\n") != "1" {
		t.Fatalf("expected the statement after the bad character to still run, got %q", printed.String())
	}
}

func TestEvaluateStringDrainsInterpreterErrorsBetweenCalls(t *testing.T) {
	in := NewInterpreter()
	var out bytes.Buffer
	in.Out = &out

	captureStdout(t, func() {
		EvaluateString(in, "missing = 1;")
	})
	if len(in.Errors) != 0 {
		t.Fatalf("expected interpreter errors to be drained after reporting, got %v", in.Errors)
	}

	second := captureStdout(t, func() {
		EvaluateString(in, "print 1;")
	})
	if strings.Contains(second, "missing") {
		t.Fatalf("expected no stale diagnostic to resurface, got %q", second)
	}
}

func TestEvaluateFileSkipsLeadingShebang(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/script.amm"
	if err := os.WriteFile(path, []byte("#!/usr/bin/env amm\nprint 1 + 1;\n"), 0o644); err != nil {
		t.Fatalf("write temp script: %v", err)
	}

	in := NewInterpreter()
	var out bytes.Buffer
	in.Out = &out
	if err := EvaluateFile(in, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimRight(out.String(), "\n") != "2" {
		t.Fatalf("expected 2, got %q", out.String())
	}
}

func TestEvaluateFileMissingPathReturnsError(t *testing.T) {
	in := NewInterpreter()
	if err := EvaluateFile(in, "/nonexistent/path/does/not/exist.amm"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
