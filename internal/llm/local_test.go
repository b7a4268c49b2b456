package llm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalToolRunner_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	runner := NewLocalToolRunner(dir)
	ctx := context.Background()

	out, err := runner.Execute(ctx, "write_file", json.RawMessage(`{"path":"notes/a.txt","content":"hello"}`))
	if err != nil {
		t.Fatalf("write_file error = %v", err)
	}
	if !strings.Contains(out, "wrote 5 bytes") {
		t.Errorf("write_file output = %q", out)
	}

	got, err := runner.Execute(ctx, "read_file", json.RawMessage(`{"path":"notes/a.txt"}`))
	if err != nil {
		t.Fatalf("read_file error = %v", err)
	}
	if got != "hello" {
		t.Errorf("read_file = %q, want %q", got, "hello")
	}
}

func TestLocalToolRunner_PathEscapeRejected(t *testing.T) {
	runner := NewLocalToolRunner(t.TempDir())

	_, err := runner.Execute(context.Background(), "read_file", json.RawMessage(`{"path":"../../etc/passwd"}`))
	if err == nil || !strings.Contains(err.Error(), "escapes working directory") {
		t.Errorf("expected path escape error, got %v", err)
	}
}

func TestLocalToolRunner_RunCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	runner := NewLocalToolRunner(dir)

	out, err := runner.Execute(context.Background(), "run_command", json.RawMessage(`{"command":"ls"}`))
	if err != nil {
		t.Fatalf("run_command error = %v", err)
	}
	if !strings.Contains(out, "f.txt") {
		t.Errorf("run_command output = %q, want listing with f.txt", out)
	}
}

func TestLocalToolRunner_UnknownTool(t *testing.T) {
	runner := NewLocalToolRunner(t.TempDir())

	if _, err := runner.Execute(context.Background(), "teleport", nil); err == nil {
		t.Error("unknown tool did not error")
	}
}

func TestTranslateModelForBedrock(t *testing.T) {
	got := translateModelForBedrock("claude-sonnet-4-20250514")
	if !strings.HasPrefix(string(got), "us.anthropic.") {
		t.Errorf("translateModelForBedrock = %q, want Bedrock profile", got)
	}

	// Unknown models pass through unchanged.
	if got := translateModelForBedrock("custom-model"); got != "custom-model" {
		t.Errorf("custom model translated to %q", got)
	}
}
