package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LocalToolRunner implements ToolRunner against the local filesystem,
// with every path resolved inside a working directory.
type LocalToolRunner struct {
	workDir string
}

// NewLocalToolRunner creates a tool runner rooted at the given directory.
func NewLocalToolRunner(workDir string) *LocalToolRunner {
	return &LocalToolRunner{workDir: workDir}
}

// Execute implements ToolRunner.
func (r *LocalToolRunner) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	switch name {
	case "read_file":
		return r.readFile(input)
	case "write_file":
		return r.writeFile(input)
	case "run_command":
		return r.runCommand(ctx, input)
	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func (r *LocalToolRunner) readFile(input json.RawMessage) (string, error) {
	var params struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	path, err := r.resolvePath(params.Path)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(content), nil
}

func (r *LocalToolRunner) writeFile(input json.RawMessage) (string, error) {
	var params struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	path, err := r.resolvePath(params.Path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}
	if err := os.WriteFile(path, []byte(params.Content), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return fmt.Sprintf("wrote %d bytes to %s", len(params.Content), params.Path), nil
}

func (r *LocalToolRunner) runCommand(ctx context.Context, input json.RawMessage) (string, error) {
	var params struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if strings.TrimSpace(params.Command) == "" {
		return "", fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", params.Command)
	cmd.Dir = r.workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %w\n%s", err, out)
	}
	return string(out), nil
}

// resolvePath joins the path with the working directory and rejects
// anything that escapes it.
func (r *LocalToolRunner) resolvePath(path string) (string, error) {
	resolved := filepath.Join(r.workDir, path)
	rel, err := filepath.Rel(r.workDir, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return resolved, nil
}
