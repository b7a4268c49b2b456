// Package llm defines the external text-generation and tool-execution
// capabilities the planning engine depends on, plus the Anthropic-backed
// implementations.
package llm

import (
	"context"
	"encoding/json"
)

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	// Name is the tool to invoke.
	Name string
	// Input is the raw JSON parameters for the tool.
	Input json.RawMessage
}

// Response is the output of one generation call.
type Response struct {
	// Text is the generated text.
	Text string
	// ToolCalls are any tool invocations the model requested.
	ToolCalls []ToolCall
}

// Generator is the text-generation capability: it turns a prompt into
// text. It stands in for any LLM backend; a failed call propagates into
// task-failure handling.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Response, error)
}

// ToolRunner is the optional tool-execution capability.
type ToolRunner interface {
	Execute(ctx context.Context, name string, input json.RawMessage) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (Response, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (Response, error) {
	return f(ctx, prompt)
}
