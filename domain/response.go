package domain

import "github.com/tripwise/tripwise/llm"

// ChatResponse is the envelope returned for one exchange: the final reply,
// the current workflow state, the full in-memory history and the session id.
type ChatResponse struct {
	Reply     string            `json:"reply"`
	State     WorkflowState     `json:"state"`
	History   []llm.ChatMessage `json:"history"`
	SessionID string            `json:"session_id"`
}

// ToolResult is the outcome of one tool call. Content is either the tool's
// decoded result or an error envelope; a tool failure is a value here,
// never an aborted loop.
type ToolResult struct {
	ToolCallID string
	Name       string
	Content    interface{}
}

// ErrorEnvelope wraps a tool failure description so the model can react
// to it in the next round.
func ErrorEnvelope(description string) map[string]string {
	return map[string]string{"error": description}
}
