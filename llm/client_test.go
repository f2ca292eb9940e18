package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", 5*time.Second), server
}

func TestCreateChatCompletionParsesToolCalls(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		fmt.Fprint(w, `{
			"id": "cmpl-1",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "tc_1",
						"type": "function",
						"function": {"name": "hotel_list", "arguments": "{\"cityCode\":\"PAR\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`)
	})

	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "test-model",
		Messages: []ChatMessage{{Role: "user", Content: "hotels in Paris"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}

	msg, err := ExtractMessage(resp)
	if err != nil {
		t.Fatalf("ExtractMessage failed: %v", err)
	}
	if !msg.HasToolCalls() {
		t.Fatal("expected tool calls")
	}
	if msg.ToolCalls[0].Function.Name != "hotel_list" {
		t.Fatalf("unexpected tool name %q", msg.ToolCalls[0].Function.Name)
	}
	if msg.ToolCalls[0].Function.Arguments != `{"cityCode":"PAR"}` {
		t.Fatalf("unexpected arguments %q", msg.ToolCalls[0].Function.Arguments)
	}
}

func TestCreateChatCompletionSendsTools(t *testing.T) {
	var received ChatCompletionRequest
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	})

	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:      "test-model",
		Messages:   []ChatMessage{{Role: "user", Content: "hi"}},
		Tools:      []Tool{{Type: "function", Function: ToolFunction{Name: "hotel_list"}}},
		ToolChoice: "auto",
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}

	if received.Model != "test-model" || received.ToolChoice != "auto" {
		t.Fatalf("unexpected request %+v", received)
	}
	if len(received.Tools) != 1 || received.Tools[0].Function.Name != "hotel_list" {
		t.Fatalf("tools not forwarded: %+v", received.Tools)
	}
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
	})

	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "test-model",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "OpenRouter API error [429]") || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractMessageNoChoices(t *testing.T) {
	if _, err := ExtractMessage(&ChatCompletionResponse{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
	if _, err := ExtractMessage(nil); err == nil {
		t.Fatal("expected error for nil response")
	}
}

func TestExtractMessageDefaultsRole(t *testing.T) {
	msg, err := ExtractMessage(&ChatCompletionResponse{
		Choices: []Choice{{Message: &ChatMessage{Content: "hi"}}},
	})
	if err != nil {
		t.Fatalf("ExtractMessage failed: %v", err)
	}
	if msg.Role != "assistant" {
		t.Fatalf("expected assistant role, got %q", msg.Role)
	}
}
