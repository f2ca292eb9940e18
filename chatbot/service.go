// Package chatbot drives the tool-calling orchestration loop: one user
// message in, zero or more rounds of model/tool exchange, one final reply
// out.
package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/tripwise/tripwise/domain"
	"github.com/tripwise/tripwise/llm"
	"github.com/tripwise/tripwise/policy"
	"github.com/tripwise/tripwise/session"
)

// FallbackReply is returned when the round ceiling is reached without a
// plain answer. A degraded success, not an error.
const FallbackReply = "I apologize, but I'm having trouble completing this request. Please try rephrasing your question."

const defaultMaxRounds = 10

// Completer is the completion provider: conversation plus tool schemas in,
// next assistant message out.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error)
}

// Dispatcher executes named tools and advertises their schemas.
type Dispatcher interface {
	Definitions() []llm.Tool
	Dispatch(ctx context.Context, name string, args json.RawMessage) (interface{}, error)
}

// Service is the chatbot orchestration service.
type Service struct {
	completer Completer
	tools     Dispatcher
	sessions  *session.Manager
	policy    *policy.Engine
	model     string
	maxRounds int
}

// New creates the orchestration service. maxRounds bounds the number of
// completion/tool rounds per message; values <= 0 fall back to 10.
func New(completer Completer, tools Dispatcher, sessions *session.Manager, policyEngine *policy.Engine, model string, maxRounds int) *Service {
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	return &Service{
		completer: completer,
		tools:     tools,
		sessions:  sessions,
		policy:    policyEngine,
		model:     model,
		maxRounds: maxRounds,
	}
}

// ProcessMessage converts one user message into one final assistant reply,
// performing bounded rounds of tool invocation in between.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, message string) (*domain.ChatResponse, error) {
	sess, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.History = append(sess.History, llm.ChatMessage{Role: "user", Content: message})

	definitions := s.tools.Definitions()

	for round := 0; round < s.maxRounds; round++ {
		resp, err := s.completer.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
			Model:      s.model,
			Messages:   s.buildMessages(sess),
			Tools:      definitions,
			ToolChoice: "auto",
		})
		if err != nil {
			return nil, fmt.Errorf("completion request failed: %w", err)
		}

		assistant, err := llm.ExtractMessage(resp)
		if err != nil {
			return nil, fmt.Errorf("completion response invalid: %w", err)
		}

		if !assistant.HasToolCalls() {
			// Plain answer: the exchange is done.
			sess.History = append(sess.History, llm.ChatMessage{
				Role:    "assistant",
				Content: assistant.Content,
			})
			return s.finish(ctx, sess, assistant.Content)
		}

		sess.History = append(sess.History, llm.ChatMessage{
			Role:      "assistant",
			Content:   assistant.Content,
			ToolCalls: assistant.ToolCalls,
		})

		// Tool calls run strictly sequentially, in the order the model
		// emitted them, so history ordering stays deterministic.
		for _, result := range s.executeToolCalls(ctx, assistant.ToolCalls) {
			content, err := json.Marshal(result.Content)
			if err != nil {
				content = []byte(`{"error":"unserializable tool result"}`)
			}
			sess.History = append(sess.History, llm.ChatMessage{
				Role:       "tool",
				Content:    string(content),
				Name:       result.Name,
				ToolCallID: result.ToolCallID,
			})
		}
	}

	// Round ceiling reached.
	sess.History = append(sess.History, llm.ChatMessage{Role: "assistant", Content: FallbackReply})
	return s.finish(ctx, sess, FallbackReply)
}

// executeToolCalls runs each tool call and always produces one result per
// call. Malformed arguments, policy blocks, unknown names and execution
// failures all become error envelopes; none of them aborts the loop.
func (s *Service) executeToolCalls(ctx context.Context, calls []llm.ToolCall) []domain.ToolResult {
	results := make([]domain.ToolResult, 0, len(calls))

	for _, call := range calls {
		name := call.Function.Name

		var args map[string]interface{}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			results = append(results, domain.ToolResult{
				ToolCallID: call.ID,
				Name:       name,
				Content:    domain.ErrorEnvelope("invalid arguments format"),
			})
			continue
		}

		if s.policy != nil {
			decision, err := s.policy.Evaluate(ctx, name, args)
			if err != nil {
				log.Printf("ERROR: policy evaluation failed for tool %s: %v", name, err)
			} else if decision == policy.DecisionBlock {
				results = append(results, domain.ToolResult{
					ToolCallID: call.ID,
					Name:       name,
					Content:    domain.ErrorEnvelope("tool call blocked by policy"),
				})
				continue
			}
		}

		content, err := s.tools.Dispatch(ctx, name, json.RawMessage(call.Function.Arguments))
		if err != nil {
			log.Printf("WARN: tool %s failed: %v", name, err)
			results = append(results, domain.ToolResult{
				ToolCallID: call.ID,
				Name:       name,
				Content:    domain.ErrorEnvelope(err.Error()),
			})
			continue
		}

		results = append(results, domain.ToolResult{
			ToolCallID: call.ID,
			Name:       name,
			Content:    content,
		})
	}

	return results
}

// finish persists state and builds the response envelope. The caller holds
// the session lock.
func (s *Service) finish(ctx context.Context, sess *session.Session, reply string) (*domain.ChatResponse, error) {
	if err := s.sessions.SaveState(ctx, sess); err != nil {
		return nil, err
	}
	return buildResponse(sess, reply), nil
}

// SessionData builds a response envelope for an existing session without
// processing a message, lazily rehydrating from the store when needed.
func (s *Service) SessionData(ctx context.Context, sessionID string) (*domain.ChatResponse, error) {
	sess, err := s.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	reply := ""
	if n := len(sess.History); n > 0 {
		reply = sess.History[n-1].Content
	}
	return buildResponse(sess, reply), nil
}

// Reset clears the session, in memory and in the store.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.sessions.Reset(ctx, sessionID)
}

// UpdateState merges a partial state update into an active session.
func (s *Service) UpdateState(ctx context.Context, sessionID string, updates map[string]interface{}) (domain.WorkflowState, error) {
	return s.sessions.UpdateState(ctx, sessionID, updates)
}

func buildResponse(sess *session.Session, reply string) *domain.ChatResponse {
	history := make([]llm.ChatMessage, len(sess.History))
	copy(history, sess.History)
	return &domain.ChatResponse{
		Reply:     reply,
		State:     sess.State.Clone(),
		History:   history,
		SessionID: sess.ID,
	}
}
