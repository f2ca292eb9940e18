// Package tools maps tool names to executable travel-data capabilities and
// to the parameter schemas advertised to the model.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/tripwise/tripwise/llm"
)

// ErrUnknownTool is returned by Dispatch for names not in the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Handler executes one tool call with already-validated JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (interface{}, error)

type entry struct {
	def llm.Tool
	run Handler
}

// Registry is a static mapping from tool name to capability plus schema.
// The set is fixed at construction; duplicate names fail at startup.
type Registry struct {
	entries map[string]entry
	order   []string
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

func (r *Registry) register(def llm.Tool, run Handler) error {
	name := def.Function.Name
	if name == "" {
		return fmt.Errorf("tool definition without a name")
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("tool %q registered twice", name)
	}
	r.entries[name] = entry{def: def, run: run}
	r.order = append(r.order, name)
	return nil
}

// Definitions returns all tool schemas in registration order.
func (r *Registry) Definitions() []llm.Tool {
	return lo.Map(r.order, func(name string, _ int) llm.Tool {
		return r.entries[name].def
	})
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Dispatch executes the named tool. An unknown name returns ErrUnknownTool;
// the caller decides how to contain it.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return e.run(ctx, args)
}

// decode unmarshals tool arguments into the handler's parameter struct.
func decode(args json.RawMessage, into interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// Schema literal helpers. The advertised schemas are static declarations,
// not user-configurable.

func obj(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func strEnum(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description, "enum": values}
}

func integer(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func number(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func strArray(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

func objParam(description string) map[string]interface{} {
	return map[string]interface{}{"type": "object", "description": description}
}

func fn(name, description string, parameters map[string]interface{}) llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
