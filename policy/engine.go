// Package policy evaluates tool calls against a rego policy before they
// reach the travel-data provider.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decision values produced by the policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Engine is the OPA policy engine with a prepared query.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given policy content and prepares the decision
// query. A policy that fails to compile is a startup error.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.tool_policy.decision"),
		rego.Module("tool_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks one tool call. Input carries tool_name and args.
func (e *Engine) Evaluate(ctx context.Context, toolName string, args map[string]interface{}) (string, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	input := map[string]interface{}{
		"tool_name": toolName,
		"args":      args,
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, nil
	}

	if decision, ok := results[0].Expressions[0].Value.(string); ok {
		return decision, nil
	}

	return "", fmt.Errorf("policy returned unexpected decision type")
}

// DefaultPolicy allows every tool call except those that exceed hard
// Amadeus request limits: at most 9 travellers per flight search and at
// most 3 hotel ids per ratings request.
const DefaultPolicy = `
package tool_policy

default decision = "allow"

decision = "block" {
	input.tool_name == "flight_offers_search"
	input.args.adults > 9
}

decision = "block" {
	input.tool_name == "hotel_ratings"
	count(input.args.hotelIds) > 3
}
`
