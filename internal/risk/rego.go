package risk

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
	"github.com/open-policy-agent/opa/storage/inmem"

	"github.com/opconsole/opconsole/api"
)

// RegoClassifier overrides tier assignment with an embedded OPA/Rego
// policy, letting a deployment reclassify tools without a new build.
//
// The Rego policy must define the following in package opconsole:
//
//	tier: "ReadOnly" | "LocalActions" | "SystemActions"
//
// Input available to the policy:
//
//	input.tool: string
//
// When the policy leaves tier undefined the fallback classifier decides;
// an unrecognized tier value fails to the strictest tier.
type RegoClassifier struct {
	query    rego.PreparedEvalQuery
	fallback Classifier
}

// NewRegoClassifier loads a .rego policy file.
func NewRegoClassifier(path string, fallback Classifier) (*RegoClassifier, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading risk policy: %w", err)
	}
	return NewRegoClassifierFromSource(string(source), fallback)
}

// NewRegoClassifierFromSource builds a classifier from raw Rego source.
func NewRegoClassifierFromSource(source string, fallback Classifier) (*RegoClassifier, error) {
	// Parse to validate
	_, err := ast.ParseModuleWithOpts("risk.rego", source, ast.ParserOptions{RegoVersion: ast.RegoV1})
	if err != nil {
		return nil, fmt.Errorf("parsing risk policy: %w", err)
	}

	r := rego.New(
		rego.Query("data.opconsole"),
		rego.Module("risk.rego", source),
		rego.Store(inmem.New()),
	)

	query, err := r.PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing risk policy query: %w", err)
	}

	if fallback == nil {
		fallback = PrefixClassifier{}
	}
	return &RegoClassifier{query: query, fallback: fallback}, nil
}

// Tier evaluates the policy for the tool name.
func (c *RegoClassifier) Tier(toolName string) api.Tier {
	rs, err := c.query.Eval(context.Background(), rego.EvalInput(map[string]any{
		"tool": toolName,
	}))
	if err != nil || len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return c.fallback.Tier(toolName)
	}

	m, ok := rs[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return c.fallback.Tier(toolName)
	}
	t, ok := m["tier"].(string)
	if !ok {
		return c.fallback.Tier(toolName)
	}
	return api.ParseTier(t)
}
