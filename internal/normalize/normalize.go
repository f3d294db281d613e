// Package normalize converts the backend's heterogeneous action encodings
// into the canonical ActionEvent representation. Two historical encodings
// are tolerated: the structured event lists and a legacy flat string list
// with a prefix grammar. Normalization is total; malformed or absent
// fields never produce an error, only a well-formed (possibly empty) slice.
package normalize

import (
	"strings"

	"github.com/opconsole/opconsole/api"
	"github.com/opconsole/opconsole/internal/risk"
)

// Normalizer maps raw ChatResults to canonical action events. Tier
// inference for legacy entries is delegated to the configured classifier.
type Normalizer struct {
	tiers risk.Classifier
}

// New creates a normalizer. A nil classifier selects the default
// prefix classifier.
func New(tiers risk.Classifier) *Normalizer {
	if tiers == nil {
		tiers = risk.PrefixClassifier{}
	}
	return &Normalizer{tiers: tiers}
}

// ActionEvents returns the canonical event list for a result, preferring
// the structured action_events field and falling back to the legacy
// actions_executed string list.
func (n *Normalizer) ActionEvents(result *api.ChatResult) []api.ActionEvent {
	if result == nil {
		return nil
	}
	if len(result.ActionEvents) > 0 {
		return sanitizeAll(result.ActionEvents)
	}

	out := make([]api.ActionEvent, 0, len(result.ActionsExecuted))
	for _, raw := range result.ActionsExecuted {
		if evt, ok := n.decodeLegacy(raw); ok {
			out = append(out, evt)
		}
	}
	return out
}

// ProposedActions prefers the structured proposed_actions field, otherwise
// derives the proposal set from ActionEvents by keeping events that carry
// an authorization decision state.
func (n *Normalizer) ProposedActions(result *api.ChatResult) []api.ActionEvent {
	if result == nil {
		return nil
	}
	if len(result.ProposedActions) > 0 {
		return sanitizeAll(result.ProposedActions)
	}

	var out []api.ActionEvent
	for _, evt := range n.ActionEvents(result) {
		switch evt.Status {
		case api.StatusConsentRequired, api.StatusDenied, api.StatusApproved:
			out = append(out, evt)
		}
	}
	return out
}

// ExecutedActionEvents prefers the structured executed_action_events field,
// otherwise keeps the executed subset of ActionEvents.
func (n *Normalizer) ExecutedActionEvents(result *api.ChatResult) []api.ActionEvent {
	if result == nil {
		return nil
	}
	if len(result.ExecutedActionEvents) > 0 {
		return sanitizeAll(result.ExecutedActionEvents)
	}

	var out []api.ActionEvent
	for _, evt := range n.ActionEvents(result) {
		if evt.Status == api.StatusExecuted {
			out = append(out, evt)
		}
	}
	return out
}

// decodeLegacy parses one legacy actions_executed string:
//
//	confirm_required:<tool>:<reason...>  consent is pending
//	denied:<tool>:<reason...>            consent was denied
//	<anything else>                      bare tool name, already executed
//
// The reason is the remainder after the second field, so embedded
// delimiters survive. Entries with an empty tool name are dropped.
func (n *Normalizer) decodeLegacy(raw string) (api.ActionEvent, bool) {
	tool := raw
	status := api.StatusExecuted
	reason := ""

	parts := strings.SplitN(raw, ":", 3)
	switch parts[0] {
	case "confirm_required", "denied":
		if len(parts) < 2 {
			return api.ActionEvent{}, false
		}
		tool = parts[1]
		if len(parts) == 3 {
			reason = parts[2]
		}
		if parts[0] == "confirm_required" {
			status = api.StatusConsentRequired
		} else {
			status = api.StatusDenied
		}
	}

	if tool == "" {
		return api.ActionEvent{}, false
	}
	return api.ActionEvent{
		ToolName:       tool,
		CapabilityTier: n.tiers.Tier(tool),
		Status:         status,
		Reason:         reason,
	}, true
}

func sanitizeAll(events []api.ActionEvent) []api.ActionEvent {
	out := make([]api.ActionEvent, 0, len(events))
	for _, evt := range events {
		if evt.ToolName == "" {
			continue
		}
		evt.CapabilityTier = api.ParseTier(string(evt.CapabilityTier))
		evt.Status = api.ParseStatus(string(evt.Status))
		out = append(out, evt)
	}
	return out
}
