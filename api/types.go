package api

// Tier is the 3-level capability risk classification attached to a tool.
type Tier string

const (
	TierReadOnly      Tier = "ReadOnly"
	TierLocalActions  Tier = "LocalActions"
	TierSystemActions Tier = "SystemActions"
)

// ParseTier maps a raw tier string to the closed tier set. Unknown or
// missing values fail to the strictest tier.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierReadOnly, TierLocalActions, TierSystemActions:
		return Tier(s)
	default:
		return TierSystemActions
	}
}

// Status is the lifecycle state of a proposed or executed action.
type Status string

const (
	StatusConsentRequired Status = "consent_required"
	StatusDenied          Status = "denied"
	StatusApproved        Status = "approved"
	StatusExecuted        Status = "executed"
	StatusUnknown         Status = "unknown"
)

// ParseStatus maps a raw status string to the closed status set.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusConsentRequired, StatusDenied, StatusApproved, StatusExecuted:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// ActionEvent is one proposed or executed action reported by the backend.
type ActionEvent struct {
	ToolName         string `json:"tool_name"`
	CapabilityTier   Tier   `json:"capability_tier"`
	Status           Status `json:"status"`
	Reason           string `json:"reason,omitempty"`
	ArgumentsPreview string `json:"arguments_preview,omitempty"`
	EvidenceSummary  string `json:"evidence_summary,omitempty"`
}

// ConsentRequestMeta is the backend's presentation metadata for a pending
// authorization. RequiresExtraConfirmationClick is a pointer so an explicit
// false can be told apart from an absent field.
type ConsentRequestMeta struct {
	Scope                          string   `json:"scope,omitempty"`
	HumanSummary                   string   `json:"human_summary,omitempty"`
	RiskFactors                    []string `json:"risk_factors,omitempty"`
	RequiresExtraConfirmationClick *bool    `json:"requires_extra_confirmation_click,omitempty"`
	TTLSeconds                     int64    `json:"ttl_seconds,omitempty"`
	ExpiresAtUnixSeconds           int64    `json:"expires_at_unix_seconds,omitempty"`
}

// ChatResult is the backend response to a request that may trigger actions.
// The action set is redundantly encoded: ProposedActions and
// ExecutedActionEvents are the current structured fields, ActionEvents and
// ActionsExecuted are legacy encodings kept for older backends.
type ChatResult struct {
	FinalText          string              `json:"final_text,omitempty"`
	AuditID            string              `json:"audit_id,omitempty"`
	SessionID          string              `json:"session_id,omitempty"`
	RequestFingerprint string              `json:"request_fingerprint,omitempty"`
	ExecutionState     string              `json:"execution_state,omitempty"`
	ConsentToken       string              `json:"consent_token,omitempty"`
	ConsentRequest     *ConsentRequestMeta `json:"consent_request,omitempty"`

	ProposedActions      []ActionEvent `json:"proposed_actions,omitempty"`
	ExecutedActionEvents []ActionEvent `json:"executed_action_events,omitempty"`
	ActionEvents         []ActionEvent `json:"action_events,omitempty"`
	ActionsExecuted      []string      `json:"actions_executed,omitempty"`
}

// Mode is the request-level authorization policy knob.
type Mode string

const (
	ModeBestEffort          Mode = "BestEffort"
	ModeRequireConfirmation Mode = "RequireConfirmation"
)

// ChatMessage is one turn of operator or assistant text.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProviderConfig selects the model provider for a chat request.
type ProviderConfig struct {
	ProviderName string `json:"provider_name"`
	Model        string `json:"model,omitempty"`
}

// ChatRequest is the params object for chat.request.
type ChatRequest struct {
	SessionID      string         `json:"session_id,omitempty"`
	Messages       []ChatMessage  `json:"messages"`
	ProviderConfig ProviderConfig `json:"provider_config"`
	Mode           Mode           `json:"mode"`
}

// ConsentTokenParams is the params object for chat.approve and chat.deny.
type ConsentTokenParams struct {
	ConsentToken string `json:"consent_token"`
}
