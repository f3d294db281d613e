package api

// Tool describes one callable tool exposed by the backend.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SessionSummary is a backend session listing entry.
type SessionSummary struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	CreatedAtUnixSeconds int64  `json:"created_at_unix_seconds"`
	UpdatedAtUnixSeconds int64  `json:"updated_at_unix_seconds"`
	MessageCount         int    `json:"message_count"`
}

// Session is a full backend session as returned by sessions.create.
type Session struct {
	ID                   string        `json:"id"`
	Title                string        `json:"title"`
	CreatedAtUnixSeconds int64         `json:"created_at_unix_seconds"`
	UpdatedAtUnixSeconds int64         `json:"updated_at_unix_seconds"`
	Messages             []ChatMessage `json:"messages,omitempty"`
}

// SessionCreateParams is the params object for sessions.create.
type SessionCreateParams struct {
	Title string `json:"title,omitempty"`
}

// ProviderInfo describes one configured model provider.
type ProviderInfo struct {
	Name          string `json:"name"`
	Enabled       bool   `json:"enabled"`
	IsActive      bool   `json:"is_active"`
	HasAuth       bool   `json:"has_auth"`
	ConfigSummary string `json:"config_summary,omitempty"`
}

// PendingConsentRecord is a backend-side entry in the approvals queue.
type PendingConsentRecord struct {
	ConsentID              string `json:"consent_id"`
	SessionID              string `json:"session_id,omitempty"`
	RequestedAtUnixSeconds int64  `json:"requested_at_unix_seconds"`
	ExpiresAtUnixSeconds   int64  `json:"expires_at_unix_seconds,omitempty"`
	ToolName               string `json:"tool_name"`
	CapabilityTier         string `json:"capability_tier"`
	Status                 string `json:"status"`
	Rationale              string `json:"rationale,omitempty"`
	ArgumentsPreview       string `json:"arguments_preview,omitempty"`
	RequestFingerprint     string `json:"request_fingerprint"`
}

// ConsentListParams is the params object for consent.list.
type ConsentListParams struct {
	Status    string `json:"status,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// AuditEntry is one backend audit log entry.
type AuditEntry struct {
	AuditID              string   `json:"audit_id"`
	TimestampUnixSeconds int64    `json:"timestamp_unix_seconds"`
	SessionID            string   `json:"session_id,omitempty"`
	Provider             string   `json:"provider"`
	PolicyDecisions      []string `json:"policy_decisions,omitempty"`
	ProposedToolCalls    []string `json:"proposed_tool_calls,omitempty"`
	ExecutedActions      []string `json:"executed_actions,omitempty"`
	EvidenceSummaries    []string `json:"evidence_summaries,omitempty"`
}

// AuditListParams is the params object for audit.list.
type AuditListParams struct {
	SessionID string `json:"session_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// ProjectOpenParams is the params object for project.open.
type ProjectOpenParams struct {
	Path string `json:"path"`
}

// ProjectOpenResult reports what the backend found at the opened path.
type ProjectOpenResult struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	IsDir  bool   `json:"is_dir"`
}

// ProjectStatusParams is the params object for project.status.
type ProjectStatusParams struct {
	Path string `json:"path,omitempty"`
}

// ProjectStatusResult reports the state of the active project directory.
type ProjectStatusResult struct {
	Path       string `json:"path"`
	Exists     bool   `json:"exists"`
	IsDir      bool   `json:"is_dir"`
	EntryCount int    `json:"entry_count"`
}

// SystemHealth is the backend self-report returned by system.health.
type SystemHealth struct {
	OK              bool     `json:"ok"`
	ActiveProvider  string   `json:"active_provider,omitempty"`
	ProviderCount   int      `json:"provider_count"`
	PendingConsents int      `json:"pending_consents"`
	ProjectPath     string   `json:"project_path,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}
