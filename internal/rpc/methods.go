package rpc

import (
	"context"

	"github.com/opconsole/opconsole/api"
)

// ChatRequest issues chat.request and returns the backend's ChatResult.
func (c *Client) ChatRequest(ctx context.Context, req api.ChatRequest) (*api.ChatResult, error) {
	var out api.ChatResult
	if err := c.callInto(ctx, "chat.request", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatApprove resolves a pending consent with the backend-issued token.
func (c *Client) ChatApprove(ctx context.Context, token string) (*api.ChatResult, error) {
	var out api.ChatResult
	if err := c.callInto(ctx, "chat.approve", api.ConsentTokenParams{ConsentToken: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatDeny rejects a pending consent with the backend-issued token.
func (c *Client) ChatDeny(ctx context.Context, token string) (*api.ChatResult, error) {
	var out api.ChatResult
	if err := c.callInto(ctx, "chat.deny", api.ConsentTokenParams{ConsentToken: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToolsList returns the backend's tool catalog.
func (c *Client) ToolsList(ctx context.Context) ([]api.Tool, error) {
	var out []api.Tool
	if err := c.callInto(ctx, "tools.list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SessionsList returns session summaries.
func (c *Client) SessionsList(ctx context.Context) ([]api.SessionSummary, error) {
	var out []api.SessionSummary
	if err := c.callInto(ctx, "sessions.list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SessionsCreate creates a new session with an optional title.
func (c *Client) SessionsCreate(ctx context.Context, title string) (*api.Session, error) {
	var out api.Session
	if err := c.callInto(ctx, "sessions.create", api.SessionCreateParams{Title: title}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProvidersList returns the configured model providers.
func (c *Client) ProvidersList(ctx context.Context) ([]api.ProviderInfo, error) {
	var out []api.ProviderInfo
	if err := c.callInto(ctx, "providers.list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConsentList returns the backend approvals queue.
func (c *Client) ConsentList(ctx context.Context, params api.ConsentListParams) ([]api.PendingConsentRecord, error) {
	var out []api.PendingConsentRecord
	if err := c.callInto(ctx, "consent.list", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuditList returns backend audit entries.
func (c *Client) AuditList(ctx context.Context, params api.AuditListParams) ([]api.AuditEntry, error) {
	var out []api.AuditEntry
	if err := c.callInto(ctx, "audit.list", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectOpen opens a project directory on the backend.
func (c *Client) ProjectOpen(ctx context.Context, path string) (*api.ProjectOpenResult, error) {
	var out api.ProjectOpenResult
	if err := c.callInto(ctx, "project.open", api.ProjectOpenParams{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProjectStatus reports the state of the active project directory.
func (c *Client) ProjectStatus(ctx context.Context, path string) (*api.ProjectStatusResult, error) {
	var out api.ProjectStatusResult
	if err := c.callInto(ctx, "project.status", api.ProjectStatusParams{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SystemHealth returns the backend self-report.
func (c *Client) SystemHealth(ctx context.Context) (*api.SystemHealth, error) {
	var out api.SystemHealth
	if err := c.callInto(ctx, "system.health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
