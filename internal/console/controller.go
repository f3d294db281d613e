// Package console holds the session controller: one explicit value owning
// the state the operator surface works against. The pending consent, the
// last chat context, and the transport-bound client are fields here, not
// globals, so every handler receives the same controller and tests inject
// a fresh one.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/opconsole/opconsole/api"
	"github.com/opconsole/opconsole/internal/config"
	"github.com/opconsole/opconsole/internal/consent"
	"github.com/opconsole/opconsole/internal/history"
	"github.com/opconsole/opconsole/internal/normalize"
	"github.com/opconsole/opconsole/internal/risk"
	"github.com/opconsole/opconsole/internal/rpc"
)

// ErrBusy means another user-initiated call is in flight. The caller
// disables its affordances rather than queuing; at most one request is in
// flight at a time.
var ErrBusy = errors.New("another request is in flight")

// Outcome is what a user-triggered operation produced: a status line plus
// the data the panels refresh from. A failed call still yields an Outcome
// with an Err status; nothing fails silently.
type Outcome struct {
	Status   string
	Warning  string
	Err      bool
	Result   *api.ChatResult
	Pending  *consent.Pending
	Proposed []api.ActionEvent
	Executed []api.ActionEvent
}

// Controller drives the consent workflow and history record against one
// backend client.
type Controller struct {
	client   *rpc.Client
	norm     *normalize.Normalizer
	consents *consent.Coordinator
	history  *history.Store
	logger   *slog.Logger
	provider api.ProviderConfig
	mode     api.Mode

	busy atomic.Bool

	mu          sync.Mutex
	lastRequest *api.ChatRequest
}

// Options configures a controller.
type Options struct {
	Client     *rpc.Client
	Config     *config.Config
	History    *history.Store
	Classifier risk.Classifier
	Logger     *slog.Logger
}

// New constructs a controller. History and Classifier may be nil.
func New(opts Options) *Controller {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.History == nil {
		opts.History = history.NewStore(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	norm := normalize.New(opts.Classifier)
	c := &Controller{
		client:   opts.Client,
		norm:     norm,
		history:  opts.History,
		logger:   opts.Logger,
		provider: opts.Config.Provider,
		mode:     opts.Config.Mode,
	}
	c.consents = consent.NewCoordinator(norm, &resolutionBackend{c: c})
	return c
}

// History exposes the execution history store.
func (c *Controller) History() *history.Store { return c.history }

// Client exposes the RPC client for read-only listings (tools, sessions,
// providers, consent queue, audit log, project, health). Listings do not
// trigger actions and are not gated by the single-flight guard.
func (c *Controller) Client() *rpc.Client { return c.client }

// PendingConsent returns a snapshot of the live pending consent, or nil.
func (c *Controller) PendingConsent() *consent.Pending { return c.consents.Pending() }

// TransportKind reports the strategy the client is bound to.
func (c *Controller) TransportKind() string { return c.client.TransportKind() }

// SendChat issues a chat.request for the prompt and ingests the result:
// consent-required proposals replace any pending consent, executed events
// and a history record are produced. Transport and RPC failures are
// recovered into the outcome status.
func (c *Controller) SendChat(ctx context.Context, sessionID, prompt string) (*Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	req := api.ChatRequest{
		SessionID: sessionID,
		Messages:  []api.ChatMessage{{Role: "user", Content: prompt}},
		ProviderConfig: c.provider,
		Mode:           c.mode,
	}

	c.mu.Lock()
	c.lastRequest = &req
	c.mu.Unlock()

	result, err := c.client.ChatRequest(ctx, req)
	if err != nil {
		return c.failure("chat", prompt, err), nil
	}
	return c.ingest("chat", prompt, result), nil
}

// Approve advances the pending consent. The first approve of an escalated
// request only arms the confirmation step; the next one resolves against
// the backend.
func (c *Controller) Approve(ctx context.Context) (*Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	res, err := c.consents.Approve(ctx)
	if err != nil {
		if errors.Is(err, consent.ErrNoPending) {
			return nil, err
		}
		return c.failure("approval", "", err), nil
	}

	if res.Outcome == consent.OutcomeArmed {
		return &Outcome{
			Status:  "High-risk action: confirm again to approve.",
			Pending: c.consents.Pending(),
		}, nil
	}

	out := c.ingest("approval", "", res.Result)
	if out.Status == "" {
		out.Status = "Request approved."
	}
	return out, nil
}

// Deny resolves the pending consent negatively. Without a consent token
// the denial is purely local and the backend is not notified.
func (c *Controller) Deny(ctx context.Context) (*Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	res, err := c.consents.Deny(ctx)
	if err != nil {
		if errors.Is(err, consent.ErrNoPending) {
			return nil, err
		}
		return c.failure("denial", "", err), nil
	}

	if res.Result == nil {
		c.record("denial", "Denied locally", "No consent token was issued; the backend was not notified.", nil)
		return &Outcome{Status: "Request denied locally."}, nil
	}
	out := c.ingest("denial", "", res.Result)
	if out.Status == "" {
		out.Status = "Request denied."
	}
	return out, nil
}

// ResetView discards the pending consent and last chat context without
// resolving anything.
func (c *Controller) ResetView() {
	c.consents.Clear()
	c.mu.Lock()
	c.lastRequest = nil
	c.mu.Unlock()
}

// ingest turns a ChatResult into the canonical outcome: normalized action
// sets, a replaced (or cleared) pending consent, and a history record.
func (c *Controller) ingest(kind, prompt string, result *api.ChatResult) *Outcome {
	pending := c.consents.Begin(result)
	proposed := c.norm.ProposedActions(result)
	executed := c.norm.ExecutedActionEvents(result)

	status := strings.TrimSpace(result.FinalText)
	if status == "" {
		status = "Request completed."
	}
	if pending != nil {
		status = consentStatus(pending)
	}

	details := map[string]string{}
	if prompt != "" {
		details["prompt"] = prompt
	}
	if result.AuditID != "" {
		details["execution_id"] = result.AuditID
	}
	if result.SessionID != "" {
		details["session_id"] = result.SessionID
	}
	if len(proposed) > 0 {
		details["proposed_tools"] = joinTools(proposed)
	}
	if len(executed) > 0 {
		details["executed_tools"] = joinTools(executed)
	}
	c.record(kind, summaryLabel(kind, result), result.FinalText, details)

	return &Outcome{
		Status:   status,
		Result:   result,
		Pending:  pending,
		Proposed: proposed,
		Executed: executed,
	}
}

// failure maps an error to a recovered outcome per the error taxonomy:
// transport failures show a connection status, RPC errors are humanized,
// shape errors downgrade to a warning.
func (c *Controller) failure(kind, prompt string, err error) *Outcome {
	var (
		rpcErr   *rpc.RPCError
		shapeErr *rpc.ShapeError
	)

	out := &Outcome{Err: true}
	switch {
	case errors.As(err, &rpcErr):
		out.Status = rpcErr.Humanize()
	case errors.As(err, &shapeErr):
		out.Err = false
		out.Status = "Request completed."
		out.Warning = shapeErr.Error()
		c.logger.Warn("unexpected result shape", "method", shapeErr.Method, "error", shapeErr.Err)
	default:
		out.Status = "Backend connection failed: " + err.Error()
	}

	details := map[string]string{}
	if prompt != "" {
		details["prompt"] = prompt
	}
	c.record("error", fmt.Sprintf("%s failed", kind), out.Status, details)
	return out
}

func (c *Controller) record(kind, label, body string, details map[string]string) {
	if _, err := c.history.Record(kind, label, body, details); err != nil {
		c.logger.Warn("history sink write failed", "error", err)
	}
}

// resolutionBackend adapts the controller's client and last-request slot
// to the coordinator's resolution surface.
type resolutionBackend struct {
	c *Controller
}

func (b *resolutionBackend) Approve(ctx context.Context, token string) (*api.ChatResult, error) {
	return b.c.client.ChatApprove(ctx, token)
}

func (b *resolutionBackend) Deny(ctx context.Context, token string) (*api.ChatResult, error) {
	return b.c.client.ChatDeny(ctx, token)
}

// Resubmit re-issues the original request in best-effort mode, skipping a
// second confirmation loop. Used only when the backend issued no token.
func (b *resolutionBackend) Resubmit(ctx context.Context) (*api.ChatResult, error) {
	b.c.mu.Lock()
	last := b.c.lastRequest
	b.c.mu.Unlock()

	if last == nil {
		return nil, fmt.Errorf("no prior request to re-issue")
	}
	req := *last
	req.Mode = api.ModeBestEffort
	return b.c.client.ChatRequest(ctx, req)
}

func consentStatus(p *consent.Pending) string {
	if p.Meta != nil && p.Meta.HumanSummary != "" {
		return p.Meta.HumanSummary
	}
	if len(p.Requests) == 1 {
		return fmt.Sprintf("Approval required for '%s'.", p.Requests[0].ToolName)
	}
	return fmt.Sprintf("Approval required for %d actions.", len(p.Requests))
}

func summaryLabel(kind string, result *api.ChatResult) string {
	state := result.ExecutionState
	if state == "" {
		state = "completed"
	}
	return fmt.Sprintf("%s %s", kind, state)
}

func joinTools(events []api.ActionEvent) string {
	names := make([]string, 0, len(events))
	for _, evt := range events {
		names = append(names, fmt.Sprintf("%s(%s)", evt.ToolName, evt.CapabilityTier))
	}
	return strings.Join(names, ", ")
}
