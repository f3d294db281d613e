// Package consent owns the single pending-authorization slot and drives
// its resolution against the backend.
package consent

import (
	"context"
	"errors"
	"sync"

	"github.com/opconsole/opconsole/api"
	"github.com/opconsole/opconsole/internal/normalize"
)

// ErrNoPending is returned when a resolution is attempted with no live
// pending consent. A consent is resolved exactly once.
var ErrNoPending = errors.New("no pending consent")

// Backend is the resolution surface the coordinator dispatches against.
type Backend interface {
	// Approve resolves a tokened consent via chat.approve.
	Approve(ctx context.Context, token string) (*api.ChatResult, error)

	// Deny resolves a tokened consent via chat.deny.
	Deny(ctx context.Context, token string) (*api.ChatResult, error)

	// Resubmit re-issues the original chat request in best-effort mode.
	// Compatibility path for backends that issued no consent token; it
	// bypasses the backend's consent bookkeeping and is not a safety
	// mechanism.
	Resubmit(ctx context.Context) (*api.ChatResult, error)
}

// Pending is the single outstanding authorization request. At most one
// instance is live at any time.
type Pending struct {
	Requests    []api.ActionEvent
	Fingerprint string
	Token       string
	Meta        *api.ConsentRequestMeta
	Armed       bool
}

// Outcome names how a user action resolved (or advanced) the pending slot.
type Outcome string

const (
	// OutcomeArmed means the first approve click armed the extra
	// confirmation step; no backend call was made.
	OutcomeArmed    Outcome = "armed"
	OutcomeApproved Outcome = "approved"
	OutcomeDenied   Outcome = "denied"
)

// Resolution is the result of an approve or deny action. Result is nil
// when the resolution made no backend call.
type Resolution struct {
	Outcome Outcome
	Result  *api.ChatResult
}

// Coordinator owns the pending-consent slot. Creating a pending consent
// never calls the backend; only resolution does.
type Coordinator struct {
	mu      sync.Mutex
	norm    *normalize.Normalizer
	backend Backend
	pending *Pending
}

// NewCoordinator creates a coordinator resolving against the given backend.
func NewCoordinator(norm *normalize.Normalizer, backend Backend) *Coordinator {
	if norm == nil {
		norm = normalize.New(nil)
	}
	return &Coordinator{norm: norm, backend: backend}
}

// Begin ingests a fresh ChatResult. Any previous pending consent is
// unconditionally discarded, never merged. A new one is created only when
// the result carries consent-required proposals; Begin returns it, or nil.
func (c *Coordinator) Begin(result *api.ChatResult) *Pending {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = nil
	if result == nil {
		return nil
	}

	var requests []api.ActionEvent
	for _, evt := range c.norm.ProposedActions(result) {
		if evt.Status == api.StatusConsentRequired {
			requests = append(requests, evt)
		}
	}
	if len(requests) == 0 {
		return nil
	}

	c.pending = &Pending{
		Requests:    requests,
		Fingerprint: result.RequestFingerprint,
		Token:       result.ConsentToken,
		Meta:        result.ConsentRequest,
	}
	return c.pending
}

// Pending returns a snapshot of the live pending consent, or nil.
func (c *Coordinator) Pending() *Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	snapshot := *c.pending
	return &snapshot
}

// Clear discards the pending consent without resolving it (explicit view
// reset).
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// RequiresExtraConfirmation reports whether approving the request set
// takes a second confirming click. An explicit boolean in the consent
// metadata wins; otherwise escalation holds iff any request is above
// ReadOnly.
func RequiresExtraConfirmation(requests []api.ActionEvent, meta *api.ConsentRequestMeta) bool {
	if meta != nil && meta.RequiresExtraConfirmationClick != nil {
		return *meta.RequiresExtraConfirmationClick
	}
	for _, evt := range requests {
		if evt.CapabilityTier != api.TierReadOnly {
			return true
		}
	}
	return false
}

// Approve advances the pending consent. The first approve while escalation
// holds only arms the confirmation step. Otherwise the slot is cleared
// before dispatch so overlapping interaction cannot reference stale state,
// then chat.approve is issued when a token is present, or the original
// request is re-issued best-effort when it is not.
func (c *Coordinator) Approve(ctx context.Context) (*Resolution, error) {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return nil, ErrNoPending
	}
	if RequiresExtraConfirmation(c.pending.Requests, c.pending.Meta) && !c.pending.Armed {
		c.pending.Armed = true
		c.mu.Unlock()
		return &Resolution{Outcome: OutcomeArmed}, nil
	}
	token := c.pending.Token
	c.pending = nil
	c.mu.Unlock()

	var (
		result *api.ChatResult
		err    error
	)
	if token != "" {
		result, err = c.backend.Approve(ctx, token)
	} else {
		result, err = c.backend.Resubmit(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &Resolution{Outcome: OutcomeApproved, Result: result}, nil
}

// Deny resolves the pending consent negatively. With a token it issues
// chat.deny; without one it resolves purely locally, making no backend
// call.
func (c *Coordinator) Deny(ctx context.Context) (*Resolution, error) {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return nil, ErrNoPending
	}
	token := c.pending.Token
	c.pending = nil
	c.mu.Unlock()

	if token == "" {
		return &Resolution{Outcome: OutcomeDenied}, nil
	}
	result, err := c.backend.Deny(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Resolution{Outcome: OutcomeDenied, Result: result}, nil
}
