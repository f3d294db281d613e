package rpc

import (
	"fmt"
	"strings"
)

// RPCError is a well-formed JSON-RPC envelope carrying an error object.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Humanize renders the error for the operator. Known consent-lifecycle
// conflicts are recognized by message substring; everything else renders
// as "<code>: <message>" verbatim.
func (e *RPCError) Humanize() string {
	switch {
	case strings.Contains(e.Message, "consent_not_pending:expired"),
		strings.Contains(e.Message, "consent_expired"):
		return "This approval request has expired. Refresh the approvals queue and request the action again."
	case strings.Contains(e.Message, "consent_not_pending:approved"):
		return "This request has already been approved."
	case strings.Contains(e.Message, "consent_not_pending:denied"):
		return "This request has already been denied."
	case strings.Contains(e.Message, "consent_not_found"):
		return "This approval request no longer exists."
	default:
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	}
}

// ShapeError is a successful envelope whose result does not match the
// expected shape for the issued method. It is reported as a warning;
// processing continues and no state is corrupted.
type ShapeError struct {
	Method string
	Err    error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected result shape for %s: %v", e.Method, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
