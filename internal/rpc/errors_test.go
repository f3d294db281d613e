package rpc

import (
	"errors"
	"testing"
)

func TestRPCError_Humanize(t *testing.T) {
	tests := []struct {
		name string
		err  RPCError
		want string
	}{
		{
			"expired pending",
			RPCError{Code: -32001, Message: "consent_not_pending:expired"},
			"This approval request has expired. Refresh the approvals queue and request the action again.",
		},
		{
			"expired",
			RPCError{Code: -32001, Message: "consent_expired"},
			"This approval request has expired. Refresh the approvals queue and request the action again.",
		},
		{
			"already approved",
			RPCError{Code: -32001, Message: "consent_not_pending:approved"},
			"This request has already been approved.",
		},
		{
			"already denied",
			RPCError{Code: -32001, Message: "consent_not_pending:denied"},
			"This request has already been denied.",
		},
		{
			"not found",
			RPCError{Code: -32001, Message: "consent_not_found"},
			"This approval request no longer exists.",
		},
		{
			"unrecognized",
			RPCError{Code: -32600, Message: "invalid request"},
			"-32600: invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Humanize(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShapeError_Unwrap(t *testing.T) {
	inner := errors.New("cannot unmarshal")
	err := &ShapeError{Method: "tools.list", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected ShapeError to unwrap its cause")
	}
	if msg := err.Error(); msg == "" {
		t.Error("empty message")
	}
}
