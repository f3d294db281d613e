package transport

import (
	"context"
	"fmt"

	"github.com/opconsole/opconsole/api"
)

// Transport delivers one JSON-RPC envelope to the backend and returns the
// response envelope. Implementations perform no retries and no queuing;
// every failure propagates to the caller.
type Transport interface {
	// Call sends the request envelope and blocks until a response arrives.
	Call(ctx context.Context, req *api.JSONRPCMessage) (*api.JSONRPCMessage, error)

	// Kind identifies the bound strategy ("bridge" or "network").
	Kind() string
}

// Error is a transport-level failure: no JSON-RPC response envelope was
// obtained. For the network strategy a non-2xx HTTP status carries the
// status code and response body text.
type Error struct {
	Kind       string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s transport: http %d: %s", e.Kind, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s transport: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
