package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opconsole/opconsole/api"
)

// Invoker is a native bridge invocation function exposed by an embedding
// host. It receives the serialized JSON-RPC payload and may return either a
// string (raw JSON to be parsed) or an already-structured value.
type Invoker interface {
	Invoke(ctx context.Context, payload []byte) (any, error)
}

// Bridge delivers envelopes through a host-provided invoker instead of the
// network. The invoker is bound once at construction.
type Bridge struct {
	invoker Invoker
}

// NewBridge creates a bridge transport around the given host invoker.
func NewBridge(invoker Invoker) *Bridge {
	return &Bridge{invoker: invoker}
}

// Kind returns "bridge".
func (b *Bridge) Kind() string { return "bridge" }

// Call serializes the envelope, invokes the bridge, and decodes the result.
// String results are parsed as JSON; structured values pass through.
func (b *Bridge) Call(ctx context.Context, req *api.JSONRPCMessage) (*api.JSONRPCMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: "bridge", Err: err}
	}

	out, err := b.invoker.Invoke(ctx, payload)
	if err != nil {
		return nil, &Error{Kind: "bridge", Err: err}
	}

	switch v := out.(type) {
	case *api.JSONRPCMessage:
		return v, nil
	case api.JSONRPCMessage:
		return &v, nil
	case string:
		return parseEnvelope([]byte(v))
	case []byte:
		return parseEnvelope(v)
	case json.RawMessage:
		return parseEnvelope(v)
	case nil:
		return nil, &Error{Kind: "bridge", Err: fmt.Errorf("bridge returned no response")}
	default:
		// Structured value from the host: round-trip through JSON.
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, &Error{Kind: "bridge", Err: err}
		}
		return parseEnvelope(raw)
	}
}

func parseEnvelope(data []byte) (*api.JSONRPCMessage, error) {
	var msg api.JSONRPCMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, &Error{Kind: "bridge", Err: fmt.Errorf("invalid bridge response: %w", err)}
	}
	return &msg, nil
}
