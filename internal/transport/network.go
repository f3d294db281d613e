package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/opconsole/opconsole/api"
)

// Network posts JSON-RPC envelopes to a local HTTP endpoint. It is the
// fallback strategy when no embedding host bridge is available.
type Network struct {
	endpoint string
	client   *http.Client
}

// NewNetwork creates a network transport targeting the given endpoint URL.
func NewNetwork(endpoint string) *Network {
	return &Network{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

// Kind returns "network".
func (n *Network) Kind() string { return "network" }

// Call posts the envelope with content-type application/json. A non-2xx
// status raises a transport error carrying the status code and body text.
func (n *Network) Call(ctx context.Context, req *api.JSONRPCMessage) (*api.JSONRPCMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: "network", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: "network", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: "network", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: "network", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: "network", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var msg api.JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, &Error{Kind: "network", Err: err}
	}
	return &msg, nil
}
