package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/opconsole/opconsole/api"
	"github.com/opconsole/opconsole/internal/transport"
)

// Client issues JSON-RPC calls over a transport bound once at startup.
// Envelope ids increase monotonically per client.
type Client struct {
	transport transport.Transport
	logger    *slog.Logger
	nextID    atomic.Int64
}

// NewClient creates a client over the given transport.
func NewClient(t transport.Transport, logger *slog.Logger) *Client {
	return &Client{transport: t, logger: logger}
}

// TransportKind reports which strategy the client is bound to.
func (c *Client) TransportKind() string { return c.transport.Kind() }

// Call sends one request envelope and returns the raw result. Transport
// failures propagate unchanged; an error envelope becomes an *RPCError.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	rawParams := json.RawMessage(`{}`)
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s params: %w", method, err)
		}
		rawParams = data
	}

	id, err := json.Marshal(c.nextID.Add(1))
	if err != nil {
		return nil, fmt.Errorf("marshaling request id: %w", err)
	}

	req := &api.JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  rawParams,
	}

	c.logger.Debug("rpc call", "method", method)
	resp, err := c.transport.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &RPCError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	return resp.Result, nil
}

// callInto issues a call and decodes the result into out. A result that
// does not decode into the expected shape yields a *ShapeError.
func (c *Client) callInto(ctx context.Context, method string, params, out any) error {
	raw, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(raw) == 0 {
		return &ShapeError{Method: method, Err: fmt.Errorf("empty result")}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ShapeError{Method: method, Err: err}
	}
	return nil
}
