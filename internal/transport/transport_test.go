package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opconsole/opconsole/api"
)

func request(method string) *api.JSONRPCMessage {
	return &api.JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  method,
		Params:  json.RawMessage(`{}`),
	}
}

func TestNetwork_Call(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var req api.JSONRPCMessage
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Method != "system.health" {
			t.Errorf("request method = %q", req.Method)
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"status":"ok"}}`, req.ID)
	}))
	defer srv.Close()

	n := NewNetwork(srv.URL)
	if n.Kind() != "network" {
		t.Errorf("kind = %q", n.Kind())
	}

	resp, err := n.Call(context.Background(), request("system.health"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", resp.Error)
	}
	if !strings.Contains(string(resp.Result), `"ok"`) {
		t.Errorf("result = %s", resp.Result)
	}
}

func TestNetwork_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewNetwork(srv.URL).Call(context.Background(), request("chat.request"))
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v", err)
	}
	if terr.Kind != "network" || terr.StatusCode != http.StatusBadGateway {
		t.Errorf("transport error = %+v", terr)
	}
	if !strings.Contains(terr.Body, "backend overloaded") {
		t.Errorf("body = %q", terr.Body)
	}
}

func TestNetwork_ConnectionRefused(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewNetwork(url).Call(context.Background(), request("tools.list"))
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v", err)
	}
	if terr.Err == nil {
		t.Error("expected a wrapped dial error")
	}
}

type funcInvoker func(ctx context.Context, payload []byte) (any, error)

func (f funcInvoker) Invoke(ctx context.Context, payload []byte) (any, error) {
	return f(ctx, payload)
}

func TestBridge_Call(t *testing.T) {
	tests := []struct {
		name string
		out  any
	}{
		{"string result", `{"jsonrpc":"2.0","id":1,"result":{"status":"ok"}}`},
		{"byte slice", []byte(`{"jsonrpc":"2.0","id":1,"result":{"status":"ok"}}`)},
		{"raw message", json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":{"status":"ok"}}`)},
		{"envelope pointer", &api.JSONRPCMessage{JSONRPC: "2.0", Result: json.RawMessage(`{"status":"ok"}`)}},
		{"envelope value", api.JSONRPCMessage{JSONRPC: "2.0", Result: json.RawMessage(`{"status":"ok"}`)}},
		{"structured map", map[string]any{"jsonrpc": "2.0", "id": 1, "result": map[string]any{"status": "ok"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge(funcInvoker(func(_ context.Context, payload []byte) (any, error) {
				var req api.JSONRPCMessage
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Errorf("payload not an envelope: %v", err)
				}
				return tt.out, nil
			}))
			resp, err := b.Call(context.Background(), request("system.health"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(resp.Result), `"ok"`) {
				t.Errorf("result = %s", resp.Result)
			}
		})
	}
}

func TestBridge_Errors(t *testing.T) {
	tests := []struct {
		name string
		out  any
		err  error
	}{
		{"invoker failure", nil, errors.New("host gone")},
		{"nil result", nil, nil},
		{"garbage string", "not json", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge(funcInvoker(func(context.Context, []byte) (any, error) {
				return tt.out, tt.err
			}))
			_, err := b.Call(context.Background(), request("tools.list"))
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("err = %v", err)
			}
			if terr.Kind != "bridge" {
				t.Errorf("kind = %q", terr.Kind)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tr, closer, err := Select(Options{Endpoint: "http://127.0.0.1:7777/jsonrpc"})
	if err != nil {
		t.Fatal(err)
	}
	defer closer()
	if tr.Kind() != "network" {
		t.Errorf("kind = %q", tr.Kind())
	}
}

func TestSelect_BridgeCommand(t *testing.T) {
	tr, closer, err := Select(Options{BridgeCommand: []string{"cat"}})
	if err != nil {
		t.Skipf("starting bridge subprocess: %v", err)
	}
	defer closer()
	if tr.Kind() != "bridge" {
		t.Errorf("kind = %q", tr.Kind())
	}
}
