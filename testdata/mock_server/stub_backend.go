// stub_backend.go is a minimal action-execution backend for exercising the
// bridge transport end to end. It reads line-delimited JSON-RPC requests on
// stdin and writes responses on stdout.
//
// Usage: opconsole -c config.yaml with
//
//	backend:
//	  bridge_command: ["go", "run", "testdata/mock_server/stub_backend.go"]
//
// Prompts containing "risky" produce a consent request; everything else
// executes immediately.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type jsonrpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var pendingToken string

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	out := bufio.NewWriter(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			fmt.Fprintf(os.Stderr, "stub_backend: invalid JSON: %v\n", err)
			continue
		}

		resp := handle(&msg)
		data, err := json.Marshal(resp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stub_backend: marshal: %v\n", err)
			continue
		}
		out.Write(data)
		out.WriteByte('\n')
		out.Flush()
	}
}

func handle(msg *jsonrpcMessage) *jsonrpcMessage {
	resp := &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID}

	switch msg.Method {
	case "chat.request":
		var params struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.Unmarshal(msg.Params, &params)
		prompt := ""
		if len(params.Messages) > 0 {
			prompt = params.Messages[len(params.Messages)-1].Content
		}

		if strings.Contains(strings.ToLower(prompt), "risky") {
			pendingToken = "stub-token-1"
			resp.Result = json.RawMessage(`{
				"consent_token": "stub-token-1",
				"request_fingerprint": "stub-fp-1",
				"action_events": [
					{"tool_name": "shell.exec", "capability_tier": "SystemActions", "status": "consent_required", "reason": "requires approval"}
				]
			}`)
		} else {
			resp.Result = json.RawMessage(`{
				"final_text": "Done.",
				"audit_id": "stub-audit-1",
				"actions_executed": ["echo"]
			}`)
		}

	case "chat.approve":
		resp.Result, resp.Error = resolveConsent(msg.Params, `{"final_text":"Approved and executed.","action_events":[{"tool_name":"shell.exec","capability_tier":"SystemActions","status":"executed"}]}`)

	case "chat.deny":
		resp.Result, resp.Error = resolveConsent(msg.Params, `{"final_text":"Action was not executed."}`)

	case "tools.list":
		resp.Result = json.RawMessage(`[
			{"name": "echo", "description": "Echo text back"},
			{"name": "time.now", "description": "Report the current time"},
			{"name": "shell.exec", "description": "Run a shell command"}
		]`)

	case "sessions.list":
		resp.Result = json.RawMessage(`[]`)

	case "sessions.create":
		resp.Result = json.RawMessage(`{"id": "stub-session-1", "title": "stub"}`)

	case "providers.list":
		resp.Result = json.RawMessage(`[{"name": "openai-stub", "enabled": true, "is_active": true, "has_auth": false}]`)

	case "consent.list":
		if pendingToken != "" {
			resp.Result = json.RawMessage(`[{"consent_id":"stub-token-1","tool_name":"shell.exec","capability_tier":"SystemActions","status":"pending","request_fingerprint":"stub-fp-1"}]`)
		} else {
			resp.Result = json.RawMessage(`[]`)
		}

	case "audit.list":
		resp.Result = json.RawMessage(`[]`)

	case "project.open", "project.status":
		resp.Result = json.RawMessage(`{"path": "/tmp", "exists": true, "is_dir": true, "entry_count": 0}`)

	case "system.health":
		resp.Result = json.RawMessage(`{"ok": true, "active_provider": "openai-stub", "provider_count": 1, "pending_consents": 0}`)

	default:
		resp.Error = &jsonrpcError{Code: -32601, Message: "method not found: " + msg.Method}
	}
	return resp
}

func resolveConsent(params json.RawMessage, result string) (json.RawMessage, *jsonrpcError) {
	var p struct {
		ConsentToken string `json:"consent_token"`
	}
	json.Unmarshal(params, &p)

	if pendingToken == "" || p.ConsentToken != pendingToken {
		return nil, &jsonrpcError{Code: -32001, Message: "consent_not_found"}
	}
	pendingToken = ""
	return json.RawMessage(result), nil
}
