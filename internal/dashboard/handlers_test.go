package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/opconsole/opconsole/api"
	"github.com/opconsole/opconsole/internal/console"
	"github.com/opconsole/opconsole/internal/rpc"
)

// stubTransport answers every method from a fixed result table.
type stubTransport struct {
	results map[string]string
}

func (s *stubTransport) Kind() string { return "stub" }

func (s *stubTransport) Call(_ context.Context, req *api.JSONRPCMessage) (*api.JSONRPCMessage, error) {
	result, ok := s.results[req.Method]
	if !ok {
		result = `{}`
	}
	return &api.JSONRPCMessage{JSONRPC: "2.0", ID: req.ID, Result: json.RawMessage(result)}, nil
}

func testServer(t *testing.T, results map[string]string) *Server {
	t.Helper()
	if results == nil {
		results = map[string]string{}
	}
	if _, ok := results["system.health"]; !ok {
		results["system.health"] = `{"ok":true}`
	}
	if _, ok := results["consent.list"]; !ok {
		results["consent.list"] = `[]`
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := console.New(console.Options{
		Client: rpc.NewClient(&stubTransport{results: results}, logger),
		Logger: logger,
	})
	return NewServer(":0", ctrl, logger)
}

func TestOverviewPage(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "OpConsole") {
		t.Error("expected page to contain 'OpConsole'")
	}
}

func TestChatPage(t *testing.T) {
	s := testServer(t, nil)
	req := httptest.NewRequest("GET", "/chat", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestChatSend(t *testing.T) {
	s := testServer(t, map[string]string{
		"chat.request": `{"final_text":"The time is noon."}`,
	})

	form := url.Values{"prompt": {"what time is it"}}
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "The time is noon.") {
		t.Error("expected outcome status on the page")
	}
}

func TestChatSend_EmptyPrompt(t *testing.T) {
	s := testServer(t, nil)
	form := url.Values{"prompt": {"   "}}
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestApprovalsFlow(t *testing.T) {
	s := testServer(t, map[string]string{
		"chat.request": `{"consent_token":"tok1","action_events":[{"tool_name":"shell.exec","status":"consent_required","capability_tier":"SystemActions"}]}`,
		"chat.approve": `{"final_text":"Command executed."}`,
	})

	form := url.Values{"prompt": {"run the script"}}
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.mux.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("GET", "/approvals", nil))
	if !strings.Contains(w.Body.String(), "shell.exec") {
		t.Error("expected pending request on the approvals page")
	}

	// High-risk tier: first approve arms, second resolves.
	w = httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("POST", "/approvals/approve", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("arming approve got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Confirm") {
		t.Error("expected armed state to ask for confirmation")
	}

	w = httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("POST", "/approvals/approve", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("resolving approve got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Command executed.") {
		t.Error("expected resolution status on the page")
	}
}

func TestApprove_NoPending(t *testing.T) {
	s := testServer(t, nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("POST", "/approvals/approve", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHistoryPage_Filter(t *testing.T) {
	s := testServer(t, map[string]string{
		"chat.request": `{"final_text":"done"}`,
	})

	form := url.Values{"prompt": {"open firefox"}}
	req := httptest.NewRequest("POST", "/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.mux.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("GET", "/history?q=firefox", nil))
	if !strings.Contains(w.Body.String(), "firefox") {
		t.Error("expected matching entry")
	}

	w = httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("GET", "/history?q=zebra", nil))
	if !strings.Contains(w.Body.String(), "No entries match") {
		t.Error("expected empty filter result")
	}
}

func TestAPIHealth(t *testing.T) {
	s := testServer(t, map[string]string{
		"system.health": `{"ok":true,"provider_count":3}`,
	})
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var health api.SystemHealth
	if err := json.NewDecoder(w.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if !health.OK || health.ProviderCount != 3 {
		t.Errorf("health = %+v", health)
	}
}

func TestAPIPending(t *testing.T) {
	s := testServer(t, nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/pending", nil))

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["pending"] != false {
		t.Errorf("resp = %v", resp)
	}
}

func TestAPIChat(t *testing.T) {
	s := testServer(t, map[string]string{
		"chat.request": `{"final_text":"hello there"}`,
	})

	body := `{"prompt":"say hello"}`
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out console.Outcome
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "hello there" {
		t.Errorf("status = %q", out.Status)
	}
}

func TestAPIChat_BadBody(t *testing.T) {
	s := testServer(t, nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader("{")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
