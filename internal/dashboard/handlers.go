package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/opconsole/opconsole/api"
	"github.com/opconsole/opconsole/internal/consent"
	"github.com/opconsole/opconsole/internal/console"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var healthErr string
	health, err := s.ctrl.Client().SystemHealth(r.Context())
	if err != nil {
		healthErr = err.Error()
		health = &api.SystemHealth{}
	}

	data := map[string]any{
		"Page":       "overview",
		"Transport":  s.ctrl.TransportKind(),
		"Health":     health,
		"HealthErr":  healthErr,
		"Pending":    s.ctrl.PendingConsent(),
		"HistoryLen": s.ctrl.History().Len(),
	}
	renderPage(w, "overview", data)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.renderChat(w, nil)
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" {
		http.Error(w, "empty prompt", http.StatusBadRequest)
		return
	}

	out, err := s.ctrl.SendChat(r.Context(), r.FormValue("session_id"), prompt)
	if err != nil {
		if errors.Is(err, console.ErrBusy) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.renderChat(w, out)
}

func (s *Server) renderChat(w http.ResponseWriter, out *console.Outcome) {
	data := map[string]any{
		"Page":    "chat",
		"Outcome": out,
		"Pending": s.ctrl.PendingConsent(),
		"Recent":  s.ctrl.History().All(),
	}
	renderPage(w, "chat", data)
}

func (s *Server) handleApprovals(w http.ResponseWriter, r *http.Request) {
	s.renderApprovals(w, r, "")
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	out, err := s.ctrl.Approve(r.Context())
	if err != nil {
		s.resolutionError(w, err)
		return
	}
	s.renderApprovals(w, r, out.Status)
}

func (s *Server) handleDeny(w http.ResponseWriter, r *http.Request) {
	out, err := s.ctrl.Deny(r.Context())
	if err != nil {
		s.resolutionError(w, err)
		return
	}
	s.renderApprovals(w, r, out.Status)
}

func (s *Server) resolutionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, consent.ErrNoPending):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, console.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) renderApprovals(w http.ResponseWriter, r *http.Request, status string) {
	// The backend queue is best-effort decoration; the live slot is local.
	var queue []api.PendingConsentRecord
	var queueErr string
	queue, err := s.ctrl.Client().ConsentList(r.Context(), api.ConsentListParams{Status: "pending"})
	if err != nil {
		queueErr = err.Error()
	}

	pending := s.ctrl.PendingConsent()
	data := map[string]any{
		"Page":     "approvals",
		"Status":   status,
		"Pending":  pending,
		"Armed":    pending != nil && pending.Armed,
		"Queue":    queue,
		"QueueErr": queueErr,
	}
	renderPage(w, "approvals", data)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	data := map[string]any{
		"Page":  "history",
		"Query": query,
		"Items": s.ctrl.History().Filter(query),
	}
	renderPage(w, "history", data)
}

func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.ctrl.Client().SystemHealth(r.Context())
	if err != nil {
		http.Error(w, "health check failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, health)
}

func (s *Server) handleAPIPending(w http.ResponseWriter, r *http.Request) {
	pending := s.ctrl.PendingConsent()
	if pending == nil {
		writeJSON(w, map[string]any{"pending": false})
		return
	}
	writeJSON(w, map[string]any{
		"pending":     true,
		"armed":       pending.Armed,
		"fingerprint": pending.Fingerprint,
		"requests":    pending.Requests,
		"escalated":   consent.RequiresExtraConfirmation(pending.Requests, pending.Meta),
	})
}

func (s *Server) handleAPIHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ctrl.History().Filter(r.URL.Query().Get("q")))
}

func (s *Server) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Prompt    string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "empty prompt", http.StatusBadRequest)
		return
	}

	out, err := s.ctrl.SendChat(r.Context(), req.SessionID, req.Prompt)
	if err != nil {
		if errors.Is(err, console.ErrBusy) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
