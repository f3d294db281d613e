package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/opconsole/opconsole/internal/console"
)

// Server is the web dashboard HTTP server. Every handler works against the
// same session controller, so the browser sees the same pending consent and
// history as any other surface.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	ctrl   *console.Controller
	addr   string
}

// NewServer creates a new dashboard server.
func NewServer(addr string, ctrl *console.Controller, logger *slog.Logger) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		ctrl:   ctrl,
		addr:   addr,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /", s.handleOverview)
	s.mux.HandleFunc("GET /chat", s.handleChat)
	s.mux.HandleFunc("POST /chat", s.handleChatSend)
	s.mux.HandleFunc("GET /approvals", s.handleApprovals)
	s.mux.HandleFunc("POST /approvals/approve", s.handleApprove)
	s.mux.HandleFunc("POST /approvals/deny", s.handleDeny)
	s.mux.HandleFunc("GET /history", s.handleHistory)
	s.mux.HandleFunc("GET /api/v1/health", s.handleAPIHealth)
	s.mux.HandleFunc("GET /api/v1/pending", s.handleAPIPending)
	s.mux.HandleFunc("GET /api/v1/history", s.handleAPIHistory)
	s.mux.HandleFunc("POST /api/v1/chat", s.handleAPIChat)
}

// ListenAndServe starts the dashboard HTTP server.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.mux,
	}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	s.logger.Info("starting dashboard", "addr", s.addr)
	return srv.ListenAndServe()
}

// Handler returns the HTTP handler for embedding in other servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}
