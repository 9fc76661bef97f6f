// Package adminapi exposes a read-only HTTP surface over a pfcpctx.Context:
// health, active sessions and their PDRs, UE IP pool usage, and registered
// peers. It never mutates core state.
package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/your-org/pfcp-core/internal/pfcpctx"
)

// Server is the admin/monitoring HTTP server.
type Server struct {
	ctx        *pfcpctx.Context
	router     *chi.Mux
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds a Server reading from ctx. addr is the listen address,
// e.g. ":9097".
func NewServer(ctx *pfcpctx.Context, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{ctx: ctx, router: chi.NewRouter(), logger: logger}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/sessions", s.handleSessions)
	s.router.Get("/sessions/{seid}/pdrs", s.handleSessionPDRs)
	s.router.Get("/pools", s.handlePools)
	s.router.Get("/peers", s.handlePeers)
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting admin server", zap.String("address", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.ctx.Sessions()
	out := make([]map[string]any, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, map[string]any{
			"seid":     sess.SEID,
			"trace_id": sess.TraceID.String(),
			"pdrs":     len(sess.PDRList()),
			"has_bar":  sess.BAR() != nil,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"sessions": out, "count": len(out)})
}

func (s *Server) handleSessionPDRs(w http.ResponseWriter, r *http.Request) {
	seid, err := strconv.ParseUint(chi.URLParam(r, "seid"), 10, 64)
	if err != nil {
		http.Error(w, "invalid seid", http.StatusBadRequest)
		return
	}
	sess, ok := s.ctx.GetSession(seid)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	pdrs := sess.PDRList()
	out := make([]map[string]any, 0, len(pdrs))
	for _, p := range pdrs {
		out = append(out, map[string]any{
			"id":         p.ID,
			"precedence": p.Precedence,
			"far_id":     p.FARID,
			"urr_id":     p.URRID,
			"qer_id":     p.QERID,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"seid": seid, "pdrs": out})
}

func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	subnets := s.ctx.Subnets()
	out := make([]map[string]any, 0, len(subnets))
	for _, sub := range subnets {
		out = append(out, map[string]any{
			"apn":       sub.APN,
			"network":   sub.Network.String(),
			"capacity":  sub.Capacity,
			"allocated": sub.Allocated(),
			"available": sub.Available(),
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"pools": out})
}

func (s *Server) handlePeers(w http.ResponseWriter, r *http.Request) {
	nodes := s.ctx.Nodes()
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		resources := make([]map[string]any, 0, len(n.GtpuResources()))
		for _, res := range n.GtpuResources() {
			resources = append(resources, map[string]any{
				"addr":             res.Addr.String(),
				"network_instance": res.NetworkInstance,
			})
		}
		out = append(out, map[string]any{
			"addr":          n.Addr.String(),
			"rr":            n.RR,
			"tac":           n.TAC,
			"gtpu_resources": resources,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"peers": out})
}
