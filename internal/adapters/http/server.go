// Package http exposes machines and sessions over a JSON API, plus a
// small embedded web UI that renders the machine graph with Mermaid.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/vendsim"
	"github.com/aretw0/vendsim/internal/logging"
	"github.com/aretw0/vendsim/internal/machine"
	"github.com/aretw0/vendsim/internal/presentation/graph"
	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/session"
)

// Server routes session and machine requests to the engine.
type Server struct {
	sessions *session.Manager
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLifecycleHooks attaches hooks (metrics) to every machine the
// server reconstructs.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// NewHandler creates the HTTP handler over a session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/", server.Index)
	r.Get("/healthz", server.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/machines", func(r chi.Router) {
		r.Get("/", server.ListMachines)
		r.Get("/{kind}", server.GetMachine)
		r.Get("/{kind}/graph", server.GetMachineGraph)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", server.CreateSession)
		r.Get("/", server.ListSessions)
		r.Get("/{id}", server.GetSession)
		r.Delete("/{id}", server.DeleteSession)
		r.Get("/{id}/graph", server.GetSessionGraph)
		r.Post("/{id}/symbols", server.InsertSymbol)
		r.Post("/{id}/reset", server.ResetSession)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionState is the JSON projection of one session's machine.
type SessionState struct {
	ID            string          `json:"id"`
	Kind          domain.Kind     `json:"kind"`
	Current       []domain.State  `json:"current"`
	Balance       int             `json:"balance"`
	Accepting     bool            `json:"accepting"`
	CanBuyEyeDrop bool            `json:"can_buy_eye_drop"`
	CanBuyVitamin bool            `json:"can_buy_vitamin"`
	History       []domain.Record `json:"history"`
}

// MachineSummary is the list entry for GET /machines.
type MachineSummary struct {
	Kind        domain.Kind `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	States      int         `json:"states"`
}

type createSessionRequest struct {
	Kind string `json:"kind"`
}

type symbolRequest struct {
	Symbol string `json:"symbol"`
}

type transitionResponse struct {
	Record domain.Record `json:"record"`
	State  SessionState  `json:"state"`
}

// reconstruct rebuilds a live machine from a stored snapshot. Must be
// called under the session lock; the instance is request-local.
func (s *Server) reconstruct(snap domain.Snapshot) (*vendsim.Machine, error) {
	m, err := vendsim.New(snap.Kind,
		vendsim.WithLifecycleHooks(s.hooks),
		vendsim.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	if err := m.Restore(snap); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Server) stateOf(id string, m *vendsim.Machine) SessionState {
	return SessionState{
		ID:            id,
		Kind:          m.Kind(),
		Current:       m.Current(),
		Balance:       m.Balance(),
		Accepting:     m.IsAccepting(),
		CanBuyEyeDrop: m.CanBuyEyeDrop(),
		CanBuyVitamin: m.CanBuyVitamin(),
		History:       m.History(),
	}
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": vendsim.Version,
	})
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	defs := machine.Definitions()
	out := make([]MachineSummary, len(defs))
	for i, def := range defs {
		out[i] = MachineSummary{
			Kind:        def.Kind,
			Name:        def.Name,
			Description: def.Description,
			States:      len(def.States),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetMachine handles GET /machines/{kind}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	def, err := machine.DefinitionFor(kind)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// GetMachineGraph handles GET /machines/{kind}/graph. It returns the
// Mermaid source as text; the UI feeds it straight to mermaid.js.
func (s *Server) GetMachineGraph(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	def, err := machine.DefinitionFor(kind)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(def, nil)))
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	kind, err := domain.ParseKind(body.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	snap, err := s.sessions.LoadOrStart(r.Context(), id, kind)
	if err != nil {
		s.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	m, err := s.reconstruct(snap)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("session created", "session_id", id, "kind", string(kind))
	writeJSON(w, http.StatusCreated, s.stateOf(id, m))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	m, err := s.reconstruct(snap)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateOf(id, m))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSessionGraph handles GET /sessions/{id}/graph: the machine graph
// with the session's visited and current states highlighted.
func (s *Server) GetSessionGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	def, err := machine.DefinitionFor(snap.Kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(def, graph.OverlayFromSnapshot(snap))))
}

// InsertSymbol handles POST /sessions/{id}/symbols. The whole
// read-transition-write cycle runs under the session lock.
func (s *Server) InsertSymbol(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body symbolRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if body.Symbol == "" {
		writeError(w, http.StatusBadRequest, errors.New("symbol is required"))
		return
	}

	var resp transitionResponse
	err := s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		snap, err := s.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		m, err := s.reconstruct(snap)
		if err != nil {
			return err
		}
		resp.Record = m.Transition(domain.Symbol(body.Symbol))
		resp.State = s.stateOf(id, m)
		return s.sessions.Store().Save(ctx, id, m.Snapshot())
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var state SessionState
	err := s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		snap, err := s.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		m, err := s.reconstruct(snap)
		if err != nil {
			return err
		}
		m.Reset()
		state = s.stateOf(id, m)
		return s.sessions.Store().Save(ctx, id, m.Snapshot())
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
