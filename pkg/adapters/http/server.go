package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/phonebook/internal/presentation/graph"
	"github.com/aretw0/phonebook/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Controller defines the interface for the phone book state machine.
type Controller interface {
	DispatchSnapshots(ctx context.Context, ev domain.Event) (accepted bool, before, after domain.Snapshot)
	Snapshot() domain.Snapshot
	Transitions() []domain.Transition
}

// Server exposes a Controller over JSON.
type Server struct {
	Controller Controller
	Logger     *slog.Logger
}

// EventRequest is the body of POST /events.
type EventRequest struct {
	Type  domain.EventType `json:"type"`
	Entry *domain.Entry    `json:"entry,omitempty"`
}

// EventResponse reports the outcome of a dispatched event.
type EventResponse struct {
	Accepted bool                 `json:"accepted"`
	State    domain.State         `json:"state"`
	Entries  []domain.Entry       `json:"entries"`
	Changes  *domain.SnapshotDiff `json:"changes,omitempty"`
}

// HandlerOption configures the handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	metrics http.Handler
	logger  *slog.Logger
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) HandlerOption {
	return func(c *handlerConfig) {
		c.metrics = h
	}
}

// WithLogger sets the logger used for request errors.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the controller.
func NewHandler(controller Controller, opts ...HandlerOption) http.Handler {
	cfg := &handlerConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	server := &Server{
		Controller: controller,
		Logger:     cfg.logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/state", server.GetState)
	r.Get("/entries", server.GetEntries)
	r.Post("/events", server.PostEvent)
	r.Get("/graph", server.GetGraph)
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Controller.Snapshot())
}

// GetEntries handles GET /entries.
func (s *Server) GetEntries(w http.ResponseWriter, r *http.Request) {
	entries := s.Controller.Snapshot().Entries
	if entries == nil {
		entries = []domain.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// PostEvent handles POST /events. Illegal events are not an HTTP error:
// the response carries accepted=false and the unchanged snapshot.
func (s *Server) PostEvent(w http.ResponseWriter, r *http.Request) {
	var body EventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PostEvent: invalid request body", "error", err)
		return
	}

	if !body.Type.Valid() {
		http.Error(w, "Unknown event type", http.StatusBadRequest)
		return
	}
	if body.Type.RequiresEntry() && body.Entry == nil {
		http.Error(w, "Event requires an entry", http.StatusBadRequest)
		return
	}

	accepted, before, after := s.Controller.DispatchSnapshots(r.Context(), domain.Event{Type: body.Type, Entry: body.Entry})

	entries := after.Entries
	if entries == nil {
		entries = []domain.Entry{}
	}

	s.writeJSON(w, http.StatusOK, EventResponse{
		Accepted: accepted,
		State:    after.State,
		Entries:  entries,
		Changes:  domain.Diff(&before, &after),
	})
}

// GetGraph handles GET /graph, returning a Mermaid diagram of the machine.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	overlay := &graph.GraphOverlay{CurrentState: s.Controller.Snapshot().State}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(s.Controller.Transitions(), overlay)))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
