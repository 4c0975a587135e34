// Package server exposes the tactics service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/ehudso7/StatTact/internal/football"
	"github.com/ehudso7/StatTact/internal/logger"
	"github.com/ehudso7/StatTact/internal/tactics"

	"github.com/google/uuid"
	"github.com/rs/cors"
)

// Generator produces the tactical write-up for a request.
type Generator interface {
	Generate(ctx context.Context, req tactics.Request) (string, error)
}

// TeamLookup is the auxiliary sports-data source consulted by the formation route.
type TeamLookup interface {
	Enabled() bool
	TeamData(ctx context.Context, teamName string) (*football.TeamsResponse, error)
}

// StatusResponse is returned by the root route.
type StatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

var rootStatus = StatusResponse{
	Message: "Welcome to the StatTact AI Backend!",
	Status:  "operational",
}

// Server wires the HTTP routes to the tactics generator.
type Server struct {
	generator Generator
	teams     TeamLookup
	cfg       config.ServerConfig
}

// New creates a new Server.
func New(generator Generator, teams TeamLookup, cfg config.ServerConfig) *Server {
	return &Server{generator: generator, teams: teams, cfg: cfg}
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /generate-tactics/{$}", s.handleGenerateTactics)
	mux.HandleFunc("GET /generate-formation", s.handleGenerateFormation)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(withRequestLog(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Address(),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("starting server", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.L.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootStatus)
}

// tacticsBody tells a missing or null team apart from an empty one. Only the
// former is rejected.
type tacticsBody struct {
	Team     *string `json:"team"`
	Opponent *string `json:"opponent"`
}

func decodeTacticsBody(body io.Reader) (tactics.Request, error) {
	var b tacticsBody
	if err := json.NewDecoder(body).Decode(&b); err != nil {
		return tactics.Request{}, fmt.Errorf("%w: invalid request body: %v", tactics.ErrInvalidRequest, err)
	}
	if b.Team == nil {
		return tactics.Request{}, fmt.Errorf("%w: team is required", tactics.ErrInvalidRequest)
	}
	req := tactics.Request{Team: *b.Team}
	if b.Opponent != nil {
		req.Opponent = *b.Opponent
	}
	return req, nil
}

func queryRequest(q url.Values) (tactics.Request, error) {
	if !q.Has("team") {
		return tactics.Request{}, fmt.Errorf("%w: team is required", tactics.ErrInvalidRequest)
	}
	return tactics.Request{Team: q.Get("team"), Opponent: q.Get("opponent")}, nil
}

func (s *Server) handleGenerateTactics(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTacticsBody(r.Body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.generate(w, r, req)
}

func (s *Server) handleGenerateFormation(w http.ResponseWriter, r *http.Request) {
	req, err := queryRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if s.teams != nil && s.teams.Enabled() {
		// Fetched for future prompt enrichment; the prompt does not use it yet.
		if strings.TrimSpace(req.Team) != "" {
			s.lookupTeam(r.Context(), req.Team)
		}
		if strings.TrimSpace(req.Opponent) != "" {
			s.lookupTeam(r.Context(), req.Opponent)
		}
	}

	s.generate(w, r, req)
}

func (s *Server) lookupTeam(ctx context.Context, name string) {
	data, err := s.teams.TeamData(ctx, name)
	if err != nil {
		logger.L.Warn("football data lookup failed", "team", name, "error", err)
		return
	}
	if data != nil {
		logger.L.Debug("football data fetched", "team", name, "count", data.Count)
	}
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, req tactics.Request) {
	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		logger.L.Error("generate tactics failed", "team", req.Team, "opponent", req.Opponent, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tactics.Response{Result: result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.L.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
