// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	service "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/domain/model"
	"github.com/okian/ironrank/internal/domain/progression"
	"github.com/okian/ironrank/internal/domain/volume"
	"github.com/okian/ironrank/pkg/logger"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 32 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Plates(ctx context.Context, req service.PlateRequest) (service.PlateResult, error)
	OneRepMax(ctx context.Context, weightKg float64, reps int) (float64, error)
	Rank(ctx context.Context, volumeKg float64) (progression.Standing, error)
	Summary(ctx context.Context, sets []model.LoggedSet, startedAt, endedAt time.Time) (volume.SessionSummary, error)
	History(ctx context.Context, sets []model.LoggedSet, exerciseID string) (service.ExerciseHistory, error)
	Undo(ctx context.Context, sets []model.LoggedSet, exerciseID string) ([]model.LoggedSet, bool, error)
	Dashboard(ctx context.Context, in service.DashboardInput) (service.Dashboard, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps         Dependencies
	maxBodyBytes int64
	now          func() time.Time
	log          logger.Logger

	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMaxBodyBytes caps request bodies at n bytes.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithClock sets the clock used when a dashboard request omits as_of.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		deps:          deps,
		maxBodyBytes:  DefaultMaxBodyBytes,
		now:           time.Now,
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("api")
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/v1/plates", "plates", s.handlePlates)
	route("/v1/one-rep-max", "one_rep_max", s.handleOneRepMax)
	route("/v1/rank", "rank", s.handleRank)
	route("/v1/summary", "summary", s.handleSummary)
	route("/v1/history", "history", s.handleHistory)
	route("/v1/undo", "undo", s.handleUndo)
	route("/v1/dashboard", "dashboard", s.handleDashboard)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail classifies err, logs server-side failures and writes the response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}

// decodePost checks the method and decodes a JSON body into v.
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, op string, v any) error {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		return NewKind(op, ErrMethodNotAllowed)
	}
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return WrapKind(op, ErrPayloadTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("decode body: %w", err))
	}
	return nil
}
