// Package api exposes the routing pipeline over HTTP for callers that
// integrate at the service level rather than through the CLI.
//
// The surface is deliberately small: one routing endpoint plus a health
// probe. Requests carry the complete pipeline input (ports, bounding
// box, netlist, optional parameter overrides), so the server holds no
// per-layout state between calls; only the result cache is shared.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lightfab/picroute/pkg/buildinfo"
	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/netlist"
	"github.com/lightfab/picroute/pkg/port"
	"github.com/lightfab/picroute/pkg/route"
)

// Server handles HTTP routing requests.
type Server struct {
	runner *route.Runner
	logger *log.Logger
}

// NewServer creates a server around a configured runner.
func NewServer(runner *route.Runner, logger *log.Logger) *Server {
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP handler with standard middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Post("/api/v1/route", s.handleRoute)
	return r
}

// RouteRequest is the complete input for one routing run.
type RouteRequest struct {
	BBox    geom.BBox      `json:"bbox"`
	Ports   []port.Port    `json:"ports"`
	Netlist *netlist.Table `json:"netlist"`
	Params  *route.Params  `json:"params,omitempty"`
	Refresh bool           `json:"refresh,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if req.Netlist == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "missing netlist", Code: errors.ErrCodeInvalidNetlist})
		return
	}

	reg, err := port.FromPorts(req.Ports)
	if err != nil {
		s.writeError(w, err)
		return
	}

	params := route.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}

	result, err := s.runner.Execute(r.Context(), route.Input{
		Registry: reg,
		BBox:     req.BBox,
		Netlist:  req.Netlist,
	}, route.Options{Params: params, Refresh: req.Refresh})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeError maps pipeline errors onto HTTP status codes: input and
// configuration problems are the client's fault, everything else is a
// server error.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPitch,
		errors.ErrCodeInvalidNetlist, errors.ErrCodeInvalidPorts,
		errors.ErrCodeInvalidFormat, errors.ErrCodeEmptyRegistry,
		errors.ErrCodeNoResolvedGroups:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// logRequests logs one line per request with the chi request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
