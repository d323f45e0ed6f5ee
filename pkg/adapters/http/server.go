package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/aretw0/tracetm/pkg/report"
	"github.com/aretw0/tracetm/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Machine defines what the HTTP API needs from a loaded machine.
// *tracetm.Machine satisfies it.
type Machine interface {
	Trace(ctx context.Context, input string, maxDepth int) (*domain.TraceRecord, error)
	Explore(ctx context.Context, input string, maxDepth int) (*domain.Report, error)
	Definition() *domain.MachineDefinition
	Store() ports.ReportStore
}

// TraceRequest is the body of POST /trace.
type TraceRequest struct {
	Input    string `json:"input"`
	MaxDepth int    `json:"max_depth"`
}

// Server serves the tracing API for one machine.
type Server struct {
	Machine  Machine
	Streams  *StreamManager
	Spec     *openapi3.T
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the machine. It fails when the
// embedded OpenAPI document does not validate.
func NewHandler(m Machine, opts ...Option) (http.Handler, error) {
	s := &Server{
		Machine:  m,
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s.Spec = spec
	router, err := newRouter(spec)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Use(s.validateRequests(router))

	r.Get("/openapi.json", s.GetSpec)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/trace", s.Trace)
	r.Get("/machine", s.GetMachine)
	r.Get("/graph", s.GetGraph)
	r.Get("/reports", s.ListReports)
	r.Get("/reports/{id}", s.GetReport)
	r.Get("/events", s.SubscribeEvents)

	return r, nil
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

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>tracetm API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// GetSpec serves the validated OpenAPI document as JSON.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Spec)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.Spec != nil && s.Spec.Info != nil {
		apiVersion = s.Spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "tracetm-http",
		"version":     tracetm.Version,
		"api_version": apiVersion,
		"machine":     s.Machine.Definition().Name,
	})
}

// Trace handles the POST /trace request.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	var body TraceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("Trace: Invalid request body", "err", err)
		return
	}

	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
		s.logger.Warn("Trace: Input rejected", "err", err, "size", len(body.Input))
		return
	}

	record, err := s.Machine.Trace(r.Context(), input, body.MaxDepth)
	if err != nil && record == nil {
		s.traceError(w, err)
		return
	}
	if err != nil {
		s.logger.Error("Trace: report not stored", "id", record.ID, "err", err)
	}

	if payload, err := json.Marshal(record); err == nil {
		s.Streams.Broadcast(string(payload))
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) traceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDepth):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		s.logger.Error("Trace failed", "err", err)
	}
}

// GetMachine handles the GET /machine request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Machine.Definition())
}

// GetGraph handles the GET /graph request. With an input, the accepting
// path of that input is highlighted; the trace is not stored.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay

	q := r.URL.Query()
	if q.Has("input") {
		input, err := runner.SanitizeInput(q.Get("input"))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
			return
		}
		depth := 100
		if v := q.Get("max_depth"); v != "" {
			if depth, err = strconv.Atoi(v); err != nil {
				writeError(w, http.StatusBadRequest, "max_depth must be an integer")
				return
			}
		}
		rep, err := s.Machine.Explore(r.Context(), input, depth)
		if err != nil {
			s.traceError(w, err)
			return
		}
		overlay = graph.OverlayFromReport(rep)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(s.Machine.Definition(), overlay))
}

// ListReports handles the GET /reports request.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	store := s.Machine.Store()
	if store == nil {
		writeError(w, http.StatusNotImplemented, "no report store configured")
		return
	}
	ids, err := store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		s.logger.Error("ListReports failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetReport handles the GET /reports/{id} request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	store := s.Machine.Store()
	if store == nil {
		writeError(w, http.StatusNotImplemented, "no report store configured")
		return
	}

	record, err := store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		s.logger.Error("GetReport failed", "err", err)
		return
	}

	format := report.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		if format, err = report.ParseFormat(f); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if format == report.FormatJSON {
		writeJSON(w, http.StatusOK, record)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.Write(w, format, 1, record); err != nil {
		s.logger.Error("GetReport write failed", "err", err)
	}
}

// SubscribeEvents handles the GET /events request (SSE). Every finished
// trace is pushed as one data event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: trace\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
