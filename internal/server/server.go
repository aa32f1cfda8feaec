// ABOUTME: HTTP surface for the pipeline: /run, /result, /health, /config, /metrics
// ABOUTME: ServeMux with JSON responses, request logging, and permissive CORS
package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/logger"
	"github.com/vidprep/vidprep/internal/pipeline"
)

// Server wires the pipeline to its HTTP surface.
type Server struct {
	cfg  *config.Config
	pipe *pipeline.Pipeline
	log  *logger.Logger
}

// New creates the server.
func New(cfg *config.Config, pipe *pipeline.Pipeline, log *logger.Logger) *Server {
	return &Server{cfg: cfg, pipe: pipe, log: log}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /run", s.handleRun)
	mux.HandleFunc("GET /result", s.handleResult)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /config", s.handleConfig)
	mux.Handle("GET /metrics", promhttp.Handler())

	return withCORS(mux)
}

// withCORS adds permissive CORS headers; the demo frontend is served from a
// different origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v with indentation, matching the demo frontend's
// expectations.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError reports a failure as {"error": "..."} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
