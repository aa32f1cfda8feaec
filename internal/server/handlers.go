// ABOUTME: HTTP handlers translating requests into pipeline invocations
// ABOUTME: Maps validation failures to 400 and downstream failures to 500
package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vidprep/vidprep/internal/pipeline"
)

// multipartMemoryLimit caps the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const multipartMemoryLimit = 32 << 20

// handleRun runs the full pipeline for one uploaded image + prompt.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "run")
	reqLog.Info("run request received")

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		reqLog.WithField("error", err.Error()).Warn("bad multipart body")
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		reqLog.Warn("missing image file")
		writeError(w, http.StatusBadRequest, "no image file provided")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image: "+err.Error())
		return
	}

	duration := 0
	if d := r.FormValue("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "duration must be an integer")
			return
		}
	}

	req := pipeline.Request{
		Image:     image,
		ImageMIME: header.Header.Get("Content-Type"),
		Prompt:    r.FormValue("prompt"),
		Duration:  duration,
	}

	start := time.Now()
	result, err := s.pipe.Run(r.Context(), req)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())

	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			reqLog.WithField("reason", verr.Reason).Warn("request rejected")
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		reqLog.WithField("error", err.Error()).Error("pipeline failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reqLog.WithField("blocked", result.Blocked).Info("pipeline finished")
	writeJSON(w, http.StatusOK, result)
}

// handleResult serves the single most-recently-completed result.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Info("result requested")

	result, ok := s.pipe.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no results available, run the pipeline first")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleHealth is a constant liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConfig serves the non-secret configuration for introspection.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Info("config requested")
	writeJSON(w, http.StatusOK, s.cfg.Public())
}
