package http

import (
	"context"
	"net/http"
	"time"

	"expenses/internal/log"
)

type healthBody struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// handleHealth reports liveness. It never touches the store.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	OK(healthBody{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	}).Header("Cache-Control", "no-store").Write(w)
}

const readyRetryAfter = "5"

// handleReady pings the store. Failures use the standard error body.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := healthBody{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"storage": "ok"},
	}

	if err := s.svc.Ping(ctx); err != nil {
		log.FromContext(r.Context()).WarnContext(ctx, "Readiness check failed", log.FieldError, err)
		ServiceUnavailableError("storage unavailable: "+err.Error()).
			Header("Retry-After", readyRetryAfter).
			Header("Cache-Control", "no-store").
			Write(w)
		return
	}

	OK(body).Header("Cache-Control", "no-store").Write(w)
}
