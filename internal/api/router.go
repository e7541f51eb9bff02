package api

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anketa-io/anketa/internal/metrics"
	"github.com/anketa-io/anketa/internal/middleware"
	"github.com/anketa-io/anketa/internal/services"
)

// Router owns the survey intake routes.
type Router struct {
	submissions *services.SubmissionService
	log         *logrus.Entry
}

// NewRouter wires the intake service into an HTTP router.
func NewRouter(submissions *services.SubmissionService, log *logrus.Entry) *Router {
	return &Router{submissions: submissions, log: log}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/survey", rt.handleSurvey) // POST
	mux.HandleFunc("/ping", rt.handlePing)        // GET
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// GET /ping — simple health check.
func (rt *Router) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"message":  "API is alive",
		"utc_time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// POST /v1/survey
func (rt *Router) handleSurvey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		rt.rejectInvalidBody(w)
		return
	}

	result, err := rt.submissions.Process(services.SubmissionRequest{
		Payload:      payload,
		RemoteAddr:   remoteHost(r.RemoteAddr),
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
	})
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.Is(err, services.ErrInvalidBody):
			rt.rejectInvalidBody(w)
		case errors.As(err, &ve):
			metrics.SubmissionsRejected.WithLabelValues("validation_error").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation_error",
				"detail": ve.Violations,
			})
		default:
			// The caller's submission_id is a promise the record was stored,
			// so a failed append must never surface as success.
			metrics.SubmissionsRejected.WithLabelValues("persistence_error").Inc()
			rt.log.WithFields(logrus.Fields{
				"request_id": middleware.RequestIDFromContext(r.Context()),
				"error":      err.Error(),
			}).Error("submission append failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	metrics.SubmissionsAccepted.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":        "ok",
		"submission_id": result.SubmissionID,
	})
}

func (rt *Router) rejectInvalidBody(w http.ResponseWriter) {
	metrics.SubmissionsRejected.WithLabelValues("invalid_json").Inc()
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "invalid_json",
		"detail": "Body must be application/json",
	})
}

// remoteHost strips the port from an address like "1.2.3.4:5678"; addresses
// without a port pass through unchanged.
func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
