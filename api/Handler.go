package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const RequestIdHeader = "X-Request-Id"

// NewHandler exposes the API over net/http with a permissive CORS policy
// (every origin, method and header; credentials allowed). Development only.
func NewHandler(a Api) http.Handler {
	policy := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return withRequestLogging(policy.Handler(a))
}

func (a Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := a.Dispatch(r.Context(), r.Method, r.URL.Path)
	writeJSON(w, response)
}

// writeJSON encodes the body before committing the status, so an encoding
// failure is still reported as a 500.
func writeJSON(w http.ResponseWriter, response Response) {
	statusCode := response.StatusCode
	body, err := json.Marshal(response.Body)
	if err != nil {
		log.Errorf("Failed to encode response body: %v", err)
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorBody{Detail: err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Errorf("Failed to write response body: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := uuid.New().String()
		w.Header().Set(RequestIdHeader, requestId)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		log.WithFields(log.Fields{
			"request_id": requestId,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     recorder.status,
			"duration":   time.Since(start).String(),
		}).Info("Handled request")
	})
}
