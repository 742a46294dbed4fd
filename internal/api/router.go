package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stockpulse/backend/internal/api/handlers"
	"github.com/stockpulse/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	securityHandler *handlers.SecurityHandler,
	dashboardHandler *handlers.DashboardHandler,
	dataHandler *handlers.DataHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Security endpoints
	api.HandleFunc("/securities", securityHandler.List).Methods("GET")
	api.HandleFunc("/securities/{ticker}", securityHandler.Get).Methods("GET")

	// Dashboard endpoints
	api.HandleFunc("/dashboard", dashboardHandler.Get).Methods("GET")
	api.HandleFunc("/dashboard/formatted", dashboardHandler.GetFormatted).Methods("GET")

	// Data endpoints
	api.HandleFunc("/data/collect", dataHandler.Collect).Methods("POST")
	api.HandleFunc("/data/sentiment", dataHandler.SaveSentiment).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "stockpulse-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
