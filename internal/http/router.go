package http

import (
	"net/http"
	"time"

	"storefront-analytics/internal/analytics"
	"storefront-analytics/internal/auth"
	"storefront-analytics/internal/shared/loggers"
	"storefront-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router. The traffic-recorder
// middleware is part of the chain, so every inbound request (matched or not)
// passes the classifier before routing; the analytics endpoints, health check
// and metrics are on the classifier's ignore-list and never count themselves.
func NewRouter(tracker analytics.Tracker, verifier auth.AdminVerifier, streamInterval time.Duration, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, tracker, httpLogger)

	// Initialize handlers
	summaryHandler := NewSummaryHandler(tracker, verifier)
	streamHandler := NewStreamHandler(tracker, verifier, streamInterval)

	// Routes
	router.Get("/api/v1/analytics/summary", errorHandlingAdapter(summaryHandler))
	router.Get("/api/v1/analytics/stream", errorHandlingAdapter(streamHandler))
	router.Get("/healthz", healthz)
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
