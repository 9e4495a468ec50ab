package http

import (
	"net/http"

	"storefront-analytics/internal/analytics"
	"storefront-analytics/internal/auth"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type summaryHandler struct {
	tracker  analytics.Tracker
	verifier auth.AdminVerifier
}

func NewSummaryHandler(tracker analytics.Tracker, verifier auth.AdminVerifier) AppHttpHandler {
	return &summaryHandler{
		tracker:  tracker,
		verifier: verifier,
	}
}

// Handle processes GET /api/v1/analytics/summary requests: one
// point-in-time snapshot, admin only.
func (h *summaryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if !h.verifier.IsAuthenticatedAdmin(r) {
		return errAdminTokenRejected()
	}

	writeJSONResponse(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    h.tracker.Snapshot(),
	})
	return nil
}
