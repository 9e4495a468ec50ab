package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-analytics/internal/analytics"
	"storefront-analytics/internal/auth"
	"storefront-analytics/internal/shared/loggers"
	"storefront-analytics/internal/shared/metrics"
)

type streamHandler struct {
	tracker  analytics.Tracker
	verifier auth.AdminVerifier
	interval time.Duration
}

func NewStreamHandler(tracker analytics.Tracker, verifier auth.AdminVerifier, interval time.Duration) AppHttpHandler {
	return &streamHandler{
		tracker:  tracker,
		verifier: verifier,
		interval: interval,
	}
}

// Handle processes GET /api/v1/analytics/stream requests. It opens a
// text/event-stream response, pushes one snapshot immediately and then
// one per interval until the client disconnects. Every event is a fresh,
// complete snapshot, so a client resumes by simply reconnecting; there
// is no backlog or replay.
func (h *streamHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if !h.verifier.IsAuthenticatedAdmin(r) {
		// No body on the stream endpoint: the connection closes right away.
		w.WriteHeader(http.StatusUnauthorized)
		return nil
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		return errInternalStreamingUnsupported()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	metricStreamClients.Inc()
	defer metricStreamClients.Dec()

	logger := loggers.Ctx(r.Context())
	logger.Debug().Bool(loggers.FieldStreamClient, true).Msg("snapshot stream opened")

	h.sendSnapshotEvent(w, r, flusher)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			// Client went away (or the server is shutting down); the
			// ticker is the only per-client resource and stops here.
			logger.Debug().Bool(loggers.FieldStreamClient, true).Msg("snapshot stream closed")
			return nil
		case <-ticker.C:
			h.sendSnapshotEvent(w, r, flusher)
		}
	}
}

// sendSnapshotEvent writes one snapshot as a single SSE event. A failed
// send is logged and skipped; the ticker keeps running so the next tick
// can succeed, and a truly dead connection surfaces via the request
// context instead.
func (h *streamHandler) sendSnapshotEvent(w http.ResponseWriter, r *http.Request, flusher http.Flusher) {
	payload, err := json.Marshal(h.tracker.Snapshot())
	if err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Msg("snapshot serialization failed, event skipped")
		metricStreamEventsSentTotal.WithLabelValues(codeInternalSnapshotEncodeFailed).Inc()
		return
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		loggers.Ctx(r.Context()).Debug().Err(err).Msg("stream write failed, event skipped")
		return
	}
	flusher.Flush()
	metricStreamEventsSentTotal.WithLabelValues(metrics.ValueNoError).Inc()
}
