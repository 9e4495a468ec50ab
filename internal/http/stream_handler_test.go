package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	analyticsmocks "storefront-analytics/internal/analytics/mocks"
	authmocks "storefront-analytics/internal/auth/mocks"
	"storefront-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStreamHandler_Handle_Unauthorized(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracker := analyticsmocks.NewMockTracker(ctrl)
	mockVerifier := authmocks.NewMockAdminVerifier(ctrl)
	handler := NewStreamHandler(mockTracker, mockVerifier, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stream", nil)
	rr := httptest.NewRecorder()

	mockVerifier.EXPECT().IsAuthenticatedAdmin(gomock.Any()).Return(false)

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Body.String(), "401 on the stream endpoint carries no body")
}

func TestStreamHandler_Handle_SendsFirstEventImmediately(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracker := analyticsmocks.NewMockTracker(ctrl)
	mockVerifier := authmocks.NewMockAdminVerifier(ctrl)
	// Interval far beyond the test deadline: only the immediate first
	// event can be observed.
	handler := NewStreamHandler(mockTracker, mockVerifier, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stream", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	mockVerifier.EXPECT().IsAuthenticatedAdmin(gomock.Any()).Return(true)
	mockTracker.EXPECT().Snapshot().Return(testSnapshot())

	err := handler.Handle(rr, req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.True(t, rr.Flushed, "first event must be flushed, not buffered")

	events := parseSSEEvents(t, rr.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, int64(98311), events[0].TotalRequests)
}

func TestStreamHandler_Handle_SendsPeriodicEventsUntilDisconnect(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracker := analyticsmocks.NewMockTracker(ctrl)
	mockVerifier := authmocks.NewMockAdminVerifier(ctrl)
	handler := NewStreamHandler(mockTracker, mockVerifier, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stream", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	mockVerifier.EXPECT().IsAuthenticatedAdmin(gomock.Any()).Return(true)
	// Every event is a fresh snapshot: one Snapshot call per event.
	mockTracker.EXPECT().Snapshot().Return(testSnapshot()).MinTimes(2)

	// Handle returns once the client context is done, proving the
	// disconnect path stops the ticker.
	err := handler.Handle(rr, req)
	require.NoError(t, err)

	events := parseSSEEvents(t, rr.Body.String())
	assert.GreaterOrEqual(t, len(events), 2, "first event plus at least one tick")
	for _, event := range events {
		assert.Equal(t, int64(98311), event.TotalRequests, "each event is a complete snapshot")
	}
}

// parseSSEEvents decodes every "data: <json>" line of an event-stream body.
func parseSSEEvents(t *testing.T, body string) []models.AnalyticsSnapshot {
	t.Helper()

	var events []models.AnalyticsSnapshot
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var snapshot models.AnalyticsSnapshot
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &snapshot))
		events = append(events, snapshot)
	}
	return events
}
