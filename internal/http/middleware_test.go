package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	analyticsmocks "storefront-analytics/internal/analytics/mocks"
	"storefront-analytics/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMwRequestID_GeneratesIDWhenNotProvided(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	mw := mwRequestID(logger)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request ID is set in header
		requestID := r.Header.Get(headerRequestID)
		assert.NotEmpty(t, requestID, "request ID should be generated")

		// Verify it's a valid ULID (26 characters)
		assert.Len(t, requestID, 26, "request ID should be a valid ULID")

		// Verify logger is in context
		ctxLogger := loggers.Ctx(r.Context())
		assert.NotNil(t, ctxLogger, "logger should be in context")

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMwRequestID_UsesProvidedID(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	mw := mwRequestID(logger)

	providedID := "custom-request-id-12345"
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify the provided request ID is used
		requestID := r.Header.Get(headerRequestID)
		assert.Equal(t, providedID, requestID, "should use provided request ID")

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(headerRequestID, providedID)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMwTrafficRecorder_RecordsClassifiedRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantRecord bool
		wantPublic bool
	}{
		{name: "storefront page", path: "/cart", wantRecord: true, wantPublic: true},
		{name: "public api", path: "/api/v1/products", wantRecord: true, wantPublic: true},
		{name: "non-public api", path: "/api/v1/orders/123456", wantRecord: true, wantPublic: false},
		{name: "ignored asset", path: "/favicon.ico", wantRecord: false},
		{name: "own summary endpoint", path: "/api/v1/analytics/summary", wantRecord: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracker := analyticsmocks.NewMockTracker(ctrl)
			if tt.wantRecord {
				mockTracker.EXPECT().Record(tt.path, "test-agent", tt.wantPublic)
			}

			nextCalled := false
			handler := mwTrafficRecorder(mockTracker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("User-Agent", "test-agent")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			// The recorder must pass every request through untouched.
			assert.True(t, nextCalled)
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestMwTrafficRecorder_QueryStringDoesNotReachClassifier(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracker := analyticsmocks.NewMockTracker(ctrl)
	mockTracker.EXPECT().Record("/search", "", true)

	handler := mwTrafficRecorder(mockTracker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/search?q=sneakers", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMwRecoverer_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	logger, _ := loggers.New("info")
	// Set up request ID middleware first so logger is in context
	mwReqID := mwRequestID(logger)
	mwRecover := mwRecoverer

	handler := mwRecover(mwReqID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	// Should not panic, should recover
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, req)
	})

	// Should return 500 status
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// Should return JSON error response
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	// Parse response body
	var response apiResponse
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)

	// Assert response fields
	assert.False(t, response.Success)
	assert.Equal(t, "internal server error", response.Error)
}
