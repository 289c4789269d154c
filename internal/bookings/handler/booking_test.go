package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	bookingserrors "registrar/internal/bookings/errors"
	apperrors "registrar/pkg/errors"
	"registrar/pkg/logger"
	"registrar/pkg/model"
)

type mockBookingService struct {
	createFunc      func(ctx context.Context, booking *model.Booking) error
	listFunc        func(ctx context.Context, state string) ([]*model.Booking, error)
	bookedDatesFunc func(ctx context.Context, state string) ([]string, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingService) List(ctx context.Context, state string) ([]*model.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, state)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingService) BookedDates(ctx context.Context, state string) ([]string, error) {
	if m.bookedDatesFunc != nil {
		return m.bookedDatesFunc(ctx, state)
	}
	return []string{}, nil
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"personName": "Ann Lee",
	"churchName": "Grace",
	"state": "Texas",
	"date": "2025-06-01",
	"mobile": "+15124634630"
}`

func TestCreate_Success(t *testing.T) {
	var received *model.Booking
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			received = booking
			booking.ID = "665f1c2e9b1d4a0012345678"
			return nil
		},
	}

	rec := serve(newRouter(svc), http.MethodPost, "/api/bookings", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, received)
	assert.Equal(t, "Texas", received.State)
	assert.Equal(t, model.NewDate(2025, time.June, 1), received.Date)

	var resp struct {
		Message string          `json:"message"`
		Booking json.RawMessage `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, bookingserrors.MsgBookingSaved, resp.Message)

	var booking map[string]any
	require.NoError(t, json.Unmarshal(resp.Booking, &booking))
	assert.Equal(t, "665f1c2e9b1d4a0012345678", booking["_id"])
	assert.Equal(t, "2025-06-01", booking["date"])
	assert.Equal(t, "Grace", booking["churchName"])
}

func TestCreate_InvalidBody(t *testing.T) {
	called := false
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			called = true
			return nil
		},
	}

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"personName":`},
		{"wrong type", `{"state": 7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(svc), http.MethodPost, "/api/bookings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
		})
	}
	assert.False(t, called)
}

func TestCreate_UnusableDate(t *testing.T) {
	called := false
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			called = true
			return nil
		},
	}

	for _, date := range []string{"June 1st", "0001-01-01", "1850-07-04"} {
		t.Run(date, func(t *testing.T) {
			body := strings.Replace(validBody, "2025-06-01", date, 1)
			rec := serve(newRouter(svc), http.MethodPost, "/api/bookings", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error   string            `json:"error"`
				Details map[string]string `json:"details"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, bookingserrors.MsgValidationFailed, resp.Error)
			assert.Contains(t, resp.Details["date"], date)
		})
	}
	assert.False(t, called)
}

func TestCreate_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "date conflict",
			err:        apperrors.Conflict(apperrors.CodeDateConflict, bookingserrors.MsgDateConflict),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"That date is already booked for this state."}`,
		},
		{
			name:       "church conflict",
			err:        apperrors.Conflict(apperrors.CodeChurchConflict, bookingserrors.MsgChurchConflict),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"This church has already booked this state."}`,
		},
		{
			name:       "validation",
			err:        apperrors.Validation(bookingserrors.MsgValidationFailed, map[string]any{"mobile": "mobile is required"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Booking validation failed","details":{"mobile":"mobile is required"}}`,
		},
		{
			name:       "store failure hides cause",
			err:        apperrors.Internal(bookingserrors.MsgSaveFailed, errors.New("mongo: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to save booking"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, booking *model.Booking) error { return tt.err },
			}
			rec := serve(newRouter(svc), http.MethodPost, "/api/bookings", validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestList(t *testing.T) {
	var receivedState string
	svc := &mockBookingService{
		listFunc: func(ctx context.Context, state string) ([]*model.Booking, error) {
			receivedState = state
			return []*model.Booking{
				{ID: "a", State: "Texas", ChurchName: "Grace", Date: model.NewDate(2025, time.June, 1)},
			}, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodGet, "/api/bookings?state=Texas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Texas", receivedState)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2025-06-01", got[0]["date"])
}

func TestList_EmptyIsArray(t *testing.T) {
	rec := serve(newRouter(&mockBookingService{}), http.MethodGet, "/api/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestList_StoreFailure(t *testing.T) {
	svc := &mockBookingService{
		listFunc: func(ctx context.Context, state string) ([]*model.Booking, error) {
			return nil, apperrors.Internal(bookingserrors.MsgFetchFailed, errors.New("timeout"))
		},
	}
	rec := serve(newRouter(svc), http.MethodGet, "/api/bookings", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch bookings"}`, rec.Body.String())
}

func TestBookedDates(t *testing.T) {
	var receivedState string
	svc := &mockBookingService{
		bookedDatesFunc: func(ctx context.Context, state string) ([]string, error) {
			receivedState = state
			return []string{"2025-06-01", "2025-07-04"}, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodGet, "/api/bookings/dates/New%20York", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New York", receivedState)
	assert.JSONEq(t, `["2025-06-01","2025-07-04"]`, rec.Body.String())
}

func TestBookedDates_StoreFailure(t *testing.T) {
	svc := &mockBookingService{
		bookedDatesFunc: func(ctx context.Context, state string) ([]string, error) {
			return nil, apperrors.Internal(bookingserrors.MsgFetchDatesFailed, errors.New("timeout"))
		},
	}
	rec := serve(newRouter(svc), http.MethodGet, "/api/bookings/dates/Texas", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch booked dates"}`, rec.Body.String())
}

// ────────────────────────────────────────────────
// Health
// ────────────────────────────────────────────────

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error { return s.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"health", "/health", nil, http.StatusOK, `{"status":"ok"}`},
		{"health ignores database", "/health", errors.New("down"), http.StatusOK, `{"status":"ok"}`},
		{"ready", "/ready", nil, http.StatusOK, `{"status":"ready","database":"ok"}`},
		{"not ready", "/ready", errors.New("down"), http.StatusServiceUnavailable, `{"status":"unavailable","database":"error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(stubPinger{err: tt.pingErr}, logger.Discard()).RegisterRoutes(router)

			rec := serve(router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
