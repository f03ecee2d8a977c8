package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmnk/SVC-BookingService/internal/api/middleware"
	createBooking "github.com/avdmnk/SVC-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// serve прогоняет запрос через middleware.Auth и handler, как в продакшен-роутере
func serve(t *testing.T, uc CreateBookingUseCase, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func validBody() string {
	return `{"serviceId": 3, "date": "2025-10-15", "startTime": "10:00"}`
}

func TestHandle_CreatesBooking(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{
		resp: &createBooking.Response{
			ID:              7,
			CustomerID:      42,
			ServiceID:       3,
			Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          "pending",
			ServiceName:     "Haircut",
			ServicePrice:    50,
			CustomerName:    "Jane Doe",
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	rec := serve(t, uc, validBody(), map[string]string{"X-User-ID": "42"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.CustomerID)
	assert.Equal(t, int64(3), uc.gotReq.ServiceID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_MissingUserIDHeader(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, validBody(), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_InvalidJSON(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, `{"serviceId": }`, map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, `{"serviceId": 3, "date": "15.10.2025", "startTime": "10:00"}`,
		map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_SlotNotAvailable(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrSlotNotAvailable}

	rec := serve(t, uc, validBody(), map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_DayNotBookableSurfacesReason(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: Sick Leave", createBooking.ErrDayNotBookable)}

	rec := serve(t, uc, validBody(), map[string]string{"X-User-ID": "42"})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sick Leave")
}

func TestHandle_ServiceNotFound(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrServiceNotFound}

	rec := serve(t, uc, validBody(), map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_DateInPast(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrInvalidDate}

	rec := serve(t, uc, validBody(), map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrInternal}

	rec := serve(t, uc, validBody(), map[string]string{"X-User-ID": "42"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
