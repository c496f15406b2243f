package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"userId": 1,
	"vehicleId": 2,
	"slotId": 5,
	"startTime": "2025-10-27T09:00",
	"endTime": "2025-10-27T11:00",
	"cost": 20
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{BookingID: 17, SlotID: 5, UserID: 1}}
	h := NewHandler(uc, time.UTC, nopLogger{})

	rec := post(h, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"bookingId":17,"message":"Booking successful!"}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.UserID)
	assert.Equal(t, int64(2), uc.got.VehicleID)
	assert.Equal(t, int64(5), uc.got.SlotID)
	assert.True(t, time.Date(2025, 10, 27, 9, 0, 0, 0, time.UTC).Equal(uc.got.StartTime))
	assert.True(t, time.Date(2025, 10, 27, 11, 0, 0, 0, time.UTC).Equal(uc.got.EndTime))
	assert.Equal(t, 20.0, uc.got.Cost)
}

func TestHandle_LocalTimeUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	uc := &fakeUseCase{resp: &createBooking.Response{BookingID: 1}}
	h := NewHandler(uc, loc, nopLogger{})

	rec := post(h, validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, time.Date(2025, 10, 27, 6, 0, 0, 0, time.UTC).Equal(uc.got.StartTime))
}

func TestHandle_MissingFields(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, time.UTC, nopLogger{})

	rec := post(h, `{"userId": 1, "slotId": 5, "startTime": "yesterday", "cost": 0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Missing required booking information.", body.Error)
	assert.Equal(t, []handlers.FieldError{
		{Field: "vehicleId", Message: "vehicleId is missing or invalid"},
		{Field: "startTime", Message: "startTime is missing or invalid"},
		{Field: "endTime", Message: "endTime is missing or invalid"},
	}, body.Fields)
	assert.Nil(t, uc.got)
}

func TestHandle_EmptyBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, time.UTC, nopLogger{})

	rec := post(h, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required booking information.")
}

func TestHandle_MalformedBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, time.UTC, nopLogger{})

	rec := post(h, `{"userId": "one"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    &createBooking.ValidationError{Fields: []createBooking.FieldError{{Field: "endTime", Message: "endTime must be after startTime"}}},
			status: http.StatusBadRequest,
			body:   `{"error":"Missing required booking information.","fields":[{"field":"endTime","message":"endTime must be after startTime"}]}`,
		},
		{
			name:   "conflict",
			err:    &createBooking.ConflictError{SlotID: 5, ConflictingBookingID: 3},
			status: http.StatusConflict,
			body:   `{"error":"Time slot conflict"}`,
		},
		{
			name:   "slot not found",
			err:    createBooking.ErrSlotNotFound,
			status: http.StatusNotFound,
			body:   `{"error":"Parking slot not found"}`,
		},
		{
			name:   "infra",
			err:    errors.Join(createBooking.ErrInternal, errors.New("connection refused")),
			status: http.StatusInternalServerError,
			body:   `{"error":"Database error during booking."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, time.UTC, nopLogger{})

			rec := post(h, validBody)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
