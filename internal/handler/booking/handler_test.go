package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnexa/backend/internal/content"
	"github.com/wellnexa/backend/internal/model/booking"
	"github.com/wellnexa/backend/internal/model/counselor"
	bookingService "github.com/wellnexa/backend/internal/service/booking"
)

type recordingSink struct {
	captured []booking.Booking
	err      error
}

func (s *recordingSink) Capture(_ context.Context, b booking.Booking) error {
	if s.err != nil {
		return s.err
	}
	s.captured = append(s.captured, b)
	return nil
}

func setupRouter(t *testing.T, sink bookingService.Sink) *chi.Mux {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC) }
	svc := bookingService.NewService(counselor.NewMemoryStore(c.Booking.Counselors), c.Booking.Options, sink, now)

	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestBookingOptions(t *testing.T) {
	r := setupRouter(t, &recordingSink{})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/booking/options", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var opts booking.Options
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opts))
	assert.Len(t, opts.TimeSlots, 7)
	assert.Equal(t, "09:00 AM", opts.TimeSlots[0])
	assert.Len(t, opts.SessionTypes, 3)
}

func TestSubmitBookingAccepted(t *testing.T) {
	sink := &recordingSink{}
	r := setupRouter(t, sink)

	resp := post(r, `{"counselorId":"1","date":"2025-04-12","time":"10:00 AM","sessionType":"virtual","notes":"exam stress"}`)
	require.Equal(t, http.StatusAccepted, resp.Code)

	var body submitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "received", body.Status)
	assert.NotEmpty(t, body.Booking.ID)
	require.Len(t, sink.captured, 1)
	assert.Equal(t, "exam stress", sink.captured[0].Notes)
}

func TestSubmitBookingValidation(t *testing.T) {
	sink := &recordingSink{}
	r := setupRouter(t, sink)

	resp := post(r, `{"counselorId":"","date":"","time":""}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body validationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid booking", body.Error)
	assert.Equal(t, map[string]string{
		"counselorId": "required",
		"date":        "required",
		"time":        "required",
	}, body.Fields)
	assert.Empty(t, sink.captured)
}

func TestSubmitBookingMalformedBody(t *testing.T) {
	r := setupRouter(t, &recordingSink{})

	assert.Equal(t, http.StatusBadRequest, post(r, `{"counselorId":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, `{"counselor":"1"}`).Code, "unknown fields are rejected")
}

func TestSubmitBookingSinkFailure(t *testing.T) {
	r := setupRouter(t, &recordingSink{err: errors.New("downstream unavailable")})

	resp := post(r, `{"counselorId":"3","date":"2025-04-10","time":"02:00 PM"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
