package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wellnexa/backend/internal/model/booking"
	"github.com/wellnexa/backend/internal/model/counselor"
)

// ErrInvalidBooking is wrapped by every ValidationError.
var ErrInvalidBooking = errors.New("invalid booking")

// ValidationError lists the offending fields and why they were rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("invalid booking: %s", strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidBooking }

// Sink receives accepted bookings.
type Sink interface {
	Capture(ctx context.Context, b booking.Booking) error
}

// LogSink records that a booking arrived and drops it. Notes are never logged.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Capture(_ context.Context, b booking.Booking) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("booking captured",
		"booking", b.ID,
		"counselor", b.CounselorID,
		"date", b.Date,
		"time", b.Time,
		"sessionType", b.SessionType,
		"hasNotes", b.Notes != "",
	)
	return nil
}

// Service validates booking requests against the catalog and forwards them.
type Service struct {
	counselors counselor.Store
	options    booking.Options
	sink       Sink
	now        func() time.Time
}

// NewService creates a booking service. now defaults to the wall clock.
func NewService(counselors counselor.Store, options booking.Options, sink Sink, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		counselors: counselors,
		options:    options,
		sink:       sink,
		now:        now,
	}
}

// Options returns the time slots and session types the form offers.
func (s *Service) Options() booking.Options {
	return s.options
}

// Submit validates req and hands the resulting booking to the sink.
func (s *Service) Submit(ctx context.Context, req booking.Request) (booking.Booking, error) {
	req.CounselorID = strings.TrimSpace(req.CounselorID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.SessionType = strings.TrimSpace(req.SessionType)
	req.Notes = strings.TrimSpace(req.Notes)

	if err := s.validate(req); err != nil {
		return booking.Booking{}, err
	}

	b := booking.Booking{
		ID:          uuid.NewString(),
		CounselorID: req.CounselorID,
		Date:        req.Date,
		Time:        req.Time,
		SessionType: req.SessionType,
		Notes:       req.Notes,
		CapturedAt:  s.now().UTC(),
	}
	if err := s.sink.Capture(ctx, b); err != nil {
		return booking.Booking{}, fmt.Errorf("capture booking: %w", err)
	}
	return b, nil
}

func (s *Service) validate(req booking.Request) error {
	fields := make(map[string]string)

	switch {
	case req.CounselorID == "":
		fields["counselorId"] = "required"
	default:
		if _, ok := s.counselors.FindByID(req.CounselorID); !ok {
			fields["counselorId"] = "unknown counselor"
		}
	}

	if req.Date == "" {
		fields["date"] = "required"
	} else if date, err := time.Parse(booking.DateLayout, req.Date); err != nil {
		fields["date"] = "must be YYYY-MM-DD"
	} else {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			fields["date"] = "must not be in the past"
		}
	}

	if req.Time == "" {
		fields["time"] = "required"
	} else if !s.options.HasTimeSlot(req.Time) {
		fields["time"] = "not an offered time slot"
	}

	if req.SessionType != "" && !s.options.HasSessionType(req.SessionType) {
		fields["sessionType"] = "unknown session type"
	}

	if utf8.RuneCountInString(req.Notes) > booking.MaxNotesLength {
		fields["notes"] = fmt.Sprintf("must be at most %d characters", booking.MaxNotesLength)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
