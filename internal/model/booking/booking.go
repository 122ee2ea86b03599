package booking

import "time"

// DateLayout is the wire format of a preferred date.
const DateLayout = "2006-01-02"

// MaxNotesLength bounds the optional free-text description.
const MaxNotesLength = 1000

// SessionType is one of the ways a counseling session can take place.
type SessionType struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Options lists the choices offered by the booking form.
type Options struct {
	TimeSlots    []string      `json:"timeSlots" yaml:"timeSlots"`
	SessionTypes []SessionType `json:"sessionTypes" yaml:"sessionTypes"`
}

// HasTimeSlot reports whether slot is one of the offered times.
func (o Options) HasTimeSlot(slot string) bool {
	for _, s := range o.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// HasSessionType reports whether id names an offered session type.
func (o Options) HasSessionType(id string) bool {
	for _, t := range o.SessionTypes {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Request carries the fields collected by the booking form.
type Request struct {
	CounselorID string `json:"counselorId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SessionType string `json:"sessionType,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Booking is an accepted request. It is handed to a sink and never stored.
type Booking struct {
	ID          string    `json:"id"`
	CounselorID string    `json:"counselorId"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	SessionType string    `json:"sessionType,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CapturedAt  time.Time `json:"capturedAt"`
}
