package booking

import (
	"fmt"
	"time"

	"vaxslot/internal/domain"
)

type Reason string

const (
	ReasonDateInPast      Reason = "date_in_past"
	ReasonStartOutOfHours Reason = "start_out_of_hours"
	ReasonEndOutOfHours   Reason = "end_out_of_hours"
	ReasonEndBeforeStart  Reason = "end_before_start"
	ReasonDurationTooLong Reason = "duration_too_long"
)

type ValidationError struct {
	Reason Reason
	msg    string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(reason Reason, msg string) error {
	return &ValidationError{Reason: reason, msg: msg}
}

// Rules holds the business-hours window and the slot length cap.
type Rules struct {
	Open        domain.TimeOfDay
	Close       domain.TimeOfDay
	MaxDuration time.Duration
}

func DefaultRules() Rules {
	return Rules{
		Open:        domain.ClockTime(8, 0),
		Close:       domain.ClockTime(17, 0),
		MaxDuration: 15 * time.Minute,
	}
}

type Candidate struct {
	UserID      string
	Description string
	Date        time.Time
	StartTime   domain.TimeOfDay
	EndTime     domain.TimeOfDay
}

// Validate checks the candidate against the rules in a fixed order and
// returns the first violation. The evaluation instant is an explicit
// parameter so callers and tests control what "today" means.
func (r Rules) Validate(c Candidate, now time.Time) error {
	if dateOrdinal(c.Date) < dateOrdinal(now) {
		return validationError(ReasonDateInPast, "Appointment start-time must be in the future.")
	}
	if c.StartTime < r.Open || c.StartTime >= r.Close {
		return validationError(ReasonStartOutOfHours, fmt.Sprintf(
			"Appointment start-time must be within business hours (%s-%s).", r.Open, r.Close))
	}
	if c.EndTime <= r.Open || c.EndTime > r.Close {
		return validationError(ReasonEndOutOfHours, fmt.Sprintf(
			"Appointment end-time must be within business hours (%s-%s).", r.Open, r.Close))
	}
	if c.StartTime >= c.EndTime {
		return validationError(ReasonEndBeforeStart, "Appointment start-time must be before appointment end-time.")
	}
	if c.EndTime.Sub(c.StartTime) > r.MaxDuration {
		return validationError(ReasonDurationTooLong, fmt.Sprintf(
			"Appointment duration must not exceed %d minutes.", int(r.MaxDuration/time.Minute)))
	}
	return nil
}

// dateOrdinal collapses a timestamp to a comparable calendar day in its
// own location, so a UTC-parsed candidate date compares against the
// server clock by day, not by instant.
func dateOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
