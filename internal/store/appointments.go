package store

import (
	"context"
	"time"

	"vaxslot/internal/domain"
)

type AppointmentRepository interface {
	// Book checks the slot and the user's existing bookings and inserts
	// the appointment, all inside one transaction. It returns
	// ErrSlotUnavailable or ErrUserAlreadyBooked when a check fails.
	Book(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)

	FindOverlapping(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	FindByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	FindAll(ctx context.Context) ([]domain.Appointment, error)

	// Cancel deletes the appointment matching user and date and returns
	// the deleted row, or ErrNotFound.
	Cancel(ctx context.Context, userID string, date time.Time) (domain.Appointment, error)
}
