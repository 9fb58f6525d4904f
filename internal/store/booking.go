package store

import (
	"context"
	"time"

	"vaxslot/internal/domain"
)

// BookingTx is the slice of the store a booking or cancellation sees
// inside its transaction.
type BookingTx interface {
	FindOverlapping(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	DeleteByUserAndDate(ctx context.Context, userID string, date time.Time) (domain.Appointment, error)
}
