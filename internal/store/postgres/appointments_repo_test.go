package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"vaxslot/internal/domain"
	"vaxslot/internal/store"
)

type fakeBookingTx struct {
	findOverlappingFn func(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error)
	findByUserFn      func(ctx context.Context, userID string) ([]domain.Appointment, error)

	userChecked bool
}

func (f *fakeBookingTx) FindOverlapping(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error) {
	if f.findOverlappingFn == nil {
		return nil, nil
	}
	return f.findOverlappingFn(ctx, date, start, end)
}

func (f *fakeBookingTx) FindByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	f.userChecked = true
	if f.findByUserFn == nil {
		return nil, nil
	}
	return f.findByUserFn(ctx, userID)
}

func (f *fakeBookingTx) InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	panic("not used")
}

func (f *fakeBookingTx) DeleteByUserAndDate(ctx context.Context, userID string, date time.Time) (domain.Appointment, error) {
	panic("not used")
}

func TestEnsureSlotBookable(t *testing.T) {
	date := time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC)
	appt := domain.Appointment{
		UserID:    "u1",
		Date:      date,
		StartTime: domain.ClockTime(12, 0),
		EndTime:   domain.ClockTime(12, 15),
	}

	t.Run("occupied slot rejected before user check", func(t *testing.T) {
		tx := &fakeBookingTx{
			findOverlappingFn: func(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error) {
				return []domain.Appointment{{ID: 1, UserID: "other"}}, nil
			},
			findByUserFn: func(ctx context.Context, userID string) ([]domain.Appointment, error) {
				return []domain.Appointment{{ID: 2, UserID: userID}}, nil
			},
		}

		err := ensureSlotBookable(context.Background(), tx, appt)
		if !errors.Is(err, store.ErrSlotUnavailable) {
			t.Fatalf("err = %v, want %v", err, store.ErrSlotUnavailable)
		}
		if tx.userChecked {
			t.Fatalf("user check ran despite slot conflict")
		}
	})

	t.Run("already booked user rejected", func(t *testing.T) {
		tx := &fakeBookingTx{
			findByUserFn: func(ctx context.Context, userID string) ([]domain.Appointment, error) {
				return []domain.Appointment{{ID: 2, UserID: userID}}, nil
			},
		}

		err := ensureSlotBookable(context.Background(), tx, appt)
		if !errors.Is(err, store.ErrUserAlreadyBooked) {
			t.Fatalf("err = %v, want %v", err, store.ErrUserAlreadyBooked)
		}
	})

	t.Run("free slot and free user accepted", func(t *testing.T) {
		tx := &fakeBookingTx{}

		if err := ensureSlotBookable(context.Background(), tx, appt); err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if !tx.userChecked {
			t.Fatalf("user check skipped for free slot")
		}
	})

	t.Run("read errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		tx := &fakeBookingTx{
			findOverlappingFn: func(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error) {
				return nil, boom
			},
		}

		if err := ensureSlotBookable(context.Background(), tx, appt); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
	})
}

func TestDateArg(t *testing.T) {
	date := time.Date(2026, 6, 11, 23, 0, 0, 0, time.UTC)
	if got := dateArg(date); got != "2026-06-11" {
		t.Fatalf("dateArg = %q, want %q", got, "2026-06-11")
	}
}
