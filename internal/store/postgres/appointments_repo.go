package postgres

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"vaxslot/internal/domain"
	"vaxslot/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type bookingTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) Book(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InDateTransaction(ctx, appt.Date, func(ctx context.Context, tx store.BookingTx) error {
		if err := ensureSlotBookable(ctx, tx, appt); err != nil {
			return err
		}
		a, err := tx.InsertAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *AppointmentRepo) Cancel(ctx context.Context, userID string, date time.Time) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InDateTransaction(ctx, date, func(ctx context.Context, tx store.BookingTx) error {
		a, err := tx.DeleteByUserAndDate(ctx, userID, date)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *AppointmentRepo) FindOverlapping(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error) {
	return findOverlapping(ctx, r.db, date, start, end)
}

func (r *AppointmentRepo) FindByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return findByUser(ctx, r.db, userID)
}

func (r *AppointmentRepo) FindByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("date = ?", dateArg(date)).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) FindAll(ctx context.Context) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("date ASC, start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InDateTransaction runs fn inside a transaction that first takes an
// advisory lock keyed by the calendar date, so concurrent bookings and
// cancellations touching one day serialize.
func (r *AppointmentRepo) InDateTransaction(ctx context.Context, date time.Time, fn func(ctx context.Context, tx store.BookingTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockDate(ctx, tx, date); err != nil {
			return err
		}
		return fn(ctx, bookingTx{tx: tx})
	})
}

func lockDate(ctx context.Context, tx bun.Tx, date time.Time) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", dateArg(date)).Exec(ctx)
	return err
}

// ensureSlotBookable enforces the booking policy order: slot
// availability first, then the one-live-booking-per-user rule.
func ensureSlotBookable(ctx context.Context, tx store.BookingTx, appt domain.Appointment) error {
	conflicts, err := tx.FindOverlapping(ctx, appt.Date, appt.StartTime, appt.EndTime)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return store.ErrSlotUnavailable
	}

	owned, err := tx.FindByUser(ctx, appt.UserID)
	if err != nil {
		return err
	}
	if len(owned) > 0 {
		return store.ErrUserAlreadyBooked
	}

	return nil
}

func (r bookingTx) FindOverlapping(ctx context.Context, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error) {
	return findOverlapping(ctx, r.tx, date, start, end)
}

func (r bookingTx) FindByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return findByUser(ctx, r.tx, userID)
}

func (r bookingTx) InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	m.ID = 0
	m.CreatedAt = time.Time{}

	_, err := r.tx.NewInsert().
		Model(&m).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	return m, nil
}

func (r bookingTx) DeleteByUserAndDate(ctx context.Context, userID string, date time.Time) (domain.Appointment, error) {
	var m domain.Appointment
	res, err := r.tx.NewDelete().
		Model(&m).
		Where("user_id = ?", userID).
		Where("date = ?", dateArg(date)).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return m, nil
}

// Half-open overlap: [s1, e1) conflicts with [s2, e2) iff s1 < e2 and
// e1 > s2.
func findOverlapping(ctx context.Context, db bun.IDB, date time.Time, start, end domain.TimeOfDay) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := db.NewSelect().
		Model(&rows).
		Where("date = ?", dateArg(date)).
		Where("start_time < ?", end).
		Where("end_time > ?", start).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func findByUser(ctx context.Context, db bun.IDB, userID string) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("date ASC, start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func dateArg(date time.Time) string {
	return date.Format("2006-01-02")
}
