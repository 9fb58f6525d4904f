package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// Appointment is one booked vaccination slot. Rows are never updated in
// place: they are inserted by the booking flow and physically deleted on
// cancellation.
type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      string    `bun:"user_id,notnull"`
	Description string    `bun:"description"`
	Date        time.Time `bun:"date,type:date,notnull"`
	StartTime   TimeOfDay `bun:"start_time,type:time,notnull"`
	EndTime     TimeOfDay `bun:"end_time,type:time,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,nullzero,default:now()"`
}

// Day normalizes t to midnight UTC so stored dates compare by calendar
// day regardless of the clock time they were parsed with.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
