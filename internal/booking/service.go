package booking

import (
	"context"
	"strings"
	"time"

	"vaxslot/internal/domain"
	"vaxslot/internal/store"
)

// Service orchestrates booking: validation first, then the conflict and
// per-user checks, which run inside the repository's transaction.
type Service struct {
	repo  store.AppointmentRepository
	rules Rules
	now   func() time.Time
}

func NewService(repo store.AppointmentRepository, rules Rules) *Service {
	return &Service{repo: repo, rules: rules, now: time.Now}
}

type BookInput struct {
	UserID      string
	Description string
	Date        time.Time
	StartTime   domain.TimeOfDay
	EndTime     domain.TimeOfDay
}

func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	c := Candidate{
		UserID:      in.UserID,
		Description: strings.TrimSpace(in.Description),
		Date:        domain.Day(in.Date),
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	if err := s.rules.Validate(c, s.now()); err != nil {
		return domain.Appointment{}, err
	}

	return s.repo.Book(ctx, domain.Appointment{
		UserID:      c.UserID,
		Description: c.Description,
		Date:        c.Date,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
	})
}

// CheckSlot reports whether the window is free on the date and returns
// the conflicting appointments when it is not.
func (s *Service) CheckSlot(ctx context.Context, date time.Time, start, end domain.TimeOfDay) (bool, []domain.Appointment, error) {
	conflicts, err := s.repo.FindOverlapping(ctx, domain.Day(date), start, end)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, conflicts, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	return s.repo.FindByDate(ctx, domain.Day(date))
}

func (s *Service) Cancel(ctx context.Context, userID string, date time.Time) (domain.Appointment, error) {
	return s.repo.Cancel(ctx, userID, domain.Day(date))
}
