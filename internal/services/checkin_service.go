// Package services – CheckInService
//
// CheckInService owns the check-ins table. It stores what it is given: title
// filtering, the priority cap and the once-per-day rule belong to the
// submission use case, and creating a check-in never touches priorities.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/latency"
	"github.com/tbourn/priority-radar/internal/observability"
	"github.com/tbourn/priority-radar/internal/repo"
)

const checkInTracer = "services/CheckInService"

// NewCheckIn is the input for CheckInService.Create.
type NewCheckIn struct {
	Priorities []domain.PriorityInput `json:"priorities"`
	Mood       domain.Mood            `json:"mood"`
	Note       *string                `json:"note"`
}

// CheckInPatch lists the fields an update may change. Nil fields are kept.
type CheckInPatch struct {
	Priorities *[]domain.PriorityInput `json:"priorities"`
	Mood       *domain.Mood            `json:"mood"`
	Note       *string                 `json:"note"`
	Date       *string                 `json:"date"`
}

// CheckInService manages check-in records.
type CheckInService struct {
	DB    *gorm.DB
	Cal   *calendar.Calendar
	Delay latency.Delayer
}

// NewCheckInService constructs a CheckInService.
func NewCheckInService(db *gorm.DB, cal *calendar.Calendar, delay latency.Delayer) *CheckInService {
	if cal == nil {
		cal = calendar.Default()
	}
	return &CheckInService{DB: db, Cal: cal, Delay: latency.OrNone(delay)}
}

// WithTx returns a copy of the service bound to tx that never waits.
func (s *CheckInService) WithTx(tx *gorm.DB) *CheckInService {
	return &CheckInService{DB: tx, Cal: s.Cal, Delay: latency.None{}}
}

func (s *CheckInService) wait(ctx context.Context) error {
	return latency.OrNone(s.Delay).Wait(ctx)
}

// GetAll returns every check-in in insertion order.
func (s *CheckInService) GetAll(ctx context.Context) (out []domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "GetAll")
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	return repo.ListCheckIns(ctx, s.DB)
}

// ListByUser returns a user's check-ins in insertion order.
func (s *CheckInService) ListByUser(ctx context.Context, userID string) (out []domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "ListByUser", attribute.String("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	return repo.ListCheckInsByUser(ctx, s.DB, userID)
}

// GetByID returns the check-in with id, or ErrCheckInNotFound.
func (s *CheckInService) GetByID(ctx context.Context, id uint) (c *domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "GetByID", attribute.Int64("checkin.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	c, err = repo.GetCheckIn(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCheckInNotFound
	}
	return c, err
}

// GetTodayCheckIn returns the user's check-in for today, or nil when there
// is none.
func (s *CheckInService) GetTodayCheckIn(ctx context.Context, userID string) (c *domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "GetTodayCheckIn", attribute.String("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	c, err = repo.FindCheckIn(ctx, s.DB, userID, s.Cal.Today())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// Create stores a check-in for userID dated today with the next free id.
// Mood defaults to neutral; an unknown mood is the only rejected input.
func (s *CheckInService) Create(ctx context.Context, in NewCheckIn, userID string) (c *domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "Create", attribute.String("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	mood := in.Mood
	if mood == "" {
		mood = domain.MoodNeutral
	}
	if !mood.Valid() {
		return nil, ErrInvalidMood
	}
	if userID == "" {
		userID = DefaultUserID
	}
	if err = s.wait(ctx); err != nil {
		return nil, err
	}

	now := s.Cal.Now()
	c = &domain.CheckIn{
		UserID:     userID,
		Date:       s.Cal.DayOf(now),
		Priorities: append([]domain.PriorityInput(nil), in.Priorities...),
		Mood:       mood,
		Note:       in.Note,
		CreatedAt:  now,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := repo.NextCheckInID(ctx, tx)
		if err != nil {
			return err
		}
		c.ID = id
		return repo.CreateCheckIn(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update merges patch into the check-in with id.
func (s *CheckInService) Update(ctx context.Context, id uint, patch CheckInPatch) (c *domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "Update", attribute.Int64("checkin.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetCheckIn(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCheckInNotFound
		}
		if err != nil {
			return err
		}
		if patch.Priorities != nil {
			cur.Priorities = append([]domain.PriorityInput(nil), (*patch.Priorities)...)
		}
		if patch.Mood != nil {
			if !patch.Mood.Valid() {
				return ErrInvalidMood
			}
			cur.Mood = *patch.Mood
		}
		if patch.Note != nil {
			cur.Note = normalizeNote(*patch.Note)
		}
		if patch.Date != nil {
			if _, err := s.Cal.Parse(*patch.Date); err != nil {
				return ErrInvalidDate
			}
			day := strings.TrimSpace(*patch.Date)
			if day != cur.Date {
				// one check-in per user per day
				other, err := repo.FindCheckIn(ctx, tx, cur.UserID, day)
				switch {
				case err == nil && other.ID != cur.ID:
					return ErrCheckInExists
				case err != nil && !errors.Is(err, repo.ErrNotFound):
					return err
				}
			}
			cur.Date = day
		}
		c = cur
		return repo.SaveCheckIn(ctx, tx, cur)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the check-in with id and returns it as it was. Priorities
// created alongside it are left in place.
func (s *CheckInService) Delete(ctx context.Context, id uint) (c *domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, checkInTracer, "Delete", attribute.Int64("checkin.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetCheckIn(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCheckInNotFound
		}
		if err != nil {
			return err
		}
		c = cur
		return repo.DeleteCheckIn(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// normalizeNote trims a note; blank notes become nil.
func normalizeNote(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
