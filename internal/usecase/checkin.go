// Package usecase holds operations that span more than one service. The
// check-in submission lives here: it validates the form, enforces one
// check-in per user per day, and creates the check-in together with its
// priorities in a single transaction.
package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/latency"
	"github.com/tbourn/priority-radar/internal/observability"
	"github.com/tbourn/priority-radar/internal/repo"
	"github.com/tbourn/priority-radar/internal/services"
)

// CheckInSubmission is the daily check-in form as typed by the user.
type CheckInSubmission struct {
	Priorities []domain.PriorityInput `json:"priorities"`
	Mood       string                 `json:"mood"`
	Note       string                 `json:"note"`
}

// Submitted is the outcome of a successful submission.
type Submitted struct {
	CheckIn    domain.CheckIn    `json:"checkIn"`
	Priorities []domain.Priority `json:"priorities"`
}

// Submitter runs check-in submissions.
type Submitter struct {
	DB         *gorm.DB
	CheckIns   *services.CheckInService
	Priorities *services.PriorityService
	Delay      latency.Delayer
}

// NewSubmitter wires a Submitter over the two services. Both services must
// share db.
func NewSubmitter(db *gorm.DB, checkIns *services.CheckInService, priorities *services.PriorityService, delay latency.Delayer) *Submitter {
	return &Submitter{DB: db, CheckIns: checkIns, Priorities: priorities, Delay: latency.OrNone(delay)}
}

// Normalize applies the form rules: titles are trimmed and blank entries
// dropped, 1 to services.MaxPrioritiesPerCheckIn must remain, the mood must
// be known (empty means neutral), and a blank note becomes nil.
func Normalize(in CheckInSubmission) (services.NewCheckIn, error) {
	kept := make([]domain.PriorityInput, 0, len(in.Priorities))
	for _, p := range in.Priorities {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		kept = append(kept, domain.PriorityInput{Title: title, Description: strings.TrimSpace(p.Description)})
	}
	switch {
	case len(kept) == 0:
		return services.NewCheckIn{}, services.ErrNoPriorities
	case len(kept) > services.MaxPrioritiesPerCheckIn:
		return services.NewCheckIn{}, services.ErrTooManyPriorities
	}

	mood, err := domain.ParseMood(in.Mood)
	if err != nil {
		return services.NewCheckIn{}, services.ErrInvalidMood
	}

	out := services.NewCheckIn{Priorities: kept, Mood: mood}
	if note := strings.TrimSpace(in.Note); note != "" {
		out.Note = &note
	}
	return out, nil
}

// Submit validates in and, in one transaction, creates the user's check-in
// for today followed by one todo priority per kept title. A second check-in
// on the same day is rejected with services.ErrCheckInExists. Any failure
// leaves both tables untouched.
func (s *Submitter) Submit(ctx context.Context, in CheckInSubmission, userID string) (out *Submitted, err error) {
	ctx, span := observability.StartSpan(ctx, "usecase/Submitter", "Submit", attribute.String("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if userID == "" {
		userID = services.DefaultUserID
	}
	form, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	if err = latency.OrNone(s.Delay).Wait(ctx); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checkIns := s.CheckIns.WithTx(tx)
		exists, err := repo.HasCheckIn(ctx, tx, userID, checkIns.Cal.Today())
		if err != nil {
			return err
		}
		if exists {
			return services.ErrCheckInExists
		}

		c, err := checkIns.Create(ctx, form, userID)
		if err != nil {
			return err
		}
		ps, err := s.Priorities.WithTx(tx).CreateMultiple(ctx, form.Priorities, userID)
		if err != nil {
			return err
		}
		out = &Submitted{CheckIn: *c, Priorities: ps}
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.CheckInsSubmitted.Inc()
	return out, nil
}
