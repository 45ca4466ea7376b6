// Package services – PriorityService
//
// PriorityService owns the priorities table: single and bulk creation, patch
// updates, deletion and the one-click status cycle. Every write that assigns
// an id runs in a transaction so max(id)+1 cannot race with another insert.
//
// The completedAt invariant is enforced here: after any write, CompletedAt is
// set exactly when Status is done.
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
	"github.com/tbourn/priority-radar/internal/search"
)

// DefaultUserID owns records created without an explicit user.
const DefaultUserID = "user-1"

const priorityTracer = "services/PriorityService"

// NewPriority is the input for PriorityService.Create. Empty fields take
// defaults: status todo, date today, user DefaultUserID.
type NewPriority struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	UserID      string        `json:"userId"`
	Date        string        `json:"date"`
}

// PriorityPatch lists the fields an update may change. Nil fields are kept.
type PriorityPatch struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *domain.Status `json:"status"`
	UserID      *string        `json:"userId"`
	Date        *string        `json:"date"`
}

// PriorityService manages priority records.
type PriorityService struct {
	DB    *gorm.DB
	Cal   *calendar.Calendar
	Delay latency.Delayer
}

// NewPriorityService constructs a PriorityService. A nil calendar uses
// calendar.Default and a nil delayer never waits.
func NewPriorityService(db *gorm.DB, cal *calendar.Calendar, delay latency.Delayer) *PriorityService {
	if cal == nil {
		cal = calendar.Default()
	}
	return &PriorityService{DB: db, Cal: cal, Delay: latency.OrNone(delay)}
}

// WithTx returns a copy of the service bound to tx. The copy never waits, so
// artificial latency is paid once by the outer operation.
func (s *PriorityService) WithTx(tx *gorm.DB) *PriorityService {
	return &PriorityService{DB: tx, Cal: s.Cal, Delay: latency.None{}}
}

func (s *PriorityService) wait(ctx context.Context) error {
	return latency.OrNone(s.Delay).Wait(ctx)
}

// GetAll returns every priority in insertion order.
func (s *PriorityService) GetAll(ctx context.Context) (out []domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "GetAll")
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	return repo.ListPriorities(ctx, s.DB)
}

// ListByUser returns a user's priorities in insertion order.
func (s *PriorityService) ListByUser(ctx context.Context, userID string) (out []domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "ListByUser", attribute.String("user.id", userID))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	return repo.ListPrioritiesByUser(ctx, s.DB, userID)
}

// GetByID returns the priority with id, or ErrPriorityNotFound.
func (s *PriorityService) GetByID(ctx context.Context, id uint) (p *domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "GetByID", attribute.Int64("priority.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	p, err = repo.GetPriority(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPriorityNotFound
	}
	return p, err
}

// Create inserts a single priority with the next free id.
func (s *PriorityService) Create(ctx context.Context, in NewPriority) (p *domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "Create", attribute.String("user.id", in.UserID))
	defer func() { observability.EndSpan(span, err) }()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	status := in.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	day := strings.TrimSpace(in.Date)
	if day == "" {
		day = s.Cal.Today()
	} else if _, perr := s.Cal.Parse(day); perr != nil {
		return nil, ErrInvalidDate
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = DefaultUserID
	}

	if err = s.wait(ctx); err != nil {
		return nil, err
	}

	now := s.Cal.Now()
	p = &domain.Priority{
		Title:       title,
		Description: in.Description,
		Status:      status,
		UserID:      userID,
		Date:        day,
		CreatedAt:   now,
	}
	if status == domain.StatusDone {
		p.CompletedAt = &now
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := repo.NextPriorityID(ctx, tx)
		if err != nil {
			return err
		}
		p.ID = id
		return repo.CreatePriorities(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	observability.PrioritiesCreated.Inc()
	return p, nil
}

// CreateMultiple inserts one todo priority per input for userID, dated
// today, with consecutive ids in input order. Inputs are stored as given.
func (s *PriorityService) CreateMultiple(ctx context.Context, inputs []domain.PriorityInput, userID string) (out []domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "CreateMultiple",
		attribute.String("user.id", userID),
		attribute.Int("priority.count", len(inputs)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if userID == "" {
		userID = DefaultUserID
	}
	if err = s.wait(ctx); err != nil {
		return nil, err
	}

	now := s.Cal.Now()
	today := s.Cal.DayOf(now)
	rows := make([]*domain.Priority, len(inputs))

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := repo.NextPriorityID(ctx, tx)
		if err != nil {
			return err
		}
		for i, in := range inputs {
			rows[i] = &domain.Priority{
				ID:          next + uint(i),
				Title:       in.Title,
				Description: in.Description,
				Status:      domain.StatusTodo,
				UserID:      userID,
				Date:        today,
				CreatedAt:   now,
			}
		}
		return repo.CreatePriorities(ctx, tx, rows...)
	})
	if err != nil {
		return nil, err
	}

	out = make([]domain.Priority, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	observability.PrioritiesCreated.Add(float64(len(out)))
	return out, nil
}

// Update merges patch into the priority with id and recomputes CompletedAt
// from the resulting status: now when done, nil otherwise.
func (s *PriorityService) Update(ctx context.Context, id uint, patch PriorityPatch) (p *domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "Update", attribute.Int64("priority.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	return s.modify(ctx, id, func(*domain.Priority) PriorityPatch { return patch })
}

// modify reads the priority with id and saves it with the patch built from
// that read, both inside one transaction.
func (s *PriorityService) modify(ctx context.Context, id uint, build func(cur *domain.Priority) PriorityPatch) (p *domain.Priority, err error) {
	if err = s.wait(ctx); err != nil {
		return nil, err
	}

	var changed bool
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetPriority(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPriorityNotFound
		}
		if err != nil {
			return err
		}
		before := cur.Status
		if err := s.apply(cur, build(cur)); err != nil {
			return err
		}
		changed = cur.Status != before
		p = cur
		return repo.SavePriority(ctx, tx, cur)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		observability.PriorityStatusChanges.WithLabelValues(string(p.Status)).Inc()
	}
	return p, nil
}

func (s *PriorityService) apply(p *domain.Priority, patch PriorityPatch) error {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return ErrEmptyTitle
		}
		p.Title = t
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return ErrInvalidStatus
		}
		p.Status = *patch.Status
	}
	if patch.UserID != nil && strings.TrimSpace(*patch.UserID) != "" {
		p.UserID = strings.TrimSpace(*patch.UserID)
	}
	if patch.Date != nil {
		if _, err := s.Cal.Parse(*patch.Date); err != nil {
			return ErrInvalidDate
		}
		p.Date = strings.TrimSpace(*patch.Date)
	}

	if p.Status == domain.StatusDone {
		now := s.Cal.Now()
		p.CompletedAt = &now
	} else {
		p.CompletedAt = nil
	}
	return nil
}

// CycleStatus advances a priority one step: todo → in-progress → done →
// todo. Blocked priorities restart at todo.
func (s *PriorityService) CycleStatus(ctx context.Context, id uint) (p *domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "CycleStatus", attribute.Int64("priority.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	return s.modify(ctx, id, func(cur *domain.Priority) PriorityPatch {
		next := cur.Status.Next()
		return PriorityPatch{Status: &next}
	})
}

// Delete removes the priority with id and returns it as it was.
func (s *PriorityService) Delete(ctx context.Context, id uint) (p *domain.Priority, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "Delete", attribute.Int64("priority.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.wait(ctx); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetPriority(ctx, tx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPriorityNotFound
		}
		if err != nil {
			return err
		}
		p = cur
		return repo.DeletePriority(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Search ranks a user's priorities against q by keyword overlap. An empty
// userID searches everyone's priorities.
func (s *PriorityService) Search(ctx context.Context, userID, q string, k int) (out []search.Result, err error) {
	ctx, span := observability.StartSpan(ctx, priorityTracer, "Search",
		attribute.String("user.id", userID),
		attribute.String("query", q),
	)
	defer func() { observability.EndSpan(span, err) }()

	var ps []domain.Priority
	if userID == "" {
		ps, err = repo.ListPriorities(ctx, s.DB)
	} else {
		ps, err = repo.ListPrioritiesByUser(ctx, s.DB, userID)
	}
	if err != nil {
		return nil, err
	}
	docs := make([]search.Doc, len(ps))
	for i, p := range ps {
		docs[i] = search.Doc{ID: p.ID, Text: strings.TrimSpace(p.Title + " " + p.Description)}
	}
	return search.New(docs).TopK(q, k), nil
}
