package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/latency"
	"github.com/tbourn/priority-radar/internal/observability"
	"github.com/tbourn/priority-radar/internal/repo"
)

const userTracer = "services/UserService"

// UserService serves the team roster. Each member carries the day of their
// latest check-in, derived on read.
type UserService struct {
	DB    *gorm.DB
	Delay latency.Delayer
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, delay latency.Delayer) *UserService {
	return &UserService{DB: db, Delay: latency.OrNone(delay)}
}

// GetAll returns every member ordered by id.
func (s *UserService) GetAll(ctx context.Context) (out []domain.Member, err error) {
	ctx, span := observability.StartSpan(ctx, userTracer, "GetAll")
	defer func() { observability.EndSpan(span, err) }()

	if err = latency.OrNone(s.Delay).Wait(ctx); err != nil {
		return nil, err
	}
	users, err := repo.ListUsers(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	last, err := repo.LastCheckInDays(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	out = make([]domain.Member, len(users))
	for i, u := range users {
		out[i] = member(u, last)
	}
	return out, nil
}

// GetByID returns one member, or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (m *domain.Member, err error) {
	ctx, span := observability.StartSpan(ctx, userTracer, "GetByID")
	defer func() { observability.EndSpan(span, err) }()

	u, err := repo.GetUser(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	last, err := repo.LastCheckInDays(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	mm := member(*u, last)
	return &mm, nil
}

func member(u domain.User, last map[string]string) domain.Member {
	m := domain.Member{User: u}
	if day, ok := last[u.ID]; ok {
		m.LastCheckIn = &day
	}
	return m
}
