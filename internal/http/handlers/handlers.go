// Package handlers exposes the priority, check-in, information request,
// roster and view endpoints.
//
// Handlers are transport-thin: they bind input, call application services,
// and translate results into HTTP responses (including conditional and
// replayed responses). The acting user comes from the Identity middleware.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/http/middleware"
	"github.com/tbourn/priority-radar/internal/repo"
	"github.com/tbourn/priority-radar/internal/search"
	"github.com/tbourn/priority-radar/internal/services"
	"github.com/tbourn/priority-radar/internal/usecase"
)

//
// Service contracts (context-aware)
//

// PriorityService defines priority operations consumed by HTTP handlers.
type PriorityService interface {
	GetAll(ctx context.Context) ([]domain.Priority, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Priority, error)
	GetByID(ctx context.Context, id uint) (*domain.Priority, error)
	Create(ctx context.Context, in services.NewPriority) (*domain.Priority, error)
	Update(ctx context.Context, id uint, patch services.PriorityPatch) (*domain.Priority, error)
	Delete(ctx context.Context, id uint) (*domain.Priority, error)
	CycleStatus(ctx context.Context, id uint) (*domain.Priority, error)
	Search(ctx context.Context, userID, q string, k int) ([]search.Result, error)
}

// CheckInService defines check-in reads and edits. Creation goes through
// CheckInSubmitter.
type CheckInService interface {
	GetAll(ctx context.Context) ([]domain.CheckIn, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CheckIn, error)
	GetByID(ctx context.Context, id uint) (*domain.CheckIn, error)
	GetTodayCheckIn(ctx context.Context, userID string) (*domain.CheckIn, error)
	Update(ctx context.Context, id uint, patch services.CheckInPatch) (*domain.CheckIn, error)
	Delete(ctx context.Context, id uint) (*domain.CheckIn, error)
}

// CheckInSubmitter validates and stores a daily check-in with its
// priorities.
type CheckInSubmitter interface {
	Submit(ctx context.Context, in usecase.CheckInSubmission, userID string) (*usecase.Submitted, error)
}

// FOIAService defines public-records request operations. Ids are passed
// through as received; the service reports malformed ones.
type FOIAService interface {
	GetAll(ctx context.Context) ([]domain.FOIARequest, error)
	GetByID(ctx context.Context, idStr string) (*domain.FOIARequest, error)
	Create(ctx context.Context, in services.NewFOIARequest) (*domain.FOIARequest, error)
	Update(ctx context.Context, idStr string, patch services.FOIAPatch) (*domain.FOIARequest, error)
	Delete(ctx context.Context, idStr string) (*domain.FOIARequest, error)
}

// UserService serves the team roster.
type UserService interface {
	GetAll(ctx context.Context) ([]domain.Member, error)
	GetByID(ctx context.Context, id string) (*domain.Member, error)
}

//
// Handler wiring
//

// Deps lists what Handlers needs. DB is optional: without it list
// endpoints send no ETag and Idempotency-Key is ignored.
type Deps struct {
	Priorities     PriorityService
	CheckIns       CheckInService
	Submitter      CheckInSubmitter
	FOIA           FOIAService
	Users          UserService
	Calendar       *calendar.Calendar
	DB             *gorm.DB
	IdempotencyTTL time.Duration
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	priorities PriorityService
	checkIns   CheckInService
	submitter  CheckInSubmitter
	foia       FOIAService
	users      UserService
	cal        *calendar.Calendar
	db         *gorm.DB
	idemTTL    time.Duration
}

// New constructs a Handlers instance from d.
func New(d Deps) *Handlers {
	cal := d.Calendar
	if cal == nil {
		cal = calendar.Default()
	}
	ttl := d.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handlers{
		priorities: d.Priorities,
		checkIns:   d.CheckIns,
		submitter:  d.Submitter,
		foia:       d.FOIA,
		users:      d.Users,
		cal:        cal,
		db:         d.DB,
		idemTTL:    ttl,
	}
}

// userID returns the acting user resolved by the Identity middleware,
// falling back to services.DefaultUserID when the middleware is absent.
func userID(c *gin.Context) string {
	if uid := middleware.UserIDFrom(c); uid != "" {
		return uid
	}
	return services.DefaultUserID
}

// teamScope reports whether the request asked for everyone's records
// (?scope=team) rather than the acting user's.
func teamScope(c *gin.Context) bool {
	return c.Query("scope") == "team"
}

// Register mounts every API endpoint on g (normally the API_BASE_PATH
// group). Static segments such as /priorities/search and /checkins/today
// take precedence over the :id routes.
func (h *Handlers) Register(g gin.IRoutes) {
	g.GET("/priorities", h.ListPriorities)
	g.POST("/priorities", h.CreatePriority)
	g.GET("/priorities/search", h.SearchPriorities)
	g.GET("/priorities/:id", h.GetPriority)
	g.PATCH("/priorities/:id", h.UpdatePriority)
	g.DELETE("/priorities/:id", h.DeletePriority)
	g.POST("/priorities/:id/cycle", h.CyclePriority)

	g.GET("/checkins", h.ListCheckIns)
	g.POST("/checkins", h.SubmitCheckIn)
	g.GET("/checkins/today", h.TodayCheckIn)
	g.GET("/checkins/:id", h.GetCheckIn)
	g.PATCH("/checkins/:id", h.UpdateCheckIn)
	g.DELETE("/checkins/:id", h.DeleteCheckIn)

	g.GET("/foia-requests", h.ListFOIARequests)
	g.POST("/foia-requests", h.CreateFOIARequest)
	g.GET("/foia-requests/:id", h.GetFOIARequest)
	g.PATCH("/foia-requests/:id", h.UpdateFOIARequest)
	g.DELETE("/foia-requests/:id", h.DeleteFOIARequest)

	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)

	g.GET("/views/personal", h.PersonalView)
	g.GET("/views/team", h.TeamView)
	g.GET("/views/weekly", h.WeeklyView)
}

// IdempotencyLookup adapts the idempotency store to the middleware's lookup.
func IdempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
		if err != nil || rec == nil {
			return false, nil
		}
		return true, nil
	}
}
