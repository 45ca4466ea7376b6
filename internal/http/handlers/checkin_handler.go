// Check-in HTTP handlers.
//
// This file exposes REST endpoints for daily check-ins:
//   - GET    /checkins          (list, ETag support)
//   - POST   /checkins          (submit with priorities, idempotent)
//   - GET    /checkins/today    (acting user's check-in for today)
//   - GET    /checkins/{id}     (read)
//   - PATCH  /checkins/{id}     (partial update)
//   - DELETE /checkins/{id}     (delete; priorities are kept)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/http/middleware"
	"github.com/tbourn/priority-radar/internal/insights"
	"github.com/tbourn/priority-radar/internal/services"
	"github.com/tbourn/priority-radar/internal/usecase"
)

// ListCheckInsResponse wraps a check-in list.
type ListCheckInsResponse struct {
	CheckIns []domain.CheckIn `json:"checkIns"`
	Count    int              `json:"count"`
}

// TodayCheckInResponse reports the acting user's check-in for today.
// CheckIn is null when the user has not checked in yet.
type TodayCheckInResponse struct {
	Date    string          `json:"date"`
	CheckIn *domain.CheckIn `json:"checkIn"`
}

// ListCheckIns godoc
// @ID          listCheckIns
// @Summary     List check-ins
// @Description Returns the acting user's check-ins, or everyone's with scope=team. Supports weak ETag via If-None-Match and may return 304.
// @Tags        CheckIns
// @Produce     json
// @Param       X-User-ID      header  string  false  "Acting user"  example(user-1)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       scope          query   string  false  "mine (default) or team"  Enums(mine, team)
// @Param       date           query   string  false  "Day filter: YYYY-MM-DD, today, today-N"
// @Success     200  {object} handlers.ListCheckInsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     422  {object} handlers.ErrorResponse "Bad date"
// @Router      /checkins [get]
func (h *Handlers) ListCheckIns(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	day, valid := h.dayFilter(c)
	if !valid {
		return
	}

	q := tableQuery{model: &domain.CheckIn{}}
	tag := "checkins:team"
	if !teamScope(c) {
		q.where, q.args = "user_id = ?", []any{uid}
		tag = "checkins:" + uid
	}
	if h.notModified(c, tag+":"+day, q) {
		return
	}

	var (
		cs  []domain.CheckIn
		err error
	)
	if teamScope(c) {
		cs, err = h.checkIns.GetAll(ctx)
	} else {
		cs, err = h.checkIns.ListByUser(ctx, uid)
	}
	if err != nil {
		failErr(c, err)
		return
	}
	if day != "" {
		cs = insights.CheckInsOn(cs, day)
	}
	if cs == nil {
		cs = []domain.CheckIn{}
	}
	ok(c, http.StatusOK, ListCheckInsResponse{CheckIns: cs, Count: len(cs)})
}

// TodayCheckIn godoc
// @ID          todayCheckIn
// @Summary     Today's check-in
// @Description Returns the acting user's check-in for today; checkIn is null when there is none.
// @Tags        CheckIns
// @Produce     json
// @Param       X-User-ID  header  string  false  "Acting user"  example(user-1)
// @Success     200  {object}  handlers.TodayCheckInResponse
// @Router      /checkins/today [get]
func (h *Handlers) TodayCheckIn(c *gin.Context) {
	ci, err := h.checkIns.GetTodayCheckIn(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, TodayCheckInResponse{Date: h.cal.Today(), CheckIn: ci})
}

// SubmitCheckIn godoc
// @ID          submitCheckIn
// @Summary     Submit today's check-in
// @Description Validates the form (1-3 non-empty titles, known mood), then creates the check-in and one todo priority per title atomically. One check-in per user per day; a second one is rejected with 409. Supports idempotency via the Idempotency-Key header.
// @Tags        CheckIns
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  false  "Acting user"  example(user-1)
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       body             body    usecase.CheckInSubmission  true  "Check-in form"
// @Success     201  {object}  usecase.Submitted
// @Header      201  {string}  Idempotency-Replayed  "true when served from a previous identical request"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Already checked in today"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /checkins [post]
func (h *Handlers) SubmitCheckIn(c *gin.Context) {
	ctx := c.Request.Context()
	if id, status, found := h.replayed(c); found {
		out, err := h.submittedFor(ctx, id)
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, status, out)
		return
	}

	var req usecase.CheckInSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	out, err := h.submitter.Submit(ctx, req, userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().
		Uint("checkin_id", out.CheckIn.ID).
		Int("priorities", len(out.Priorities)).
		Msg("check-in submitted")

	h.remember(c, out.CheckIn.ID, http.StatusCreated)
	ok(c, http.StatusCreated, out)
}

// submittedFor rebuilds a submission result for a replay: the stored
// check-in plus the user's priorities of that day whose titles it lists.
func (h *Handlers) submittedFor(ctx context.Context, checkInID uint) (*usecase.Submitted, error) {
	ci, err := h.checkIns.GetByID(ctx, checkInID)
	if err != nil {
		return nil, err
	}
	ps, err := h.priorities.ListByUser(ctx, ci.UserID)
	if err != nil {
		return nil, err
	}
	want := make(map[string]int, len(ci.Priorities))
	for _, in := range ci.Priorities {
		want[in.Title]++
	}
	out := &usecase.Submitted{CheckIn: *ci, Priorities: []domain.Priority{}}
	for _, p := range insights.Today(ps, ci.Date) {
		if want[p.Title] > 0 {
			want[p.Title]--
			out.Priorities = append(out.Priorities, p)
		}
	}
	return out, nil
}

// GetCheckIn godoc
// @ID          getCheckIn
// @Summary     Get a check-in
// @Tags        CheckIns
// @Produce     json
// @Param       id   path  int  true  "Check-in ID"
// @Success     200  {object}  domain.CheckIn
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Check-in not found"
// @Router      /checkins/{id} [get]
func (h *Handlers) GetCheckIn(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	ci, err := h.checkIns.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ci)
}

// UpdateCheckIn godoc
// @ID          updateCheckIn
// @Summary     Update a check-in
// @Description Merges the given fields. The stored priority list is replaced as given; priority records are not touched.
// @Tags        CheckIns
// @Accept      json
// @Produce     json
// @Param       id    path  int                    true  "Check-in ID"
// @Param       body  body  services.CheckInPatch  true  "Fields to change"
// @Success     200  {object}  domain.CheckIn
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Check-in not found"
// @Failure     409  {object}  handlers.ErrorResponse  "User already checked in on that day"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /checkins/{id} [patch]
func (h *Handlers) UpdateCheckIn(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var patch services.CheckInPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ci, err := h.checkIns.Update(c.Request.Context(), id, patch)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ci)
}

// DeleteCheckIn godoc
// @ID          deleteCheckIn
// @Summary     Delete a check-in
// @Description Removes the check-in and returns it as it was. Priorities created with it are kept.
// @Tags        CheckIns
// @Produce     json
// @Param       id   path  int  true  "Check-in ID"
// @Success     200  {object}  domain.CheckIn
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Check-in not found"
// @Router      /checkins/{id} [delete]
func (h *Handlers) DeleteCheckIn(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	ci, err := h.checkIns.Delete(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ci)
}
