// View HTTP handlers.
//
// The dashboard views are computed on every request from fresh snapshots of
// the stores; nothing here writes.
//   - GET /views/personal   (acting user's day and week)
//   - GET /views/team       (today across the roster)
//   - GET /views/weekly     (the current calendar week, mine or team)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/insights"
)

// PersonalView godoc
// @ID          personalView
// @Summary     Personal dashboard
// @Description Today's priorities, today and week completion, streak and whether a check-in is still due.
// @Tags        Views
// @Produce     json
// @Param       X-User-ID  header  string  false  "Acting user"  example(user-1)
// @Success     200  {object}  insights.PersonalView
// @Router      /views/personal [get]
func (h *Handlers) PersonalView(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	ps, err := h.priorities.ListByUser(ctx, uid)
	if err != nil {
		failErr(c, err)
		return
	}
	cs, err := h.checkIns.ListByUser(ctx, uid)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, insights.Personal(ps, cs, uid, h.cal.Today(), h.cal.ThisWeek()))
}

// TeamView godoc
// @ID          teamView
// @Summary     Team dashboard
// @Description Members active today, overall completion, focus keywords and one card per member.
// @Tags        Views
// @Produce     json
// @Success     200  {object}  insights.TeamView
// @Router      /views/team [get]
func (h *Handlers) TeamView(c *gin.Context) {
	ctx := c.Request.Context()

	ms, err := h.users.GetAll(ctx)
	if err != nil {
		failErr(c, err)
		return
	}
	ps, err := h.priorities.GetAll(ctx)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, insights.Team(ms, ps, h.cal.Today()))
}

// WeeklyView godoc
// @ID          weeklyView
// @Summary     Weekly summary
// @Description Completion, check-in count, dominant mood and the seven days of the current week, starting on the configured week start.
// @Tags        Views
// @Produce     json
// @Param       X-User-ID  header  string  false  "Acting user"  example(user-1)
// @Param       scope      query   string  false  "mine (default) or team"  Enums(mine, team)
// @Success     200  {object}  insights.WeeklyView
// @Router      /views/weekly [get]
func (h *Handlers) WeeklyView(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		uid string
		ps  []domain.Priority
		cs  []domain.CheckIn
		err error
	)
	if teamScope(c) {
		ps, err = h.priorities.GetAll(ctx)
		if err == nil {
			cs, err = h.checkIns.GetAll(ctx)
		}
	} else {
		uid = userID(c)
		ps, err = h.priorities.ListByUser(ctx, uid)
		if err == nil {
			cs, err = h.checkIns.ListByUser(ctx, uid)
		}
	}
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, insights.Weekly(ps, cs, uid, h.cal.Today(), h.cal.ThisWeek()))
}
