// Priority HTTP handlers.
//
// This file exposes REST endpoints for priority resources:
//   - GET    /priorities              (list, ETag support)
//   - POST   /priorities              (create, idempotent)
//   - GET    /priorities/search       (keyword search)
//   - GET    /priorities/{id}         (read)
//   - PATCH  /priorities/{id}         (partial update)
//   - DELETE /priorities/{id}         (delete)
//   - POST   /priorities/{id}/cycle   (advance status one step)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/insights"
	"github.com/tbourn/priority-radar/internal/search"
	"github.com/tbourn/priority-radar/internal/services"
	"github.com/tbourn/priority-radar/internal/utils"
)

const (
	defaultSearchK = 5
	maxSearchK     = 50
)

//
// DTOs
//

// ListPrioritiesResponse wraps a priority list.
type ListPrioritiesResponse struct {
	Priorities []domain.Priority `json:"priorities"`
	Count      int               `json:"count"`
}

// SearchPrioritiesResponse carries ranked search hits.
type SearchPrioritiesResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

//
// Helpers
//

// pathID parses the :id path parameter, answering 400 invalid_id when it is
// not a non-negative integer.
func pathID(c *gin.Context) (uint, bool) {
	id, valid := utils.ParseUint(c.Param("id"))
	if !valid {
		failErr(c, services.ErrInvalidID)
	}
	return id, valid
}

// dayFilter resolves the optional ?date= query ("2026-10-15", "today",
// "today-1"). An empty result means no filter.
func (h *Handlers) dayFilter(c *gin.Context) (string, bool) {
	expr := strings.TrimSpace(c.Query("date"))
	if expr == "" {
		return "", true
	}
	day, err := h.cal.Resolve(expr)
	if err != nil {
		failErr(c, services.ErrInvalidDate)
		return "", false
	}
	return day, true
}

//
// Handlers
//

// ListPriorities godoc
// @ID          listPriorities
// @Summary     List priorities
// @Description Returns the acting user's priorities in creation order, or everyone's with scope=team. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Priorities
// @Produce     json
//
// @Param       X-User-ID      header  string  false  "Acting user"                 example(user-1)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       scope          query   string  false  "mine (default) or team"      Enums(mine, team)
// @Param       date           query   string  false  "Day filter: YYYY-MM-DD, today, today-N"  example(today)
//
// @Success     200  {object} handlers.ListPrioritiesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     422  {object} handlers.ErrorResponse "Bad date"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /priorities [get]
func (h *Handlers) ListPriorities(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	day, valid := h.dayFilter(c)
	if !valid {
		return
	}

	q := tableQuery{model: &domain.Priority{}}
	tag := "priorities:team"
	if !teamScope(c) {
		q.where, q.args = "user_id = ?", []any{uid}
		tag = "priorities:" + uid
	}
	if h.notModified(c, tag+":"+day, q) {
		return
	}

	var (
		ps  []domain.Priority
		err error
	)
	if teamScope(c) {
		ps, err = h.priorities.GetAll(ctx)
	} else {
		ps, err = h.priorities.ListByUser(ctx, uid)
	}
	if err != nil {
		failErr(c, err)
		return
	}
	if day != "" {
		ps = insights.Today(ps, day)
	}
	if ps == nil {
		ps = []domain.Priority{}
	}
	ok(c, http.StatusOK, ListPrioritiesResponse{Priorities: ps, Count: len(ps)})
}

// CreatePriority godoc
// @ID          createPriority
// @Summary     Create a priority
// @Description Creates a priority. Status defaults to todo, date to today and userId to the acting user. Supports idempotency via the Idempotency-Key header.
// @Tags        Priorities
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false  "Acting user"      example(user-1)
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       body             body    services.NewPriority  true  "Priority"
//
// @Success     201  {object}  domain.Priority
// @Header      201  {string}  Idempotency-Replayed  "true when served from a previous identical request"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /priorities [post]
func (h *Handlers) CreatePriority(c *gin.Context) {
	ctx := c.Request.Context()
	if id, status, found := h.replayed(c); found {
		p, err := h.priorities.GetByID(ctx, id)
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, status, p)
		return
	}

	var req services.NewPriority
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = userID(c)
	}

	p, err := h.priorities.Create(ctx, req)
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, p.ID, http.StatusCreated)
	ok(c, http.StatusCreated, p)
}

// GetPriority godoc
// @ID          getPriority
// @Summary     Get a priority
// @Tags        Priorities
// @Produce     json
// @Param       id   path  int  true  "Priority ID"  example(3)
// @Success     200  {object}  domain.Priority
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Priority not found"
// @Router      /priorities/{id} [get]
func (h *Handlers) GetPriority(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.priorities.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePriority godoc
// @ID          updatePriority
// @Summary     Update a priority
// @Description Merges the given fields. completedAt is recomputed from the resulting status.
// @Tags        Priorities
// @Accept      json
// @Produce     json
// @Param       id    path  int                     true  "Priority ID"
// @Param       body  body  services.PriorityPatch  true  "Fields to change"
// @Success     200  {object}  domain.Priority
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Priority not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /priorities/{id} [patch]
func (h *Handlers) UpdatePriority(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var patch services.PriorityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.priorities.Update(c.Request.Context(), id, patch)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePriority godoc
// @ID          deletePriority
// @Summary     Delete a priority
// @Description Removes the priority and returns it as it was.
// @Tags        Priorities
// @Produce     json
// @Param       id   path  int  true  "Priority ID"
// @Success     200  {object}  domain.Priority
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Priority not found"
// @Router      /priorities/{id} [delete]
func (h *Handlers) DeletePriority(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.priorities.Delete(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// CyclePriority godoc
// @ID          cyclePriority
// @Summary     Advance a priority's status
// @Description todo → in-progress → done → todo; blocked restarts at todo.
// @Tags        Priorities
// @Produce     json
// @Param       id   path  int  true  "Priority ID"
// @Success     200  {object}  domain.Priority
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Priority not found"
// @Router      /priorities/{id}/cycle [post]
func (h *Handlers) CyclePriority(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	p, err := h.priorities.CycleStatus(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// SearchPriorities godoc
// @ID          searchPriorities
// @Summary     Search priorities
// @Description Ranks the acting user's priorities (or everyone's with scope=team) by keyword overlap with q.
// @Tags        Priorities
// @Produce     json
// @Param       q      query  string  true   "Search text"                example(release notes)
// @Param       k      query  int     false  "Maximum results"            minimum(1) maximum(50) default(5)
// @Param       scope  query  string  false  "mine (default) or team"     Enums(mine, team)
// @Success     200  {object}  handlers.SearchPrioritiesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing query"
// @Router      /priorities/search [get]
func (h *Handlers) SearchPriorities(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	k := utils.AtoiDefault(c.Query("k"), defaultSearchK)
	if k < 1 {
		k = 1
	}
	if k > maxSearchK {
		k = maxSearchK
	}
	uid := userID(c)
	if teamScope(c) {
		uid = ""
	}

	res, err := h.priorities.Search(c.Request.Context(), uid, q, k)
	if err != nil {
		failErr(c, err)
		return
	}
	if res == nil {
		res = []search.Result{}
	}
	ok(c, http.StatusOK, SearchPrioritiesResponse{Query: q, Results: res})
}
