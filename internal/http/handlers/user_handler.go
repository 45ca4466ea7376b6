package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/domain"
)

// ListUsersResponse wraps the team roster.
type ListUsersResponse struct {
	Users []domain.Member `json:"users"`
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List team members
// @Description Returns the roster with each member's latest check-in day. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Users
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object} handlers.ListUsersResponse
// @Success     304  {string} string "Not Modified"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	// lastCheckIn is derived from check-ins, so both tables feed the ETag.
	if h.notModified(c, "users",
		tableQuery{model: &domain.User{}},
		tableQuery{model: &domain.CheckIn{}},
	) {
		return
	}
	ms, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	if ms == nil {
		ms = []domain.Member{}
	}
	ok(c, http.StatusOK, ListUsersResponse{Users: ms})
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a team member
// @Tags        Users
// @Produce     json
// @Param       id   path  string  true  "User ID"  example(user-2)
// @Success     200  {object}  domain.Member
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	m, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}
