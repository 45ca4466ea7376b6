// Information request HTTP handlers.
//
// This file exposes REST endpoints for public-records (FOIA) requests:
//   - GET    /foia-requests        (list, ETag support)
//   - POST   /foia-requests        (file a request, idempotent)
//   - GET    /foia-requests/{id}   (read)
//   - PATCH  /foia-requests/{id}   (partial update, e.g. status or responses)
//   - DELETE /foia-requests/{id}   (delete; the id is never reused)
//
// Responses carry contact details, so the router marks these paths
// no-store and the access log masks contact query parameters.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/domain"
	"github.com/tbourn/priority-radar/internal/http/middleware"
	"github.com/tbourn/priority-radar/internal/services"
)

// ListFOIARequestsResponse wraps the request list.
type ListFOIARequestsResponse struct {
	Requests []domain.FOIARequest `json:"requests"`
	Count    int                  `json:"count"`
}

// ListFOIARequests godoc
// @ID          listFOIARequests
// @Summary     List information requests
// @Description Returns every request in id order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        FOIA
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object} handlers.ListFOIARequestsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Router      /foia-requests [get]
func (h *Handlers) ListFOIARequests(c *gin.Context) {
	if h.notModified(c, "foia", tableQuery{model: &domain.FOIARequest{}}) {
		return
	}
	rs, err := h.foia.GetAll(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	if rs == nil {
		rs = []domain.FOIARequest{}
	}
	ok(c, http.StatusOK, ListFOIARequestsResponse{Requests: rs, Count: len(rs)})
}

// CreateFOIARequest godoc
// @ID          createFOIARequest
// @Summary     File an information request
// @Description Validates the form, assigns a reference number and derives the due date from urgency (normal 30, urgent 15, immediate 8 days). Supports idempotency via the Idempotency-Key header.
// @Tags        FOIA
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"
// @Param       body             body    services.NewFOIARequest  true  "Request form"
// @Success     201  {object}  domain.FOIARequest
// @Header      201  {string}  Idempotency-Replayed  "true when served from a previous identical request"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /foia-requests [post]
func (h *Handlers) CreateFOIARequest(c *gin.Context) {
	ctx := c.Request.Context()
	if id, status, found := h.replayed(c); found {
		r, err := h.foia.GetByID(ctx, strconv.FormatUint(uint64(id), 10))
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, status, r)
		return
	}

	var req services.NewFOIARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, err := h.foia.Create(ctx, req)
	if err != nil {
		failErr(c, err)
		return
	}
	middleware.LoggerFrom(c).Info().
		Uint("foia_id", r.ID).
		Str("reference", r.ReferenceNumber).
		Str("urgency", string(r.Urgency)).
		Msg("information request filed")

	h.remember(c, r.ID, http.StatusCreated)
	ok(c, http.StatusCreated, r)
}

// GetFOIARequest godoc
// @ID          getFOIARequest
// @Summary     Get an information request
// @Tags        FOIA
// @Produce     json
// @Param       id   path  string  true  "Request ID"  example(2)
// @Success     200  {object}  domain.FOIARequest
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /foia-requests/{id} [get]
func (h *Handlers) GetFOIARequest(c *gin.Context) {
	r, err := h.foia.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// UpdateFOIARequest godoc
// @ID          updateFOIARequest
// @Summary     Update an information request
// @Description Merges the given fields. Changing urgency moves the due date.
// @Tags        FOIA
// @Accept      json
// @Produce     json
// @Param       id    path  string              true  "Request ID"
// @Param       body  body  services.FOIAPatch  true  "Fields to change"
// @Success     200  {object}  domain.FOIARequest
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /foia-requests/{id} [patch]
func (h *Handlers) UpdateFOIARequest(c *gin.Context) {
	var patch services.FOIAPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, err := h.foia.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteFOIARequest godoc
// @ID          deleteFOIARequest
// @Summary     Delete an information request
// @Description Removes the request and returns it as it was. Its id is never handed out again.
// @Tags        FOIA
// @Produce     json
// @Param       id   path  string  true  "Request ID"
// @Success     200  {object}  domain.FOIARequest
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /foia-requests/{id} [delete]
func (h *Handlers) DeleteFOIARequest(c *gin.Context) {
	r, err := h.foia.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}
