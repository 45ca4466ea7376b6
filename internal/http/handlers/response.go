// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint: the error
// envelope, kind-based error translation, weak ETags for list endpoints and
// the Idempotency-Key replay/store pair used by create endpoints.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "priority not found"
//	}
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/http/middleware"
	"github.com/tbourn/priority-radar/internal/repo"
	"github.com/tbourn/priority-radar/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"priority not found"`
}

// fail aborts the request with a structured error. Server errors (>=500)
// are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr translates a service error by kind. Unknown errors are attached to
// the Gin context, so the access log records them, and answered with a
// generic 500.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		fail(c, http.StatusBadRequest, ErrCodeInvalidID, err.Error())
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// tableQuery selects the rows a list response is built from.
type tableQuery struct {
	model any
	where string
	args  []any
}

// notModified sets a weak ETag derived from the row count and latest update
// of every query and reports whether If-None-Match already matches it, in
// which case a 304 has been written. ETags are best effort: without a DB or
// on a stats error no header is sent and the request proceeds.
func (h *Handlers) notModified(c *gin.Context, tag string, qs ...tableQuery) bool {
	if h.db == nil {
		return false
	}
	var b strings.Builder
	b.WriteString(tag)
	for _, q := range qs {
		count, maxTS, err := repo.TableStats(c.Request.Context(), h.db, q.model, q.where, q.args...)
		if err != nil {
			return false
		}
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		fmt.Fprintf(&b, ":%d:%d", count, ts)
	}
	etag := `W/"` + b.String() + `"`
	c.Header("ETag", etag)

	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// etagMatches reports whether the If-None-Match header lists etag.
func etagMatches(inm, etag string) bool {
	if inm == "" {
		return false
	}
	for _, v := range strings.Split(inm, ",") {
		if v = strings.TrimSpace(v); v == etag || v == "*" {
			return true
		}
	}
	return false
}

// replayed looks up the stored result of an idempotent create. It returns
// the recorded resource id and status when the request is a replay.
func (h *Handlers) replayed(c *gin.Context) (resourceID uint, status int, found bool) {
	if h.db == nil || !middleware.IsReplay(c) {
		return 0, 0, false
	}
	key, _ := middleware.GetIdempotencyKey(c)
	rec, err := repo.GetIdempotency(c.Request.Context(), h.db, userID(c), middleware.IdempotencyScope(c), key, time.Now().UTC())
	if err != nil {
		return 0, 0, false
	}
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
	return rec.ResourceID, rec.Status, true
}

// remember records a completed create under the request's Idempotency-Key.
// Failures are logged and otherwise ignored; the create already succeeded.
func (h *Handlers) remember(c *gin.Context, resourceID uint, status int) {
	key, present := middleware.GetIdempotencyKey(c)
	if !present || h.db == nil {
		return
	}
	_, err := repo.CreateIdempotency(c.Request.Context(), h.db, userID(c), middleware.IdempotencyScope(c), key, resourceID, status, h.idemTTL)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		middleware.LoggerFrom(c).Warn().Err(err).Str("scope", middleware.IdempotencyScope(c)).Msg("idempotency record not stored")
	}
}
