package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/priority-radar/internal/sysutil"
)

// HeaderUserID carries the acting user. There is no authentication; the
// header only selects whose data a request reads and writes.
const HeaderUserID = "X-User-ID"

// ctxKeyUserID is where Identity stores the resolved user.
const ctxKeyUserID = "userID"

// Identity resolves the acting user from X-User-ID, falling back to
// defaultUser, and stores it in the Gin context for handlers, the rate
// limiter and the idempotency lookup.
func Identity(defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyUserID, sysutil.FirstNonEmpty(c.GetHeader(HeaderUserID), defaultUser))
		c.Next()
	}
}

// UserIDFrom returns the user stored by Identity, or "" when Identity did
// not run.
func UserIDFrom(c *gin.Context) string {
	v, _ := c.Get(ctxKeyUserID)
	return asString(v)
}
