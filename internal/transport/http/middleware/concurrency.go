package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "clicksoft-api/internal/transport/http/response"
)

// ConcurrencyLimit caps the requests being handled at once, protecting the
// database pool. Waiting requests give up when their context ends.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Message(resp.MsgBusy))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
