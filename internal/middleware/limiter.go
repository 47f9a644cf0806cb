package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
	"github.com/notehub/note-hub-service/pkg/limiter"
)

// RateLimiter rejects requests exceeding the configured bucket rate.
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			count := bucket.TakeAvailable(1)
			if count == 0 {
				response := app.NewResponse(c)
				response.ToResponse(code.ErrorTooManyRequest)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
