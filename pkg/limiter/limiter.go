// Package limiter wraps token bucket rate limiting for HTTP routes.
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter abstraction consumed by the middleware layer.
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// Limiter holds the named token buckets.
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule describes one token bucket.
type BucketRule struct {
	Key          string
	FillInterval time.Duration
	Capacity     int64
	Quantum      int64
}
