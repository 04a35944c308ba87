package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/instanti8/api/internal/metrics"
)

const (
	// idleTTL bounds how long an unused client limiter is kept
	idleTTL = 10 * time.Minute
	// sweepThreshold is the client count above which idle entries are swept
	sweepThreshold = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// client with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now

	if len(rl.clients) > sweepThreshold && now.Sub(rl.lastSweep) >= idleTTL {
		rl.sweep(now)
	}

	return cl.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than idleTTL. At most one sweep runs
// per idleTTL so a large active client set is not rescanned on every request.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.lastSweep = now
	for k, v := range rl.clients {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(rl.clients, k)
		}
	}
}

// RetryAfter returns the Retry-After header value in whole seconds
func (rl *RateLimiter) RetryAfter() string {
	if rl.limit <= 0 {
		return "60"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(rl.limit))))
}

// RateLimitMiddleware rejects clients that exceed their budget. Clients are
// keyed by IP address since the API is unauthenticated.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			metrics.RateLimitRejections.Inc()
			TooManyRequests(c, rl.RetryAfter())
			return
		}
		c.Next()
	}
}
