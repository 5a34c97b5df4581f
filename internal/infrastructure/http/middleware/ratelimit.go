package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pantryplan/api/internal/infrastructure/config"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters keeps one token bucket per client key
type clientLimiters struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	limit       rate.Limit
	burst       int
	idleTTL     time.Duration
	lastCleanup time.Time
}

func newClientLimiters(cfg config.RateLimitConfig) *clientLimiters {
	perMin := cfg.RequestsPerMin
	if perMin <= 0 {
		perMin = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	idle := cfg.CleanupInterval
	if idle <= 0 {
		idle = 5 * time.Minute
	}
	return &clientLimiters{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMin) / 60),
		burst:    burst,
		idleTTL:  idle,
	}
}

func (l *clientLimiters) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > l.idleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastCleanup = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// retryAfterSeconds is the time one token takes to refill, rounded up
func (l *clientLimiters) retryAfterSeconds() int {
	secs := int(math.Ceil(1 / float64(l.limit)))
	if secs < 1 {
		return 1
	}
	return secs
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimit limits requests per authenticated user, or per client IP before
// authentication has run
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.RateLimit.Enable {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := UserID(c); ok {
			key = "user:" + userID.String()
		}

		if !m.limiters.allow(key, m.now()) {
			m.logger.Debug("Rate limit exceeded", zap.String("client", key))
			c.Header("Retry-After", strconv.Itoa(m.limiters.retryAfterSeconds()))
			abortWithError(c, apperrors.NewAppError(apperrors.CodeTooManyRequests, "Rate limit exceeded", ""))
			return
		}

		c.Next()
	}
}
