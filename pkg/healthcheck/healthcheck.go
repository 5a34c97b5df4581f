// Package healthcheck reports whether the API and the stores behind it can
// serve traffic. Dependencies are either required (the database) or optional
// (the Redis cache, the nutrition estimator): an optional dependency that
// fails degrades the report but never takes the instance out of rotation.
package healthcheck

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Status is the state of one dependency or of the whole service
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Result is the outcome of checking one dependency
type Result struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Required  bool                   `json:"required"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CheckedAt time.Time              `json:"checked_at"`
	Latency   time.Duration          `json:"latency_ms"`
}

// Report aggregates every registered dependency
type Report struct {
	Status    Status        `json:"status"`
	Ready     bool          `json:"ready"`
	Version   string        `json:"version"`
	CheckedAt time.Time     `json:"checked_at"`
	Latency   time.Duration `json:"latency_ms"`
	Results   []Result      `json:"checks"`
}

// Failing lists the required dependencies that are unhealthy
func (r Report) Failing() []string {
	var names []string
	for _, res := range r.Results {
		if res.Required && res.Status == StatusUnhealthy {
			names = append(names, res.Name)
		}
	}
	return names
}

// Checker inspects a single dependency
type Checker interface {
	Check(ctx context.Context) Result
}

type dependency struct {
	name     string
	checker  Checker
	required bool
}

// Registry runs the registered checkers and caches the last report
type Registry struct {
	version string
	logger  *zap.Logger
	timeout time.Duration

	mu    sync.RWMutex
	deps  []dependency
	ttl   time.Duration
	last  *Report
	state Status
}

// Option configures a Registry
type Option func(*Registry)

// WithTimeout bounds each individual check
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// WithCacheTTL sets how long a report is reused
func WithCacheTTL(d time.Duration) Option {
	return func(r *Registry) { r.ttl = d }
}

// New creates an empty registry
func New(version string, logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		version: version,
		logger:  logger.Named("health"),
		timeout: 3 * time.Second,
		ttl:     5 * time.Second,
		state:   StatusHealthy,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Require registers a dependency the service cannot run without
func (r *Registry) Require(name string, checker Checker) {
	r.add(dependency{name: name, checker: checker, required: true})
}

// Observe registers a dependency whose failure only degrades the service
func (r *Registry) Observe(name string, checker Checker) {
	r.add(dependency{name: name, checker: checker})
}

func (r *Registry) add(dep dependency) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.deps {
		if d.name == dep.name {
			r.deps[i] = dep
			r.last = nil
			return
		}
	}
	r.deps = append(r.deps, dep)
	r.last = nil
}

// SetCacheTTL changes how long a report is reused
func (r *Registry) SetCacheTTL(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ttl = ttl
}

// Run checks every dependency concurrently. Results keep registration order.
func (r *Registry) Run(ctx context.Context) Report {
	r.mu.RLock()
	if r.last != nil && time.Since(r.last.CheckedAt) < r.ttl {
		cached := *r.last
		r.mu.RUnlock()
		return cached
	}
	deps := make([]dependency, len(r.deps))
	copy(deps, r.deps)
	r.mu.RUnlock()

	start := time.Now()
	results := make([]Result, len(deps))

	var wg sync.WaitGroup
	for i, dep := range deps {
		wg.Add(1)
		go func(i int, dep dependency) {
			defer wg.Done()
			results[i] = r.runOne(ctx, dep)
		}(i, dep)
	}
	wg.Wait()

	report := Report{
		Status:    StatusHealthy,
		Ready:     true,
		Version:   r.version,
		CheckedAt: start,
		Results:   results,
	}
	for _, res := range results {
		report.Status = worst(report.Status, effective(res))
		if res.Required && res.Status == StatusUnhealthy {
			report.Ready = false
		}
	}
	report.Latency = time.Since(start)

	r.mu.Lock()
	r.last = &report
	previous := r.state
	r.state = report.Status
	r.mu.Unlock()

	if previous != report.Status {
		r.logger.Warn("Service health changed",
			zap.String("from", string(previous)),
			zap.String("to", string(report.Status)),
			zap.Strings("failing", report.Failing()),
		)
	}

	return report
}

func (r *Registry) runOne(ctx context.Context, dep dependency) (res Result) {
	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = Result{Status: StatusUnhealthy, Message: fmt.Sprintf("check panicked: %v", p), CheckedAt: start}
		}
		res.Name = dep.name
		res.Required = dep.required
		if res.CheckedAt.IsZero() {
			res.CheckedAt = start
		}
		if res.Latency == 0 {
			res.Latency = time.Since(start)
		}
		if res.Status == "" {
			res.Status = StatusUnhealthy
		}
	}()

	return dep.checker.Check(checkCtx)
}

// effective maps an optional dependency's failure to degraded
func effective(res Result) Status {
	if !res.Required && res.Status == StatusUnhealthy {
		return StatusDegraded
	}
	return res.Status
}

func worst(a, b Status) Status {
	rank := map[Status]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// Handler serves the full report. Only an unhealthy service answers 503.
func (r *Registry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report := r.Run(c.Request.Context())

		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	}
}

// LivenessHandler answers as long as the process can serve HTTP
func (r *Registry) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"timestamp": time.Now(),
		})
	}
}

// ReadinessHandler answers 503 while a required dependency is unhealthy
func (r *Registry) ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report := r.Run(c.Request.Context())

		if !report.Ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"failing": report.Failing(),
				"checks":  report.Results,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"degraded":  report.Status == StatusDegraded,
			"timestamp": report.CheckedAt,
		})
	}
}

// SQLChecker pings a database/sql pool
type SQLChecker struct {
	db *sql.DB
	// saturation is the in-use share of the pool above which it reports degraded
	saturation float64
}

// NewSQLChecker creates a checker for db
func NewSQLChecker(db *sql.DB) *SQLChecker {
	return &SQLChecker{db: db, saturation: 0.9}
}

// Check pings the database and reports pool usage
func (s *SQLChecker) Check(ctx context.Context) Result {
	if err := s.db.PingContext(ctx); err != nil {
		return Result{Status: StatusUnhealthy, Message: err.Error()}
	}

	stats := s.db.Stats()
	res := Result{
		Status: StatusHealthy,
		Details: map[string]interface{}{
			"open_conns": stats.OpenConnections,
			"in_use":     stats.InUse,
			"idle":       stats.Idle,
			"max_open":   stats.MaxOpenConnections,
			"wait_count": stats.WaitCount,
		},
	}

	// MaxOpenConnections is 0 when unlimited
	if stats.MaxOpenConnections > 1 &&
		float64(stats.InUse)/float64(stats.MaxOpenConnections) > s.saturation {
		res.Status = StatusDegraded
		res.Message = "connection pool nearly exhausted"
	}
	return res
}

// Pinger is the part of a Redis client the checker uses
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisChecker pings the cache
type RedisChecker struct {
	client Pinger
}

// NewRedisChecker creates a checker for client
func NewRedisChecker(client Pinger) *RedisChecker {
	return &RedisChecker{client: client}
}

// Check sends PING and expects PONG
func (r *RedisChecker) Check(ctx context.Context) Result {
	pong, err := r.client.Ping(ctx).Result()
	if err != nil {
		return Result{Status: StatusUnhealthy, Message: err.Error()}
	}
	if pong != "PONG" {
		return Result{Status: StatusUnhealthy, Message: fmt.Sprintf("unexpected ping reply %q", pong)}
	}
	return Result{Status: StatusHealthy}
}

// CheckFunc adapts a function to Checker
type CheckFunc func(ctx context.Context) (Status, string, map[string]interface{})

// Check calls f
func (f CheckFunc) Check(ctx context.Context) Result {
	status, message, details := f(ctx)
	return Result{Status: status, Message: message, Details: details}
}

// MarshalJSON reports latency in milliseconds
func (r Result) MarshalJSON() ([]byte, error) {
	type Alias Result
	return json.Marshal(&struct {
		Latency float64 `json:"latency_ms"`
		*Alias
	}{
		Latency: float64(r.Latency.Microseconds()) / 1000,
		Alias:   (*Alias)(&r),
	})
}

// MarshalJSON reports latency in milliseconds
func (r Report) MarshalJSON() ([]byte, error) {
	type Alias Report
	return json.Marshal(&struct {
		Latency float64 `json:"latency_ms"`
		*Alias
	}{
		Latency: float64(r.Latency.Microseconds()) / 1000,
		Alias:   (*Alias)(&r),
	})
}
