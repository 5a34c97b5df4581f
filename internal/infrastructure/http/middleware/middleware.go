// Package middleware provides the gin middleware chain of the API
package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/infrastructure/config"
	"github.com/pantryplan/api/internal/infrastructure/monitoring"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// Context keys
const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"

	requestIDHeader = "X-Request-ID"
)

// Middleware provides all middleware functions
type Middleware struct {
	config   *config.Config
	logger   *zap.Logger
	limiters *clientLimiters
	now      func() time.Time
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger) *Middleware {
	return &Middleware{
		config:   cfg,
		logger:   logger.Named("http"),
		limiters: newClientLimiters(cfg.RateLimit),
		now:      time.Now,
	}
}

// RequestID adds a unique request ID to the context
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

// Logger provides structured logging for requests
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if path == "/health/live" || path == "/health/ready" {
			return
		}

		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if userID, ok := UserID(c); ok {
			fields = append(fields, zap.String("user_id", userID.String()))
		}
		if traceID := monitoring.TraceIDFromContext(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		switch {
		case status >= 500:
			m.logger.Error("Server error", append(fields, zap.String("error", c.Errors.String()))...)
		case status >= 400:
			m.logger.Warn("Client error", append(fields, zap.String("error", c.Errors.String()))...)
		default:
			m.logger.Info("Request completed", fields...)
		}
	}
}

// Recovery recovers from panics and returns a 500 error envelope
func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("Panic recovered",
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Any("error", rec),
					zap.String("stack", string(debug.Stack())),
				)
				abortWithError(c, apperrors.NewInternalError(""))
			}
		}()

		c.Next()
	}
}

// CORS handles Cross-Origin Resource Sharing
func (m *Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Server.EnableCORS {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin != "" && m.isOriginAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Tracing names the active server span after the matched route and records
// handler errors on it
func (m *Middleware) Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		route := c.FullPath()
		if route != "" {
			span.SetName(fmt.Sprintf("%s %s", c.Request.Method, route))
			span.SetAttributes(attribute.String("http.route", route))
		}
		span.SetAttributes(attribute.String("request.id", c.GetString(RequestIDKey)))
		if userID, ok := UserID(c); ok {
			span.SetAttributes(attribute.String("enduser.id", userID.String()))
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			if apperrors.GetStatusCode(err) >= 500 {
				monitoring.RecordError(c.Request.Context(), err)
			} else {
				span.RecordError(err)
			}
		}
	}
}

// Security adds security headers
func (m *Middleware) Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")

		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// ErrorHandler renders the last error attached by a handler as the
// standard error envelope
func (m *Middleware) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperrors.AppError
		if !stderrors.As(err, &appErr) {
			appErr = apperrors.Wrap(err, "")
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.String("details", appErr.Details),
		}
		if appErr.StatusCode() >= 500 {
			m.logger.Error("Request error", append(fields, zap.Error(appErr.Cause))...)
		} else {
			m.logger.Debug("Request rejected", fields...)
		}

		c.JSON(appErr.StatusCode(), apperrors.ToErrorResponse(appErr, c.GetString(RequestIDKey)))
	}
}

// UserID returns the authenticated user's ID
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func (m *Middleware) isOriginAllowed(origin string) bool {
	if m.config.IsDevelopment() {
		return true
	}
	for _, allowed := range m.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode(), apperrors.ToErrorResponse(err, c.GetString(RequestIDKey)))
}
