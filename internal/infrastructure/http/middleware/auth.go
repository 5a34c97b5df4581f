package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/pantryplan/api/pkg/errors"
)

// ParseToken verifies an HS256 bearer token and returns the user ID in its subject
func ParseToken(tokenString string, secret []byte, issuer string) (uuid.UUID, error) {
	if len(secret) == 0 {
		return uuid.Nil, errors.New("token verification is not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject: %w", err)
	}
	return userID, nil
}

// Auth requires a valid bearer token and stores its user ID in the context
func (m *Middleware) Auth() gin.HandlerFunc {
	secret := []byte(m.config.Auth.JWTSecret)
	if len(secret) == 0 {
		m.logger.Warn("auth.jwt_secret is empty; every authenticated request will be rejected")
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, apperrors.NewUnauthorizedError("missing authorization header"))
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, apperrors.NewUnauthorizedError("invalid authorization format, use 'Bearer <token>'"))
			return
		}

		userID, err := ParseToken(strings.TrimSpace(token), secret, m.config.Auth.Issuer)
		if err != nil {
			m.logger.Debug("Token rejected",
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.Error(err),
			)
			abortWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
