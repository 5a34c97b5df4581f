// Package handlers provides the HTTP handlers of the REST API
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pantryplan/api/internal/domain/mealplan"
	"github.com/pantryplan/api/internal/infrastructure/http/middleware"
	apperrors "github.com/pantryplan/api/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

var registerOnce sync.Once

// RegisterValidation makes validation errors report JSON field names
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{Success: true, Data: data, Message: message})
}

// bindJSON decodes the body into req and attaches a validation error on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.ValidationError{
				Field:   fieldPath(fe),
				Value:   fe.Value(),
				Tag:     fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
		return apperrors.NewValidationErrors(fields)
	}
	return apperrors.NewBadRequestError("Invalid JSON payload").WithCause(err)
}

// fieldPath drops the request struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s long", field, fe.Param())
	case "uuid":
		return field + " must be a UUID"
	case "url":
		return field + " must be a URL"
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
	}
}

// currentUser returns the authenticated user or attaches 401
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(apperrors.NewUnauthorizedError(""))
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(apperrors.NewValidationError(name + " must be a UUID").WithCause(err))
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads a YYYY-MM-DD value; empty input yields the zero time
func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(mealplan.DateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("%s must be a date formatted as %s", field, mealplan.DateLayout)).WithCause(err)
	}
	return t, nil
}

func optionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := parseDate(field, *raw)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

// dateRange reads the from/to query parameters
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		_ = c.Error(err)
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		_ = c.Error(err)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		_ = c.Error(apperrors.NewValidationError(name + " must be a non-negative integer"))
		return nil, false
	}
	return &v, true
}

func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		_ = c.Error(apperrors.NewValidationError(name + " must be a non-negative number"))
		return nil, false
	}
	return &v, true
}

// queryList accepts both repeated parameters and comma-separated values
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func deleted(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
