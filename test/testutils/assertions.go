// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/pantryplan/api/pkg/errors"
)

// HTTPAssertions provides assertions over recorded API responses
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// Data asserts a successful envelope with the expected status and decodes
// its data field into target
func (ha *HTTPAssertions) Data(w *httptest.ResponseRecorder, expectedCode int, target interface{}) {
	ha.t.Helper()
	require.Equal(ha.t, expectedCode, w.Code, w.Body.String())
	assert.True(ha.t, strings.Contains(w.Header().Get("Content-Type"), "application/json"),
		"Response should have JSON content type, got: %s", w.Header().Get("Content-Type"))

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(ha.t, json.Unmarshal(w.Body.Bytes(), &envelope), "Response should be valid JSON")
	require.True(ha.t, envelope.Success, "Response should be successful")
	if target != nil {
		require.NoError(ha.t, json.Unmarshal(envelope.Data, target))
	}
}

// Error asserts an error body with the expected status and code and returns
// its details
func (ha *HTTPAssertions) Error(w *httptest.ResponseRecorder, expectedCode int, code apperrors.ErrorCode) apperrors.ErrorDetails {
	ha.t.Helper()
	require.Equal(ha.t, expectedCode, w.Code, w.Body.String())

	var body apperrors.ErrorResponse
	require.NoError(ha.t, json.Unmarshal(w.Body.Bytes(), &body), "Response should be valid JSON")
	assert.Equal(ha.t, code, body.Error.Code)
	return body.Error
}

// SecurityHeaders asserts that the API security headers are present
func (ha *HTTPAssertions) SecurityHeaders(w *httptest.ResponseRecorder) {
	ha.t.Helper()
	for _, header := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		assert.NotEmpty(ha.t, w.Header().Get(header), "Security header %s should be present", header)
	}
}

// DatabaseAssertions provides database-specific assertions
type DatabaseAssertions struct {
	t  *testing.T
	db *gorm.DB
}

// NewDatabaseAssertions creates a new database assertions helper
func NewDatabaseAssertions(t *testing.T, db *gorm.DB) *DatabaseAssertions {
	return &DatabaseAssertions{t: t, db: db}
}

// RecordCount asserts the number of rows in a table
func (da *DatabaseAssertions) RecordCount(table string, expectedCount int64, msgAndArgs ...interface{}) {
	da.t.Helper()
	var count int64
	require.NoError(da.t, da.db.Table(table).Count(&count).Error, "Failed to count records")
	assert.Equal(da.t, expectedCount, count, msgAndArgs...)
}

// TableEmpty asserts that a table is empty
func (da *DatabaseAssertions) TableEmpty(table string, msgAndArgs ...interface{}) {
	da.RecordCount(table, 0, msgAndArgs...)
}
