package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHTTPMiddleware_LabelsByRoute(t *testing.T) {
	m := NewMetricsCollector(zap.NewNop())

	r := gin.New()
	r.Use(m.HTTPMiddleware())
	r.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/recipes/1", "/recipes/2", "/ok", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/recipes/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ok", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.errorRateTotal.WithLabelValues("http", "client_error")))
}

func TestBusinessMetrics(t *testing.T) {
	m := NewMetricsCollector(zap.NewNop())

	m.DomainEvent("recipe.created")
	m.DomainEvent("recipe.created")
	m.ShoppingItemsGenerated(4)
	m.ShoppingItemsGenerated(3)
	m.AIRequest("gemini", "gemini-1.5-flash", "success", 300*time.Millisecond)
	m.DBQuery("select", time.Millisecond, nil)
	m.DBQuery("insert", time.Millisecond, errors.New("constraint"))
	m.CacheOperation("get", "memory", "hit")
	m.RecordError("events", "recipe.created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.domainEventsTotal.WithLabelValues("recipe.created")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.shoppingItemsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequestsTotal.WithLabelValues("gemini", "gemini-1.5-flash", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbErrorsTotal.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbErrorsTotal.WithLabelValues("insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheOperations.WithLabelValues("get", "memory", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorRateTotal.WithLabelValues("events", "recipe.created")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := NewMetricsCollector(zap.NewNop())
	m.DomainEvent("goal.reached")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pantryplan_domain_events_total{event="goal.reached"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCollectorsUseSeparateRegistries(t *testing.T) {
	a := NewMetricsCollector(zap.NewNop())
	b := NewMetricsCollector(zap.NewNop())

	a.DomainEvent("recipe.created")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.domainEventsTotal.WithLabelValues("recipe.created")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
