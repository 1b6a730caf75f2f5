package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/integrations/:integration_id/friends", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/integrations/"+id+"/friends", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/integrations/:integration_id/friends", "200"))
	assert.Equal(t, 2.0, got)
}

func TestHandlerExposesBackendAndCacheSeries(t *testing.T) {
	m := New()
	m.ObserveBackendCall("friends.list", "ok", 20*time.Millisecond)
	m.RecordCacheLookup("hit")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	assert.True(t, strings.Contains(body, `backend_request_duration_seconds_count{operation="friends.list",outcome="ok"} 1`))
	assert.True(t, strings.Contains(body, `friend_cache_lookups_total{result="hit"} 1`))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveBackendCall("x", "ok", time.Second)
	m.RecordCacheLookup("miss")
	m.ObserveHTTPRequest("GET", "/", 200, time.Second)
}
