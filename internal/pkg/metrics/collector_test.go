package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordToggle(t *testing.T) {
	before := testutil.ToFloat64(socialTogglesTotal.WithLabelValues("reaction", "added"))
	RecordToggle("reaction", "added")
	RecordToggle("reaction", "added")
	assert.Equal(t, before+2, testutil.ToFloat64(socialTogglesTotal.WithLabelValues("reaction", "added")))
}

func TestRecordEvent(t *testing.T) {
	RecordEvent("notify", "follow", nil)
	RecordEvent("notify", "follow", errors.New("boom"))
	assert.Equal(t, float64(1), testutil.ToFloat64(eventsConsumedTotal.WithLabelValues("notify", "follow", "error")))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "200")))
}
