package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSweep(t *testing.T) {
	okBefore := testutil.ToFloat64(TrendingSweeps.WithLabelValues("test", "ok"))
	errBefore := testutil.ToFloat64(TrendingSweeps.WithLabelValues("test", "error"))

	ObserveSweep("test", time.Now(), 7, nil)
	ObserveSweep("test", time.Now(), 0, errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(TrendingSweeps.WithLabelValues("test", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(TrendingSweeps.WithLabelValues("test", "error")))
	assert.Equal(t, float64(7), testutil.ToFloat64(TrendingPostsSwept))
}

func TestHandlerExposesCollectors(t *testing.T) {
	EngagementConflicts.WithLabelValues("like").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chainblog_engagement_conflicts_total")
}
