package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLike(t *testing.T) {
	before := testutil.ToFloat64(LikesToggled.WithLabelValues("post", "liked"))
	ObserveLike("post", true)
	assert.Equal(t, before+1, testutil.ToFloat64(LikesToggled.WithLabelValues("post", "liked")))
}

func TestHandlerExposesNamespace(t *testing.T) {
	ObserveResultQuery("passed")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "interviewhub_result_queries_total"))
}
