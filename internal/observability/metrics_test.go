package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(completionsCounter)
	RecordCompletion()
	RecordCompletion()
	assert.Equal(t, before+2, testutil.ToFloat64(completionsCounter))

	fallback := coachRepliesCounter.WithLabelValues("sensory", "fallback")
	before = testutil.ToFloat64(fallback)
	RecordCoachReply("sensory", "fallback")
	assert.Equal(t, before+1, testutil.ToFloat64(fallback))

	miss := catalogCacheCounter.WithLabelValues("miss")
	before = testutil.ToFloat64(miss)
	RecordCatalogCache("miss")
	assert.Equal(t, before+1, testutil.ToFloat64(miss))

	failed := eventsCounter.WithLabelValues("error")
	before = testutil.ToFloat64(failed)
	RecordEventPublish(errors.New("broker down"))
	RecordEventPublish(nil)
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.CollectAndCount(httpDuration)
	ObserveHTTPRequest("GET", "/api/test-route", 200, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.CollectAndCount(httpDuration))
}
