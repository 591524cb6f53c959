package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestChatCounters(t *testing.T) {
	before := testutil.ToFloat64(chatMessagesTotal.WithLabelValues("operator"))
	IncChatMessage("operator")
	assert.Equal(t, before+1, testutil.ToFloat64(chatMessagesTotal.WithLabelValues("operator")))

	purged := testutil.ToFloat64(chatsPurgedTotal)
	AddChatsPurged(3)
	AddChatsPurged(0)
	assert.Equal(t, purged+3, testutil.ToFloat64(chatsPurgedTotal))
}

func TestObserveHTTPRequest(t *testing.T) {
	ObserveHTTPRequest("GET", "/api/health", 0, 0.01)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/health", "200")))
}
