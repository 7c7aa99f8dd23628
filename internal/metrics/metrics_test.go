package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitialize_IsSingleton(t *testing.T) {
	assert.Same(t, Initialize(), Get())
}

func TestRecordDatabaseQuery(t *testing.T) {
	m := Get()
	before := testutil.ToFloat64(m.DatabaseQueriesTotal.WithLabelValues("select", "metrics_test", "error"))

	RecordDatabaseQuery("select", "metrics_test", time.Now(), errors.New("boom"))

	after := testutil.ToFloat64(m.DatabaseQueriesTotal.WithLabelValues("select", "metrics_test", "error"))
	assert.Equal(t, before+1, after)
}

func TestRecordDisclosure(t *testing.T) {
	m := Get()
	before := testutil.ToFloat64(m.DisclosureRevealsTotal.WithLabelValues("metrics_test"))

	RecordDisclosure("metrics_test", 6, 1)
	RecordDisclosure("metrics_test", 3, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(m.DisclosureRevealsTotal.WithLabelValues("metrics_test")))
}

func TestRecordSearch(t *testing.T) {
	m := Get()
	RecordSearch("events", "database", nil)
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("events", "database", "success")), 1.0)
}
