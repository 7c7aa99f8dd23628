package metrics

import "time"

// RecordDatabaseQuery records the latency and outcome of one repository call
func RecordDatabaseQuery(queryType, table string, start time.Time, err error) {
	m := Get()
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseQueryDuration.WithLabelValues(queryType, table).Observe(time.Since(start).Seconds())
	m.DatabaseQueriesTotal.WithLabelValues(queryType, table, status).Inc()
}

// RecordRedisOperation records a Redis round-trip
func RecordRedisOperation(operation string, start time.Time, err error) {
	m := Get()
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RedisOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.RedisOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordSearch counts a search by index and by the backend that served it
func RecordSearch(index, backend string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	Get().SearchQueriesTotal.WithLabelValues(index, backend, status).Inc()
}

// RecordDisclosure records how many items a list response showed
func RecordDisclosure(list string, shown, reveals int) {
	m := Get()
	m.DisclosureWindowSize.WithLabelValues(list).Observe(float64(shown))
	if reveals > 0 {
		m.DisclosureRevealsTotal.WithLabelValues(list).Add(float64(reveals))
	}
}

// RecordError counts an error by type and endpoint
func RecordError(errorType, endpoint string) {
	Get().ErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}
