package api

import (
	"net/http"

	"github.com/o6b7/travelbond/internal/cli/logger"
)

// ListReports fetches the moderation queue (admin only). status "all" lists every report.
func ListReports(status, targetType string) ([]Report, error) {
	logger.Debug("Fetching reports", "status", status, "target_type", targetType)

	return fetchAll[Report]("/api/v1/reports", "reports", map[string]string{
		"status":      status,
		"target_type": targetType,
	})
}

// ReviewReport sets a report's outcome (admin only)
func ReviewReport(id, status string) (*Report, error) {
	var resp struct {
		Report *Report `json:"report"`
	}
	body := map[string]string{"status": status}
	if err := send(http.MethodPut, "/api/v1/reports/"+id, body, &resp); err != nil {
		return nil, err
	}
	return resp.Report, nil
}
