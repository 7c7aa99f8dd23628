package service

import (
	"fmt"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

// ReviewStatuses are the outcomes a moderator can give a report
var ReviewStatuses = []string{"reviewed", "dismissed", "actioned"}

// ReportService backs the admin moderation commands
type ReportService struct {
	prompt *prompter.Prompter
}

func NewReportService(p *prompter.Prompter) *ReportService {
	return &ReportService{prompt: p}
}

// List browses the moderation queue
func (s *ReportService) List(status, targetType string, opts BrowseOptions) error {
	reports, err := api.ListReports(status, targetType)
	if err != nil {
		if api.IsForbidden(err) {
			return fmt.Errorf("only admins can list reports")
		}
		return fmt.Errorf("failed to list reports: %w", err)
	}
	return Browse(s.prompt, opts, "Reports", reports, reportLines)
}

// Review records the outcome of a report after confirmation
func (s *ReportService) Review(id, status string, skipConfirm bool) error {
	if !isReviewStatus(status) {
		return fmt.Errorf("status must be one of %v", ReviewStatuses)
	}

	if !skipConfirm {
		ok, err := s.prompt.Confirm(fmt.Sprintf("Mark report %s as %s?", id, status))
		if err != nil {
			return err
		}
		if !ok {
			output.PrintWarning("Review cancelled")
			return nil
		}
	}

	report, err := api.ReviewReport(id, status)
	if err != nil {
		return fmt.Errorf("failed to review report: %w", err)
	}
	output.PrintSuccess("Report %s marked %s", report.ID, report.Status)
	return nil
}

func isReviewStatus(status string) bool {
	for _, s := range ReviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}
