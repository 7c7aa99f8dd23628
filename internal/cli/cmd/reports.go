package cmd

import (
	"strings"

	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var (
	reportsStatus     string
	reportsTargetType string
	reviewYes         bool
)

var reportsCmd = &cobra.Command{
	Use:     "reports",
	Aliases: []string{"report"},
	Short:   "Moderate reports (admin only)",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewReportService(prompter.New()).List(reportsStatus, reportsTargetType, browseOptions(cmd))
	},
}

var reportsReviewCmd = &cobra.Command{
	Use:   "review <report-id> <" + strings.Join(service.ReviewStatuses, "|") + ">",
	Short: "Record the outcome of a report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewReportService(prompter.New()).Review(args[0], args[1], reviewYes)
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsStatus, "status", "pending", "pending, reviewed, dismissed, actioned or all")
	reportsListCmd.Flags().StringVar(&reportsTargetType, "type", "", "post, comment, user, event or group")
	addDisclosureFlags(reportsListCmd)

	reportsReviewCmd.Flags().BoolVarP(&reviewYes, "yes", "y", false, "Skip the confirmation prompt")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsReviewCmd)
}
