package cmd

import (
	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your upcoming events, latest posts and groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewDashboardService(prompter.New()).Show(browseOptions(cmd))
	},
}

func init() {
	addDisclosureFlags(dashboardCmd)
}
