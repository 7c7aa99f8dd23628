package cmd

import (
	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var (
	usersQuery    string
	usersInterest string
	usersSort     string
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Find other travellers",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List travellers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewUserService(prompter.New()).List(usersQuery, usersInterest, usersSort, browseOptions(cmd))
	},
}

func init() {
	usersListCmd.Flags().StringVarP(&usersQuery, "query", "q", "", "Search username, name and location")
	usersListCmd.Flags().StringVar(&usersInterest, "interest", "", "Only travellers with this interest")
	usersListCmd.Flags().StringVar(&usersSort, "sort", "", "newest or name")
	addDisclosureFlags(usersListCmd)

	usersCmd.AddCommand(usersListCmd)
}
