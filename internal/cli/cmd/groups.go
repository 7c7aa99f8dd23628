package cmd

import (
	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var groupQuery api.GroupQuery

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Aliases: []string{"group"},
	Short:   "Browse and join groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(prompter.New()).List(groupQuery, browseOptions(cmd))
	},
}

var groupsShowCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Show a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(prompter.New()).Show(args[0])
	},
}

var groupsJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join a public group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(prompter.New()).Join(args[0])
	},
}

var groupsLeaveCmd = &cobra.Command{
	Use:   "leave <group-id>",
	Short: "Leave a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewGroupService(prompter.New()).Leave(args[0])
	},
}

func init() {
	f := groupsListCmd.Flags()
	f.StringVarP(&groupQuery.Query, "query", "q", "", "Search name and description")
	f.StringVar(&groupQuery.Category, "category", "", "Only this category")
	f.StringVar(&groupQuery.Tag, "tag", "", "Only groups with this tag")
	f.StringVar(&groupQuery.Sort, "sort", "", "newest, popular or name")
	addDisclosureFlags(groupsListCmd)

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsShowCmd)
	groupsCmd.AddCommand(groupsJoinCmd)
	groupsCmd.AddCommand(groupsLeaveCmd)
}
