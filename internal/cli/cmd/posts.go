package cmd

import (
	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var postQuery api.PostQuery

var postsCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"post"},
	Short:   "Read posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService(prompter.New()).List(postQuery, browseOptions(cmd))
	},
}

func init() {
	f := postsListCmd.Flags()
	f.StringVar(&postQuery.AuthorID, "author", "", "Only posts by this user ID")
	f.StringVar(&postQuery.GroupID, "group", "", "Only posts in this group")
	f.StringVar(&postQuery.EventID, "event", "", "Only posts about this event")
	f.StringVar(&postQuery.Sort, "sort", "", "newest or popular")
	addDisclosureFlags(postsListCmd)

	postsCmd.AddCommand(postsListCmd)
}
