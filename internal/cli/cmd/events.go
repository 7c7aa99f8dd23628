package cmd

import (
	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/cli/service"
	"github.com/spf13/cobra"
)

var eventQuery api.EventQuery

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"event"},
	Short:   "Browse and join events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewEventService(prompter.New()).List(eventQuery, browseOptions(cmd))
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewEventService(prompter.New()).Show(args[0])
	},
}

var eventsAttendeesCmd = &cobra.Command{
	Use:   "attendees <event-id>",
	Short: "List who is going to an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewEventService(prompter.New()).Attendees(args[0], browseOptions(cmd))
	},
}

var eventsJoinCmd = &cobra.Command{
	Use:   "join <event-id>",
	Short: "Attend an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewEventService(prompter.New()).Join(args[0])
	},
}

var eventsLeaveCmd = &cobra.Command{
	Use:   "leave <event-id>",
	Short: "Stop attending an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewEventService(prompter.New()).Leave(args[0])
	},
}

func init() {
	f := eventsListCmd.Flags()
	f.StringVarP(&eventQuery.Query, "query", "q", "", "Search title, description and location")
	f.StringVar(&eventQuery.Category, "category", "", "Only this category")
	f.StringVar(&eventQuery.Tag, "tag", "", "Only events with this tag")
	f.StringVar(&eventQuery.Organizer, "organizer", "", "Only events organized by this user ID")
	f.BoolVar(&eventQuery.Upcoming, "upcoming", false, "Hide events that already started")
	f.StringVar(&eventQuery.Sort, "sort", "", "soonest, newest or popular")
	addDisclosureFlags(eventsListCmd)
	addDisclosureFlags(eventsAttendeesCmd)

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsShowCmd)
	eventsCmd.AddCommand(eventsAttendeesCmd)
	eventsCmd.AddCommand(eventsJoinCmd)
	eventsCmd.AddCommand(eventsLeaveCmd)
}
