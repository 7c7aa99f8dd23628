package service

import (
	"fmt"
	"strings"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

// EventService backs the events commands
type EventService struct {
	prompt *prompter.Prompter
}

func NewEventService(p *prompter.Prompter) *EventService {
	return &EventService{prompt: p}
}

// List fetches matching events and browses them
func (s *EventService) List(q api.EventQuery, opts BrowseOptions) error {
	events, err := api.ListEvents(q)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	return Browse(s.prompt, opts, "Events", events, eventLines)
}

// Attendees browses the people attending an event
func (s *EventService) Attendees(id string, opts BrowseOptions) error {
	users, err := api.ListEventAttendees(id)
	if err != nil {
		return fmt.Errorf("failed to list attendees: %w", err)
	}
	return Browse(s.prompt, opts, "Attendees", users, userLines)
}

// Show prints one event
func (s *EventService) Show(id string) error {
	event, attending, err := api.GetEvent(id)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	out := s.prompt.Out()
	if output.GetFormat() == output.FormatJSON {
		return output.JSON(out, map[string]interface{}{"event": event, "is_attending": attending})
	}

	output.Heading(out, "%s", event.Title)
	output.Field(out, "When", formatTime(event.StartsAt))
	if event.EndsAt != nil {
		output.Field(out, "Until", formatTime(*event.EndsAt))
	}
	output.Field(out, "Where", event.Location)
	output.Field(out, "Category", event.Category)
	output.Field(out, "Tags", strings.Join(event.Tags, ", "))
	output.Field(out, "Organizer", displayName(event.Organizer))
	if event.Capacity > 0 {
		output.Field(out, "Going", fmt.Sprintf("%d of %d", event.AttendeeCount, event.Capacity))
	} else {
		output.Field(out, "Going", fmt.Sprintf("%d", event.AttendeeCount))
	}
	if attending {
		output.Field(out, "You", "attending")
	}
	if event.Description != "" {
		fmt.Fprintf(out, "\n%s\n", event.Description)
	}
	return nil
}

func (s *EventService) Join(id string) error {
	if err := api.JoinEvent(id); err != nil {
		return fmt.Errorf("failed to join event: %w", err)
	}
	output.PrintSuccess("You're going to event %s", id)
	return nil
}

func (s *EventService) Leave(id string) error {
	if err := api.LeaveEvent(id); err != nil {
		return fmt.Errorf("failed to leave event: %w", err)
	}
	output.PrintSuccess("You left event %s", id)
	return nil
}
