package service

import (
	"fmt"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

// DashboardService backs the dashboard command
type DashboardService struct {
	prompt *prompter.Prompter
}

func NewDashboardService(p *prompter.Prompter) *DashboardService {
	return &DashboardService{prompt: p}
}

// Show browses each dashboard section in turn, each with its own cursor
func (s *DashboardService) Show(opts BrowseOptions) error {
	dash, err := api.GetDashboard()
	if err != nil {
		if api.IsUnauthorized(err) {
			return errNotLoggedIn
		}
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	if output.GetFormat() == output.FormatJSON {
		posts, err := disclose(opts, dash.Posts.Items)
		if err != nil {
			return err
		}
		events, err := disclose(opts, dash.UpcomingEvents.Items)
		if err != nil {
			return err
		}
		groups, err := disclose(opts, dash.Groups.Items)
		if err != nil {
			return err
		}
		return output.JSON(s.prompt.Out(), map[string]interface{}{
			"posts":           posts,
			"upcoming_events": events,
			"groups":          groups,
			"generated_at":    dash.GeneratedAt,
		})
	}

	if err := Browse(s.prompt, opts, "Upcoming events", dash.UpcomingEvents.Items, eventLines); err != nil {
		return err
	}
	if err := Browse(s.prompt, opts, "Latest posts", dash.Posts.Items, postLines); err != nil {
		return err
	}
	return Browse(s.prompt, opts, "Your groups", dash.Groups.Items, groupLines)
}
