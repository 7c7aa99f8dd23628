package service

import (
	"fmt"
	"strings"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

// GroupService backs the groups commands
type GroupService struct {
	prompt *prompter.Prompter
}

func NewGroupService(p *prompter.Prompter) *GroupService {
	return &GroupService{prompt: p}
}

// List fetches matching groups and browses them
func (s *GroupService) List(q api.GroupQuery, opts BrowseOptions) error {
	groups, err := api.ListGroups(q)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	return Browse(s.prompt, opts, "Groups", groups, groupLines)
}

// Show prints one group
func (s *GroupService) Show(id string) error {
	group, isMember, err := api.GetGroup(id)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}

	out := s.prompt.Out()
	if output.GetFormat() == output.FormatJSON {
		return output.JSON(out, map[string]interface{}{"group": group, "is_member": isMember})
	}

	output.Heading(out, "%s", group.Name)
	output.Field(out, "Category", group.Category)
	output.Field(out, "Tags", strings.Join(group.Tags, ", "))
	output.Field(out, "Owner", displayName(group.Owner))
	output.Field(out, "Members", fmt.Sprintf("%d", group.MemberCount))
	if group.IsPrivate {
		output.Field(out, "Visibility", "private")
	}
	if isMember {
		output.Field(out, "You", "member")
	}
	if group.Description != "" {
		fmt.Fprintf(out, "\n%s\n", group.Description)
	}
	return nil
}

func (s *GroupService) Join(id string) error {
	if err := api.JoinGroup(id); err != nil {
		if api.IsForbidden(err) {
			return fmt.Errorf("group %s is private and can't be joined directly", id)
		}
		return fmt.Errorf("failed to join group: %w", err)
	}
	output.PrintSuccess("Joined group %s", id)
	return nil
}

func (s *GroupService) Leave(id string) error {
	if err := api.LeaveGroup(id); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}
	output.PrintSuccess("Left group %s", id)
	return nil
}
