package service

import (
	"fmt"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

// UserService backs the users commands
type UserService struct {
	prompt *prompter.Prompter
}

func NewUserService(p *prompter.Prompter) *UserService {
	return &UserService{prompt: p}
}

// List fetches matching travellers and browses them
func (s *UserService) List(query, interest, sort string, opts BrowseOptions) error {
	users, err := api.ListUsers(query, interest, sort)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	return Browse(s.prompt, opts, "Travellers", users, userLines)
}
