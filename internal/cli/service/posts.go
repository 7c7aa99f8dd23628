package service

import (
	"fmt"

	"github.com/o6b7/travelbond/internal/cli/api"
	"github.com/o6b7/travelbond/internal/cli/prompter"
)

// PostService backs the posts commands
type PostService struct {
	prompt *prompter.Prompter
}

func NewPostService(p *prompter.Prompter) *PostService {
	return &PostService{prompt: p}
}

// List fetches matching posts and browses them
func (s *PostService) List(q api.PostQuery, opts BrowseOptions) error {
	posts, err := api.ListPosts(q)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	return Browse(s.prompt, opts, "Posts", posts, postLines)
}
