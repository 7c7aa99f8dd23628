package api

import "github.com/o6b7/travelbond/internal/cli/logger"

// PostQuery narrows a post listing
type PostQuery struct {
	AuthorID string
	GroupID  string
	EventID  string
	Sort     string
}

// ListPosts fetches every post matching q
func ListPosts(q PostQuery) ([]Post, error) {
	logger.Debug("Fetching posts", "author", q.AuthorID, "group", q.GroupID, "event", q.EventID)

	return fetchAll[Post]("/api/v1/posts", "posts", map[string]string{
		"author": q.AuthorID,
		"group":  q.GroupID,
		"event":  q.EventID,
		"sort":   q.Sort,
	})
}
