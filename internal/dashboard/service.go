// Package dashboard assembles a user's home screen from the groups and
// events they belong to.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"go.uber.org/zap"
)

// Dashboard is everything the home screen lists
type Dashboard struct {
	Posts          []*models.Post  `json:"posts"`
	UpcomingEvents []*models.Event `json:"upcoming_events"`
	Groups         []*models.Group `json:"groups"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// Service builds dashboards
type Service struct {
	events repository.EventRepository
	groups repository.GroupRepository
	posts  repository.PostRepository
	now    func() time.Time
}

// NewService creates a dashboard service
func NewService(events repository.EventRepository, groups repository.GroupRepository, posts repository.PostRepository) *Service {
	return &Service{
		events: events,
		groups: groups,
		posts:  posts,
		now:    time.Now,
	}
}

// Build merges posts from the user's groups, the events they attend and their own
// posts, newest first, alongside the events they attend that have not started yet.
func (s *Service) Build(ctx context.Context, userID string, limit int) (*Dashboard, error) {
	start := time.Now()
	defer func() {
		metrics.Get().DashboardGenerationTime.Observe(time.Since(start).Seconds())
	}()

	groups, err := s.groups.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	events, err := s.events.ListForUser(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}

	now := s.now().UTC()
	eventIDs := make([]string, 0, len(events))
	upcoming := make([]*models.Event, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		if !e.StartsAt.Before(now) {
			upcoming = append(upcoming, e)
		}
	}

	posts, err := s.posts.ListForDashboard(ctx, userID, groupIDs, eventIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	logger.Log.Debug("Dashboard built",
		logger.WithUserID(userID),
		zap.Int("posts", len(posts)),
		zap.Int("upcoming_events", len(upcoming)),
		zap.Int("groups", len(groups)),
	)

	return &Dashboard{
		Posts:          dedupe(posts),
		UpcomingEvents: upcoming,
		Groups:         groups,
		GeneratedAt:    now,
	}, nil
}

// dedupe keeps the first occurrence of each post
func dedupe(posts []*models.Post) []*models.Post {
	seen := make(map[string]struct{}, len(posts))
	out := posts[:0]
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
