package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account
const DefaultPassword = "password123"

var (
	categories = []string{"outdoors", "food", "culture", "nightlife", "volunteering", "language exchange", "photography"}
	tags       = []string{"hiking", "beach", "surf", "street-food", "museums", "budget", "backpacking", "roadtrip", "camping", "coffee", "wine", "diving"}
)

// Indexer receives seeded events and groups for search
type Indexer interface {
	IndexEvent(ctx context.Context, event *models.Event) error
	IndexGroup(ctx context.Context, group *models.Group) error
}

// Counts sizes a seeding run
type Counts struct {
	Users    int
	Groups   int
	Events   int
	Posts    int
	Comments int
}

// DevCounts is the size of the development data set
func DevCounts() Counts {
	return Counts{Users: 60, Groups: 15, Events: 40, Posts: 300, Comments: 600}
}

// Seeder handles database seeding operations
type Seeder struct {
	db      *gorm.DB
	repos   *repository.Repositories
	indexer Indexer

	groupMembers   map[string][]string
	eventAttendees map[string][]string
	topComments    map[string][]string
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:             db,
		repos:          repository.New(db),
		groupMembers:   map[string][]string{},
		eventAttendees: map[string][]string{},
		topComments:    map[string][]string{},
	}
}

// SetIndexer makes the seeder index events and groups as it creates them
func (s *Seeder) SetIndexer(indexer Indexer) {
	s.indexer = indexer
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev(ctx context.Context) error {
	return s.Seed(ctx, DevCounts())
}

// Seed creates users, groups, events, posts and comments
func (s *Seeder) Seed(ctx context.Context, counts Counts) error {
	logger.Log.Info("Creating users...", zap.Int("count", counts.Users))
	users, err := s.seedUsers(ctx, counts.Users)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	logger.Log.Info("Creating groups...", zap.Int("count", counts.Groups))
	groups, err := s.seedGroups(ctx, users, counts.Groups)
	if err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	logger.Log.Info("Creating events...", zap.Int("count", counts.Events))
	events, err := s.seedEvents(ctx, users, counts.Events)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	logger.Log.Info("Creating posts...", zap.Int("count", counts.Posts))
	posts, err := s.seedPosts(ctx, users, groups, events, counts.Posts)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	logger.Log.Info("Creating comments...", zap.Int("count", counts.Comments))
	if err := s.seedComments(ctx, users, posts, counts.Comments); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	return nil
}

// Clean removes every row from every table, children first
func (s *Seeder) Clean(ctx context.Context) error {
	tables := []string{"reports", "comments", "post_likes", "posts", "group_members", `"groups"`, "event_attendees", "events", "users"}
	for _, table := range tables {
		if err := s.db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, count int) ([]*models.User, error) {
	// One hash for every account keeps large runs fast
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := &models.User{
			Email:        username + "@example.com",
			Username:     username,
			DisplayName:  gofakeit.Name(),
			Bio:          gofakeit.HipsterSentence(),
			Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			AvatarURL:    fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", username),
			Interests:    pickTags(1, 4),
			PasswordHash: string(hashed),
			IsAdmin:      i == 0,
		}
		if i == 0 {
			user.Username = "admin"
			user.Email = "admin@example.com"
		}
		if err := s.repos.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedGroups(ctx context.Context, users []*models.User, count int) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		group := &models.Group{
			OwnerID:     owner.ID,
			Name:        fmt.Sprintf("%s %s travellers", gofakeit.City(), pick(categories)),
			Description: gofakeit.HipsterSentence(),
			Category:    pick(categories),
			Tags:        pickTags(1, 3),
			IsPrivate:   rand.Float32() < 0.15,
		}
		if err := s.repos.Groups.Create(ctx, group); err != nil {
			return nil, fmt.Errorf("failed to create group: %w", err)
		}
		s.groupMembers[group.ID] = []string{owner.ID}

		if !group.IsPrivate {
			for _, u := range sample(users, rand.Intn(len(users)/2+1)) {
				err := s.repos.Groups.Join(ctx, group.ID, u.ID)
				if errors.Is(err, repository.ErrAlreadyMember) {
					continue
				}
				if err != nil {
					return nil, fmt.Errorf("failed to join group: %w", err)
				}
				s.groupMembers[group.ID] = append(s.groupMembers[group.ID], u.ID)
			}
		}

		s.index(func() error { return s.indexer.IndexGroup(ctx, group) })
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) seedEvents(ctx context.Context, users []*models.User, count int) ([]*models.Event, error) {
	now := time.Now()
	events := make([]*models.Event, 0, count)
	for i := 0; i < count; i++ {
		organizer := users[rand.Intn(len(users))]
		startsAt := gofakeit.DateRange(now.AddDate(0, 0, -30), now.AddDate(0, 0, 60))
		endsAt := startsAt.Add(time.Duration(rand.Intn(6)+1) * time.Hour)
		capacity := 0
		if rand.Float32() < 0.5 {
			capacity = rand.Intn(40) + 5
		}

		event := &models.Event{
			OrganizerID: organizer.ID,
			Title:       fmt.Sprintf("%s meetup in %s", gofakeit.Word(), gofakeit.City()),
			Description: gofakeit.HipsterSentence(),
			Location:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			Category:    pick(categories),
			Tags:        pickTags(1, 3),
			StartsAt:    startsAt,
			EndsAt:      &endsAt,
			Capacity:    capacity,
		}
		if err := s.repos.Events.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}

		attendees := append([]*models.User{organizer}, sample(users, rand.Intn(len(users)/2+1))...)
		for _, u := range attendees {
			err := s.repos.Events.Join(ctx, event.ID, u.ID)
			if errors.Is(err, repository.ErrAlreadyMember) || errors.Is(err, repository.ErrEventFull) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to join event: %w", err)
			}
			s.eventAttendees[event.ID] = append(s.eventAttendees[event.ID], u.ID)
		}

		s.index(func() error { return s.indexer.IndexEvent(ctx, event) })
		events = append(events, event)
	}
	return events, nil
}

func (s *Seeder) seedPosts(ctx context.Context, users []*models.User, groups []*models.Group, events []*models.Event, count int) ([]*models.Post, error) {
	now := time.Now()
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post := &models.Post{
			AuthorID:  users[rand.Intn(len(users))].ID,
			Content:   gofakeit.HipsterSentence(),
			CreatedAt: gofakeit.DateRange(now.AddDate(0, 0, -60), now),
		}

		switch rand.Intn(3) {
		case 0:
			if len(groups) > 0 {
				g := groups[rand.Intn(len(groups))]
				post.GroupID = &g.ID
				post.AuthorID = pick(s.groupMembers[g.ID])
			}
		case 1:
			if len(events) > 0 {
				e := events[rand.Intn(len(events))]
				if attendees := s.eventAttendees[e.ID]; len(attendees) > 0 {
					post.EventID = &e.ID
					post.AuthorID = pick(attendees)
				}
			}
		}

		if err := s.repos.Posts.Create(ctx, post); err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		for _, u := range sample(users, rand.Intn(6)) {
			if err := s.repos.Posts.Like(ctx, post.ID, u.ID); err != nil && !errors.Is(err, repository.ErrAlreadyLiked) {
				return nil, fmt.Errorf("failed to like post: %w", err)
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedComments(ctx context.Context, users []*models.User, posts []*models.Post, count int) error {
	if len(posts) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		post := posts[rand.Intn(len(posts))]
		comment := &models.Comment{
			PostID:   post.ID,
			AuthorID: users[rand.Intn(len(users))].ID,
			Content:  gofakeit.HipsterSentence(),
		}

		parents := s.topComments[post.ID]
		if len(parents) > 0 && rand.Float32() < 0.4 {
			parentID := pick(parents)
			comment.ParentID = &parentID
		}

		if err := s.repos.Posts.AddComment(ctx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		if comment.ParentID == nil {
			s.topComments[post.ID] = append(s.topComments[post.ID], comment.ID)
		}
	}
	return nil
}

func (s *Seeder) index(fn func() error) {
	if s.indexer == nil {
		return
	}
	if err := fn(); err != nil {
		logger.Log.Warn("Failed to index seeded document", zap.Error(err))
	}
}

func pick[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

func pickTags(minCount, maxCount int) models.StringArray {
	n := minCount + rand.Intn(maxCount-minCount+1)
	out := make(models.StringArray, 0, n)
	for _, i := range rand.Perm(len(tags))[:n] {
		out = append(out, tags[i])
	}
	return out
}

func sample(users []*models.User, n int) []*models.User {
	n = min(n, len(users))
	out := make([]*models.User, 0, n)
	for _, i := range rand.Perm(len(users))[:n] {
		out = append(out, users[i])
	}
	return out
}
