package repository

import (
	"context"
	"strings"
	"time"

	"github.com/o6b7/travelbond/internal/models"
	"gorm.io/gorm"
)

// Event list orderings
const (
	EventSortSoonest = "soonest"
	EventSortNewest  = "newest"
	EventSortPopular = "popular"
)

// EventFilter narrows and orders an event listing
type EventFilter struct {
	Query        string
	Category     string
	Tag          string
	OrganizerID  string
	UpcomingOnly bool
	IDs          []string // restrict to these IDs (search results)
	Sort         string
	Limit        int
}

// EventRepository handles all database operations for events
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Get(ctx context.Context, eventID string) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, eventID string) error
	List(ctx context.Context, filter EventFilter) ([]*models.Event, error)

	Join(ctx context.Context, eventID, userID string) error
	Leave(ctx context.Context, eventID, userID string) error
	IsAttending(ctx context.Context, eventID, userID string) (bool, error)
	ListAttendees(ctx context.Context, eventID string) ([]*models.User, error)
	ListForUser(ctx context.Context, userID string, upcomingOnly bool) ([]*models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create stores a new event and counts it against its organizer
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.OrganizerID == "" || strings.TrimSpace(event.Title) == "" {
		return ErrInvalidInput
	}
	normalizeEventTimes(event)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", event.OrganizerID).
			UpdateColumn("event_count", gorm.Expr("event_count + 1")).Error
	})
}

// Get gets an event by ID with its organizer
func (r *eventRepository) Get(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Where("id = ?", eventID).
		First(&event).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}

// Update saves an edited event
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == "" {
		return ErrInvalidInput
	}
	normalizeEventTimes(event)

	result := r.db.WithContext(ctx).Model(event).
		Select("title", "description", "location", "category", "tags", "starts_at", "ends_at", "capacity", "updated_at").
		Updates(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft deletes an event
func (r *eventRepository) Delete(ctx context.Context, eventID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", eventID).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns events matching the filter
func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]*models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{}).Preload("Organizer")

	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?)",
			pattern, pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		query = whereTag(query, "tags", filter.Tag)
	}
	if filter.OrganizerID != "" {
		query = query.Where("organizer_id = ?", filter.OrganizerID)
	}
	if filter.UpcomingOnly {
		query = query.Where("starts_at >= ?", time.Now().UTC())
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	switch filter.Sort {
	case EventSortNewest:
		query = query.Order("created_at DESC")
	case EventSortPopular:
		query = query.Order("attendee_count DESC").Order("starts_at ASC")
	default:
		query = query.Order("starts_at ASC")
	}

	var events []*models.Event
	err := query.Order("id ASC").Limit(listLimit(filter.Limit)).Find(&events).Error
	return events, err
}

// Join adds the user to the event's attendees
func (r *eventRepository) Join(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			return notFound(err)
		}

		var existing int64
		if err := tx.Model(&models.EventAttendee{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}
		if event.IsFull() {
			return ErrEventFull
		}

		if err := tx.Create(&models.EventAttendee{EventID: eventID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Event{}).Where("id = ?", eventID).
			UpdateColumn("attendee_count", gorm.Expr("attendee_count + 1")).Error
	})
}

// Leave removes the user from the event's attendees
func (r *eventRepository) Leave(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventAttendee{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotMember
		}
		return tx.Model(&models.Event{}).Where("id = ? AND attendee_count > 0", eventID).
			UpdateColumn("attendee_count", gorm.Expr("attendee_count - 1")).Error
	})
}

// IsAttending reports whether the user joined the event
func (r *eventRepository) IsAttending(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventAttendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListAttendees returns attendees in the order they joined
func (r *eventRepository) ListAttendees(ctx context.Context, eventID string) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*").
		Joins("JOIN event_attendees ON event_attendees.user_id = users.id").
		Where("event_attendees.event_id = ?", eventID).
		Order("event_attendees.created_at ASC").
		Order("users.id ASC").
		Limit(MaxListSize).
		Find(&users).Error
	return users, err
}

// ListForUser returns the events a user attends, soonest first
func (r *eventRepository) ListForUser(ctx context.Context, userID string, upcomingOnly bool) ([]*models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{}).
		Select("events.*").
		Joins("JOIN event_attendees ON event_attendees.event_id = events.id").
		Where("event_attendees.user_id = ?", userID)
	if upcomingOnly {
		query = query.Where("events.starts_at >= ?", time.Now().UTC())
	}

	var events []*models.Event
	err := query.Order("events.starts_at ASC").Order("events.id ASC").Limit(MaxListSize).Find(&events).Error
	return events, err
}

func normalizeEventTimes(event *models.Event) {
	event.StartsAt = event.StartsAt.UTC()
	if event.EndsAt != nil {
		ends := event.EndsAt.UTC()
		event.EndsAt = &ends
	}
}

