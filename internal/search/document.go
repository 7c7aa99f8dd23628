package search

import (
	"time"

	"github.com/o6b7/travelbond/internal/models"
)

// EventDocument is the indexed form of an event
type EventDocument struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	OrganizerID   string    `json:"organizer_id"`
	AttendeeCount int       `json:"attendee_count"`
	StartsAt      time.Time `json:"starts_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// GroupDocument is the indexed form of a group
type GroupDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	IsPrivate   bool      `json:"is_private"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventToDocument converts an event for indexing
func EventToDocument(e *models.Event) EventDocument {
	return EventDocument{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		Category:      e.Category,
		Tags:          tagsOrEmpty(e.Tags),
		OrganizerID:   e.OrganizerID,
		AttendeeCount: e.AttendeeCount,
		StartsAt:      e.StartsAt,
		CreatedAt:     e.CreatedAt,
	}
}

// GroupToDocument converts a group for indexing
func GroupToDocument(g *models.Group) GroupDocument {
	return GroupDocument{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		Tags:        tagsOrEmpty(g.Tags),
		IsPrivate:   g.IsPrivate,
		MemberCount: g.MemberCount,
		CreatedAt:   g.CreatedAt,
	}
}

func tagsOrEmpty(tags models.StringArray) []string {
	if tags == nil {
		return []string{}
	}
	return []string(tags)
}
