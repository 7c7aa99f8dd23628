package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a meetup or trip that users can attend
type Event struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrganizerID string      `gorm:"not null;index" json:"organizer_id"`
	Organizer   *User       `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Location    string      `json:"location"`
	Category    string      `gorm:"index" json:"category"`
	Tags        StringArray `json:"tags"`
	StartsAt    time.Time   `gorm:"index" json:"starts_at"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	// Capacity 0 means unlimited
	Capacity      int `gorm:"default:0" json:"capacity"`
	AttendeeCount int `gorm:"default:0" json:"attendee_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// IsFull reports whether the event has reached its capacity
func (e *Event) IsFull() bool {
	return e.Capacity > 0 && e.AttendeeCount >= e.Capacity
}

// EventAttendee links a user to an event they joined
type EventAttendee struct {
	EventID   string    `gorm:"primaryKey;type:varchar(36)" json:"event_id"`
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
