package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a TravelBond account
type User struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email       string      `gorm:"uniqueIndex;not null" json:"email"`
	Username    string      `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName string      `gorm:"not null" json:"display_name"`
	Bio         string      `gorm:"type:text" json:"bio"`
	Location    string      `json:"location"` // City/Country
	AvatarURL   string      `json:"avatar_url"`
	Interests   StringArray `json:"interests"`

	PasswordHash string `gorm:"type:text" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	// Denormalized counters maintained by the repositories
	EventCount int `gorm:"default:0" json:"event_count"`
	GroupCount int `gorm:"default:0" json:"group_count"`
	PostCount  int `gorm:"default:0" json:"post_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID and normalizes identity fields
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
