package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group member roles
const (
	GroupRoleOwner  = "owner"
	GroupRoleMember = "member"
)

// Group is a travel community users can join
type Group struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID     string      `gorm:"not null;index" json:"owner_id"`
	Owner       *User       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Category    string      `gorm:"index" json:"category"`
	Tags        StringArray `json:"tags"`
	IsPrivate   bool        `gorm:"default:false" json:"is_private"`
	MemberCount int         `gorm:"default:0" json:"member_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// GroupMember links a user to a group
type GroupMember struct {
	GroupID   string    `gorm:"primaryKey;type:varchar(36)" json:"group_id"`
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
