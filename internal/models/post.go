package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a status update, optionally posted inside a group or an event
type Post struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID     string  `gorm:"not null;index" json:"author_id"`
	Author       *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	GroupID      *string `gorm:"index;type:varchar(36)" json:"group_id,omitempty"`
	EventID      *string `gorm:"index;type:varchar(36)" json:"event_id,omitempty"`
	Content      string  `gorm:"type:text;not null" json:"content"`
	LikeCount    int     `gorm:"default:0" json:"like_count"`
	CommentCount int     `gorm:"default:0" json:"comment_count"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PostLike records that a user liked a post
type PostLike struct {
	PostID    string    `gorm:"primaryKey;type:varchar(36)" json:"post_id"`
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a comment on a post, or a reply when ParentID is set.
// Replies are ordered by Position, assigned at insert time under a lock on the post.
// CreatedAt and ID only break ties between rows written outside AddComment.
type Comment struct {
	ID         string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID     string  `gorm:"not null;index" json:"post_id"`
	AuthorID   string  `gorm:"not null;index" json:"author_id"`
	Author     *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentID   *string `gorm:"index;type:varchar(36)" json:"parent_id,omitempty"`
	Position   int     `gorm:"not null;default:0" json:"position"`
	Content    string  `gorm:"type:text;not null" json:"content"`
	IsDeleted  bool    `gorm:"default:false" json:"is_deleted"`
	ReplyCount int     `gorm:"default:0" json:"reply_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
