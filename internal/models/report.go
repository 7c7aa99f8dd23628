package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report target types
const (
	ReportTargetPost    = "post"
	ReportTargetComment = "comment"
	ReportTargetUser    = "user"
	ReportTargetEvent   = "event"
	ReportTargetGroup   = "group"
)

// Report statuses
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
	ReportStatusActioned  = "actioned"
)

// Report is a moderation report filed by a user
type Report struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ReporterID string     `gorm:"not null;index" json:"reporter_id"`
	Reporter   *User      `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	TargetType string     `gorm:"not null;index:idx_reports_target" json:"target_type"`
	TargetID   string     `gorm:"not null;index:idx_reports_target" json:"target_id"`
	Reason     string     `gorm:"not null" json:"reason"`
	Details    string     `gorm:"type:text" json:"details,omitempty"`
	Status     string     `gorm:"not null;default:pending;index" json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID and defaults the status
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReportStatusPending
	}
	return nil
}

// IsValidReportTarget reports whether t is a known target type
func IsValidReportTarget(t string) bool {
	switch t {
	case ReportTargetPost, ReportTargetComment, ReportTargetUser, ReportTargetEvent, ReportTargetGroup:
		return true
	}
	return false
}

// IsValidReviewStatus reports whether s is a status a moderator can set
func IsValidReviewStatus(s string) bool {
	switch s {
	case ReportStatusReviewed, ReportStatusDismissed, ReportStatusActioned:
		return true
	}
	return false
}
