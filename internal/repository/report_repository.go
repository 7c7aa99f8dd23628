package repository

import (
	"context"
	"strings"
	"time"

	"github.com/o6b7/travelbond/internal/models"
	"gorm.io/gorm"
)

// ReportFilter narrows a moderation queue listing
type ReportFilter struct {
	Status     string
	TargetType string
	Limit      int
}

// ReportRepository handles moderation reports
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, reportID string) (*models.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]*models.Report, error)
	Review(ctx context.Context, reportID, status, reviewerID string) (*models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create files a report. A reporter may only have one pending report per target.
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report == nil || report.ReporterID == "" || report.TargetID == "" ||
		!models.IsValidReportTarget(report.TargetType) || strings.TrimSpace(report.Reason) == "" {
		return ErrInvalidInput
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.Report{}).
			Where("reporter_id = ? AND target_type = ? AND target_id = ? AND status = ?",
				report.ReporterID, report.TargetType, report.TargetID, models.ReportStatusPending).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrDuplicateReport
		}

		report.Status = models.ReportStatusPending
		return tx.Create(report).Error
	})
}

// Get gets a report by ID
func (r *reportRepository) Get(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("id = ?", reportID).
		First(&report).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &report, nil
}

// List returns reports, oldest first so the queue is worked in filing order
func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]*models.Report, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{}).Preload("Reporter")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	var reports []*models.Report
	err := query.Order("created_at ASC").Order("id ASC").Limit(listLimit(filter.Limit)).Find(&reports).Error
	return reports, err
}

// Review records a moderator's decision on a report
func (r *reportRepository) Review(ctx context.Context, reportID, status, reviewerID string) (*models.Report, error) {
	if !models.IsValidReviewStatus(status) || reviewerID == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, reportID)
}
