package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
	"go.uber.org/zap"
)

type createReportRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,min=1,max=200"`
	Details    string `json:"details" binding:"max=2000"`
}

// CreateReport files a moderation report
// POST /api/v1/reports
func (h *Handlers) CreateReport(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	targetType := strings.ToLower(req.TargetType)
	if !models.IsValidReportTarget(targetType) {
		util.RespondValidationError(c, "target_type", "target_type must be one of post, comment, user, event, group")
		return
	}
	if !h.reportTargetExists(c, targetType, req.TargetID) {
		return
	}

	report := &models.Report{
		ReporterID: userID,
		TargetType: targetType,
		TargetID:   req.TargetID,
		Reason:     strings.TrimSpace(req.Reason),
		Details:    req.Details,
	}
	if err := h.repos.Reports.Create(c.Request.Context(), report); err != nil {
		respondRepositoryError(c, "report", err)
		return
	}

	logger.Log.Info("Report filed",
		logger.WithUserID(userID),
		logger.WithReportID(report.ID),
		zap.String("target_type", targetType),
		zap.String("target_id", report.TargetID),
	)
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// reportTargetExists responds 404 and returns false when the target is missing
func (h *Handlers) reportTargetExists(c *gin.Context, targetType, targetID string) bool {
	ctx := c.Request.Context()
	var err error
	switch targetType {
	case models.ReportTargetPost:
		_, err = h.repos.Posts.Get(ctx, targetID)
	case models.ReportTargetComment:
		_, err = h.repos.Posts.GetComment(ctx, targetID)
	case models.ReportTargetUser:
		_, err = h.repos.Users.Get(ctx, targetID)
	case models.ReportTargetEvent:
		_, err = h.repos.Events.Get(ctx, targetID)
	case models.ReportTargetGroup:
		_, err = h.repos.Groups.Get(ctx, targetID)
	}
	if err != nil {
		respondRepositoryError(c, targetType, err)
		return false
	}
	return true
}

// ListReports lists the moderation queue, oldest first
// GET /api/v1/reports?status=pending|reviewed|dismissed|actioned|all&target_type=
func (h *Handlers) ListReports(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", models.ReportStatusPending)
	if status == "all" {
		status = ""
	}

	reports, err := h.repos.Reports.List(c.Request.Context(), repository.ReportFilter{
		Status:     status,
		TargetType: c.Query("target_type"),
	})
	if err != nil {
		respondRepositoryError(c, "reports", err)
		return
	}

	respondList(c, "reports", params, reports)
}

// GetReport returns a single report with its reporter
// GET /api/v1/reports/:id
func (h *Handlers) GetReport(c *gin.Context) {
	report, err := h.repos.Reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "report", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ReviewReport records a moderator's decision
// PUT /api/v1/reports/:id
func (h *Handlers) ReviewReport(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if !models.IsValidReviewStatus(req.Status) {
		util.RespondValidationError(c, "status", "status must be one of reviewed, dismissed, actioned")
		return
	}

	report, err := h.repos.Reports.Review(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondRepositoryError(c, "report", err)
		return
	}

	logger.Log.Info("Report reviewed",
		logger.WithUserID(userID),
		logger.WithReportID(report.ID),
		zap.String("status", report.Status),
	)
	c.JSON(http.StatusOK, gin.H{"report": report})
}
