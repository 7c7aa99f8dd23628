package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
)

// GetDashboard returns the caller's home screen. Each section is disclosed
// independently with the same initial/step/reveals parameters.
// GET /api/v1/dashboard
func (h *Handlers) GetDashboard(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	dash, err := h.dashboard.Build(c.Request.Context(), userID, repository.MaxListSize)
	if err != nil {
		util.RespondInternalError(c, "failed to build dashboard", err)
		return
	}

	posts, err := discloseList("dashboard_posts", params, dash.Posts)
	if err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	events, err := discloseList("dashboard_upcoming_events", params, dash.UpcomingEvents)
	if err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	groups, err := discloseList("dashboard_groups", params, dash.Groups)
	if err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":           posts,
		"upcoming_events": events,
		"groups":          groups,
		"generated_at":    dash.GeneratedAt,
	})
}
