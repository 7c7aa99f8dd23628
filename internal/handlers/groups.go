package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/search"
	"github.com/o6b7/travelbond/internal/util"
	"go.uber.org/zap"
)

type groupRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	Description string   `json:"description" binding:"max=5000"`
	Category    string   `json:"category" binding:"max=50"`
	Tags        []string `json:"tags"`
	IsPrivate   bool     `json:"is_private"`
}

func (r groupRequest) apply(g *models.Group) {
	g.Name = strings.TrimSpace(r.Name)
	g.Description = r.Description
	g.Category = strings.ToLower(strings.TrimSpace(r.Category))
	g.Tags = models.StringArray(normalizeTags(r.Tags))
	g.IsPrivate = r.IsPrivate
}

// ListGroups lists the groups visible to the caller
// GET /api/v1/groups?q=&category=&tag=&sort=newest|popular|name
func (h *Handlers) ListGroups(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	filter := repository.GroupFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		ViewerID: util.OptionalUserID(c),
		Sort:     c.DefaultQuery("sort", repository.GroupSortNewest),
	}

	if filter.Query != "" && h.search != nil {
		ids, err := h.search.SearchGroups(c.Request.Context(), filter.Query, repository.MaxListSize)
		if err == nil {
			filter.IDs = ids
			filter.Query = ""
		} else {
			logger.Log.Warn("Group search failed, falling back to database", zap.String("query", filter.Query), zap.Error(err))
		}
	}

	groups, err := h.repos.Groups.List(c.Request.Context(), filter)
	if filter.Query != "" {
		metrics.RecordSearch(search.IndexGroups, "database", err)
	}
	if err != nil {
		respondRepositoryError(c, "groups", err)
		return
	}

	respondList(c, "groups", params, groups)
}

// CreateGroup creates a group owned by the caller
// POST /api/v1/groups
func (h *Handlers) CreateGroup(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	group := &models.Group{OwnerID: userID}
	req.apply(group)
	if err := h.repos.Groups.Create(c.Request.Context(), group); err != nil {
		respondRepositoryError(c, "group", err)
		return
	}

	if h.search != nil && !group.IsPrivate {
		logSearchSync("index group", group.ID, h.search.IndexGroup(c.Request.Context(), group))
	}

	logger.Log.Info("Group created", logger.WithUserID(userID), logger.WithGroupID(group.ID))
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// loadVisibleGroup fetches a group, hiding private groups from non-members.
// It responds on failure and returns nil.
func (h *Handlers) loadVisibleGroup(c *gin.Context) (*models.Group, bool) {
	group, err := h.repos.Groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "group", err)
		return nil, false
	}

	isMember := false
	if userID := util.OptionalUserID(c); userID != "" {
		isMember, err = h.repos.Groups.IsMember(c.Request.Context(), group.ID, userID)
		if err != nil {
			respondRepositoryError(c, "group", err)
			return nil, false
		}
	}
	if group.IsPrivate && !isMember && !util.IsAdmin(c) {
		util.RespondNotFound(c, "group")
		return nil, false
	}
	return group, isMember
}

// GetGroup returns a group and whether the caller is a member
// GET /api/v1/groups/:id
func (h *Handlers) GetGroup(c *gin.Context) {
	group, isMember := h.loadVisibleGroup(c)
	if group == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "is_member": isMember})
}

// UpdateGroup edits a group; only its owner or an admin may
// PUT /api/v1/groups/:id
func (h *Handlers) UpdateGroup(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	group, err := h.repos.Groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "group", err)
		return
	}
	if group.OwnerID != userID && !util.IsAdmin(c) {
		util.RespondForbidden(c, "only the owner can edit this group")
		return
	}

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	req.apply(group)
	if err := h.repos.Groups.Update(c.Request.Context(), group); err != nil {
		respondRepositoryError(c, "group", err)
		return
	}

	if h.search != nil {
		if group.IsPrivate {
			logSearchSync("delete group", group.ID, h.search.DeleteGroup(c.Request.Context(), group.ID))
		} else {
			logSearchSync("index group", group.ID, h.search.IndexGroup(c.Request.Context(), group))
		}
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup deletes a group; only its owner or an admin may
// DELETE /api/v1/groups/:id
func (h *Handlers) DeleteGroup(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	group, err := h.repos.Groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "group", err)
		return
	}
	if group.OwnerID != userID && !util.IsAdmin(c) {
		util.RespondForbidden(c, "only the owner can delete this group")
		return
	}

	if err := h.repos.Groups.Delete(c.Request.Context(), group.ID); err != nil {
		respondRepositoryError(c, "group", err)
		return
	}

	if h.search != nil {
		logSearchSync("delete group", group.ID, h.search.DeleteGroup(c.Request.Context(), group.ID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "group deleted"})
}

// JoinGroup adds the caller to a public group
// POST /api/v1/groups/:id/join
func (h *Handlers) JoinGroup(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.repos.Groups.Join(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondRepositoryError(c, "group", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined group", "is_member": true})
}

// LeaveGroup removes the caller from a group
// DELETE /api/v1/groups/:id/join
func (h *Handlers) LeaveGroup(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.repos.Groups.Leave(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondRepositoryError(c, "group", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left group", "is_member": false})
}

// ListGroupMembers lists a group's members, owner first
// GET /api/v1/groups/:id/members
func (h *Handlers) ListGroupMembers(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	group, _ := h.loadVisibleGroup(c)
	if group == nil {
		return
	}

	members, err := h.repos.Groups.ListMembers(c.Request.Context(), group.ID)
	if err != nil {
		respondRepositoryError(c, "members", err)
		return
	}

	respondList(c, "members", params, members)
}
