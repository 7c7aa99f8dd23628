package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
)

type updateProfileRequest struct {
	DisplayName *string  `json:"display_name" binding:"omitempty,min=1,max=50"`
	Bio         *string  `json:"bio" binding:"omitempty,max=500"`
	Location    *string  `json:"location" binding:"omitempty,max=100"`
	AvatarURL   *string  `json:"avatar_url" binding:"omitempty,url"`
	Interests   []string `json:"interests"`
}

// ListUsers lists users
// GET /api/v1/users?q=&interest=&sort=newest|name
func (h *Handlers) ListUsers(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	users, err := h.repos.Users.List(c.Request.Context(), repository.UserFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Interest: strings.ToLower(c.Query("interest")),
		Sort:     c.DefaultQuery("sort", repository.UserSortNewest),
	})
	if err != nil {
		respondRepositoryError(c, "users", err)
		return
	}

	respondList(c, "users", params, users)
}

// GetUser returns a user's public profile
// GET /api/v1/users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.repos.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMyProfile edits the caller's profile. Omitted fields are left unchanged.
// PUT /api/v1/users/me
func (h *Handlers) UpdateMyProfile(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.repos.Users.Get(c.Request.Context(), userID)
	if err != nil {
		respondRepositoryError(c, "user", err)
		return
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			util.RespondValidationError(c, "display_name", "display name cannot be blank")
			return
		}
		user.DisplayName = name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Interests != nil {
		user.Interests = models.StringArray(normalizeTags(req.Interests))
	}

	if err := h.repos.Users.Update(c.Request.Context(), user); err != nil {
		respondRepositoryError(c, "user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUserEvents lists the events a user attends
// GET /api/v1/users/:id/events?upcoming=
func (h *Handlers) ListUserEvents(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	user, err := h.repos.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "user", err)
		return
	}

	events, err := h.repos.Events.ListForUser(c.Request.Context(), user.ID, util.ParseBool(c.Query("upcoming")))
	if err != nil {
		respondRepositoryError(c, "events", err)
		return
	}

	respondList(c, "events", params, events)
}

// ListUserGroups lists a user's groups. Private groups are only shown to the
// user themself and to admins.
// GET /api/v1/users/:id/groups
func (h *Handlers) ListUserGroups(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	user, err := h.repos.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "user", err)
		return
	}

	groups, err := h.repos.Groups.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondRepositoryError(c, "groups", err)
		return
	}

	if util.OptionalUserID(c) != user.ID && !util.IsAdmin(c) {
		visible := groups[:0]
		for _, g := range groups {
			if !g.IsPrivate {
				visible = append(visible, g)
			}
		}
		groups = visible
	}

	respondList(c, "groups", params, groups)
}
