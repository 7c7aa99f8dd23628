package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/auth"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
)

// Register creates an account and returns a token
// POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, auth.ErrUserExists):
		util.RespondConflict(c, "an account with this email already exists")
		return
	case errors.Is(err, auth.ErrUsernameExists):
		util.RespondConflict(c, "username is taken")
		return
	case err != nil:
		util.RespondInternalError(c, "failed to register", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login exchanges email/password for a token
// POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		util.RespondUnauthorized(c, "invalid email or password")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to log in", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	user, err := h.repos.Users.Get(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		util.RespondNotFound(c, "user")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to load user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
