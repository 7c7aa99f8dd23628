package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
)

// ListComments lists a post's top-level comments in posting order
// GET /api/v1/posts/:id/comments
func (h *Handlers) ListComments(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	post := h.loadVisiblePost(c, c.Param("id"))
	if post == nil {
		return
	}

	comments, err := h.repos.Posts.ListComments(c.Request.Context(), post.ID)
	if err != nil {
		respondRepositoryError(c, "comments", err)
		return
	}

	respondList(c, "comments", params, comments)
}

// CreateComment comments on a post, or replies to a top-level comment when parent_id is set
// POST /api/v1/posts/:id/comments
func (h *Handlers) CreateComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Content  string  `json:"content" binding:"required,min=1,max=2000"`
		ParentID *string `json:"parent_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		util.RespondValidationError(c, "content", "content cannot be blank")
		return
	}
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	post := h.loadVisiblePost(c, c.Param("id"))
	if post == nil {
		return
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		ParentID: req.ParentID,
		Content:  strings.TrimSpace(req.Content),
	}
	err := h.repos.Posts.AddComment(c.Request.Context(), comment)
	switch {
	case err == nil:
	case req.ParentID != nil && errors.Is(err, repository.ErrNotFound):
		util.RespondValidationError(c, "parent_id", "parent comment not found")
		return
	case req.ParentID != nil && errors.Is(err, repository.ErrInvalidInput):
		util.RespondValidationError(c, "parent_id", "replies must answer a top-level comment on the same post")
		return
	default:
		respondRepositoryError(c, "comment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListReplies lists the replies to a comment ordered by position
// GET /api/v1/comments/:id/replies
func (h *Handlers) ListReplies(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	parent, err := h.repos.Posts.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "comment", err)
		return
	}
	if h.loadVisiblePost(c, parent.PostID) == nil {
		return
	}

	replies, err := h.repos.Posts.ListReplies(c.Request.Context(), parent.ID)
	if err != nil {
		respondRepositoryError(c, "replies", err)
		return
	}

	respondList(c, "replies", params, replies)
}

// DeleteComment blanks a comment; its author, the post's author or an admin may
// DELETE /api/v1/comments/:id
func (h *Handlers) DeleteComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	comment, err := h.repos.Posts.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "comment", err)
		return
	}

	allowed := comment.AuthorID == userID || util.IsAdmin(c)
	if !allowed {
		post, err := h.repos.Posts.Get(c.Request.Context(), comment.PostID)
		if err != nil {
			respondRepositoryError(c, "comment", err)
			return
		}
		allowed = post.AuthorID == userID
	}
	if !allowed {
		util.RespondForbidden(c, "you can only delete your own comments")
		return
	}

	if err := h.repos.Posts.DeleteComment(c.Request.Context(), comment.ID); err != nil {
		respondRepositoryError(c, "comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
