package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
)

type updatePostRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type createPostRequest struct {
	Content string  `json:"content" binding:"required,min=1,max=5000"`
	GroupID *string `json:"group_id"`
	EventID *string `json:"event_id"`
}

// ListPosts lists posts, newest first unless sort=popular
// GET /api/v1/posts?author=&group=&event=&sort=newest|popular
func (h *Handlers) ListPosts(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	posts, err := h.repos.Posts.List(c.Request.Context(), repository.PostFilter{
		AuthorID:       c.Query("author"),
		GroupID:        c.Query("group"),
		EventID:        c.Query("event"),
		ViewerID:       util.OptionalUserID(c),
		IncludePrivate: util.IsAdmin(c),
		Sort:           c.DefaultQuery("sort", repository.PostSortNewest),
	})
	if err != nil {
		respondRepositoryError(c, "posts", err)
		return
	}

	respondList(c, "posts", params, posts)
}

// CreatePost publishes a post, optionally inside a group or an event the caller belongs to
// POST /api/v1/posts
func (h *Handlers) CreatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		util.RespondValidationError(c, "content", "content cannot be blank")
		return
	}

	ctx := c.Request.Context()
	if req.GroupID != nil && *req.GroupID != "" {
		if _, err := h.repos.Groups.Get(ctx, *req.GroupID); err != nil {
			respondRepositoryError(c, "group", err)
			return
		}
		isMember, err := h.repos.Groups.IsMember(ctx, *req.GroupID, userID)
		if err != nil {
			respondRepositoryError(c, "group", err)
			return
		}
		if !isMember {
			util.RespondForbidden(c, "join the group to post in it")
			return
		}
	} else {
		req.GroupID = nil
	}

	if req.EventID != nil && *req.EventID != "" {
		event, err := h.repos.Events.Get(ctx, *req.EventID)
		if err != nil {
			respondRepositoryError(c, "event", err)
			return
		}
		attending, err := h.repos.Events.IsAttending(ctx, event.ID, userID)
		if err != nil {
			respondRepositoryError(c, "event", err)
			return
		}
		if !attending && event.OrganizerID != userID {
			util.RespondForbidden(c, "join the event to post in it")
			return
		}
	} else {
		req.EventID = nil
	}

	post := &models.Post{
		AuthorID: userID,
		GroupID:  req.GroupID,
		EventID:  req.EventID,
		Content:  strings.TrimSpace(req.Content),
	}
	if err := h.repos.Posts.Create(ctx, post); err != nil {
		respondRepositoryError(c, "post", err)
		return
	}

	logger.Log.Info("Post created", logger.WithUserID(userID), logger.WithPostID(post.ID))
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// loadVisiblePost fetches a post, hiding posts in private groups from non-members.
// It responds on failure and returns nil.
func (h *Handlers) loadVisiblePost(c *gin.Context, postID string) *models.Post {
	post, err := h.repos.Posts.Get(c.Request.Context(), postID)
	if err != nil {
		respondRepositoryError(c, "post", err)
		return nil
	}
	if post.GroupID == nil || util.IsAdmin(c) {
		return post
	}

	group, err := h.repos.Groups.Get(c.Request.Context(), *post.GroupID)
	if err != nil {
		respondRepositoryError(c, "post", err)
		return nil
	}
	if !group.IsPrivate {
		return post
	}

	if userID := util.OptionalUserID(c); userID != "" {
		isMember, err := h.repos.Groups.IsMember(c.Request.Context(), group.ID, userID)
		if err != nil {
			respondRepositoryError(c, "post", err)
			return nil
		}
		if isMember {
			return post
		}
	}
	util.RespondNotFound(c, "post")
	return nil
}

// GetPost returns a post
// GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	post := h.loadVisiblePost(c, c.Param("id"))
	if post == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost edits a post's content; only its author may
// PUT /api/v1/posts/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	post, err := h.repos.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "post", err)
		return
	}
	if post.AuthorID != userID {
		util.RespondForbidden(c, "you can only edit your own posts")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		util.RespondValidationError(c, "content", "content cannot be blank")
		return
	}

	post.Content = strings.TrimSpace(req.Content)
	if err := h.repos.Posts.Update(c.Request.Context(), post); err != nil {
		respondRepositoryError(c, "post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost deletes a post; only its author or an admin may
// DELETE /api/v1/posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	post, err := h.repos.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "post", err)
		return
	}
	if post.AuthorID != userID && !util.IsAdmin(c) {
		util.RespondForbidden(c, "you can only delete your own posts")
		return
	}

	if err := h.repos.Posts.Delete(c.Request.Context(), post.ID); err != nil {
		respondRepositoryError(c, "post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// LikePost likes a post
// POST /api/v1/posts/:id/like
func (h *Handlers) LikePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	post := h.loadVisiblePost(c, c.Param("id"))
	if post == nil {
		return
	}

	if err := h.repos.Posts.Like(c.Request.Context(), post.ID, userID); err != nil {
		respondRepositoryError(c, "post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post liked", "like_count": post.LikeCount + 1})
}

// UnlikePost removes the caller's like
// DELETE /api/v1/posts/:id/like
func (h *Handlers) UnlikePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.repos.Posts.Unlike(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondRepositoryError(c, "post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post unliked"})
}
