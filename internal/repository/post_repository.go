package repository

import (
	"context"
	"strings"

	"github.com/o6b7/travelbond/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Post list orderings
const (
	PostSortNewest  = "newest"
	PostSortPopular = "popular"
)

// deletedCommentContent replaces the text of a deleted comment; its replies stay in place
const deletedCommentContent = "[deleted]"

// PostFilter narrows and orders a post listing.
// Posts in private groups are hidden unless ViewerID is a member or IncludePrivate is set.
type PostFilter struct {
	AuthorID       string
	GroupID        string
	EventID        string
	ViewerID       string
	IncludePrivate bool
	Sort           string
	Limit          int
}

// PostRepository handles posts, likes and comment threads
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, postID string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	ListForDashboard(ctx context.Context, viewerID string, groupIDs, eventIDs []string, limit int) ([]*models.Post, error)

	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error

	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*models.Comment, error)
	ListReplies(ctx context.Context, commentID string) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create stores a post and counts it against its author
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post == nil || post.AuthorID == "" || strings.TrimSpace(post.Content) == "" {
		return ErrInvalidInput
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", post.AuthorID).
			UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
	})
}

// Get gets a post by ID with its author
func (r *postRepository) Get(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", postID).
		First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Update saves edited post content
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if post == nil || post.ID == "" || strings.TrimSpace(post.Content) == "" {
		return ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Model(post).Select("content", "updated_at").Updates(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft deletes a post
func (r *postRepository) Delete(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND post_count > 0", post.AuthorID).
			UpdateColumn("post_count", gorm.Expr("post_count - 1")).Error
	})
}

// List returns posts matching the filter
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Preload("Author")

	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.GroupID != "" {
		query = query.Where("group_id = ?", filter.GroupID)
	}
	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if !filter.IncludePrivate {
		query = r.whereVisibleTo(query, filter.ViewerID)
	}

	if filter.Sort == PostSortPopular {
		query = query.Order("like_count DESC").Order("comment_count DESC")
	}

	var posts []*models.Post
	err := query.Order("created_at DESC").Order("id ASC").Limit(listLimit(filter.Limit)).Find(&posts).Error
	return posts, err
}

// whereVisibleTo hides posts in private groups unless viewerID is a member
func (r *postRepository) whereVisibleTo(query *gorm.DB, viewerID string) *gorm.DB {
	visible := r.db.Model(&models.Group{}).Select("id").Where("is_private = ?", false)
	if viewerID != "" {
		visible = r.db.Model(&models.Group{}).Select("id").Where("(is_private = ? OR id IN (?))", false,
			r.db.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", viewerID))
	}
	return query.Where("(group_id IS NULL OR group_id IN (?))", visible)
}

// ListForDashboard returns the newest posts by viewerID or from any of the given
// groups or events, leaving out posts in private groups the viewer is not in
func (r *postRepository) ListForDashboard(ctx context.Context, viewerID string, groupIDs, eventIDs []string, limit int) ([]*models.Post, error) {
	var conditions []string
	var args []interface{}
	if viewerID != "" {
		conditions = append(conditions, "author_id = ?")
		args = append(args, viewerID)
	}
	if len(groupIDs) > 0 {
		conditions = append(conditions, "group_id IN ?")
		args = append(args, groupIDs)
	}
	if len(eventIDs) > 0 {
		conditions = append(conditions, "event_id IN ?")
		args = append(args, eventIDs)
	}
	if len(conditions) == 0 {
		return []*models.Post{}, nil
	}

	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("("+strings.Join(conditions, " OR ")+")", args...)

	var posts []*models.Post
	err := r.whereVisibleTo(query, viewerID).
		Order("created_at DESC").
		Order("id ASC").
		Limit(listLimit(limit)).
		Find(&posts).Error
	return posts, err
}

// Like records a like on a post
func (r *postRepository) Like(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			return notFound(err)
		}

		var existing int64
		if err := tx.Model(&models.PostLike{}).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyLiked
		}

		if err := tx.Create(&models.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// Unlike removes a like from a post
func (r *postRepository) Unlike(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotLiked
		}
		return tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}

// AddComment appends a comment to a post, or a reply to a top-level comment when
// ParentID is set. The comment gets the next Position among its siblings.
func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment == nil || comment.PostID == "" || comment.AuthorID == "" || strings.TrimSpace(comment.Content) == "" {
		return ErrInvalidInput
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The post row lock serializes position assignment for all of its comments
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", comment.PostID).First(&post).Error; err != nil {
			return notFound(err)
		}

		siblings := tx.Model(&models.Comment{}).Where("post_id = ?", comment.PostID)
		if comment.ParentID != nil {
			var parent models.Comment
			if err := tx.Where("id = ?", *comment.ParentID).First(&parent).Error; err != nil {
				return notFound(err)
			}
			// One level of threading: replies attach to top-level comments of the same post
			if parent.PostID != comment.PostID || parent.ParentID != nil {
				return ErrInvalidInput
			}
			siblings = siblings.Where("parent_id = ?", parent.ID)
		} else {
			siblings = siblings.Where("parent_id IS NULL")
		}

		var last struct{ MaxPosition int }
		if err := siblings.Select("COALESCE(MAX(position), 0) AS max_position").Scan(&last).Error; err != nil {
			return err
		}
		comment.Position = last.MaxPosition + 1

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if comment.ParentID != nil {
			if err := tx.Model(&models.Comment{}).Where("id = ?", *comment.ParentID).
				UpdateColumn("reply_count", gorm.Expr("reply_count + 1")).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// GetComment gets a comment by ID
func (r *postRepository) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", commentID).
		First(&comment).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

// ListComments returns the top-level comments of a post in posting order
func (r *postRepository) ListComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(MaxListSize).
		Find(&comments).Error
	return comments, err
}

// ListReplies returns the replies to a comment ordered by position
func (r *postRepository) ListReplies(ctx context.Context, commentID string) ([]*models.Comment, error) {
	var replies []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ?", commentID).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(MaxListSize).
		Find(&replies).Error
	return replies, err
}

// DeleteComment blanks a comment in place so reply positions stay stable
func (r *postRepository) DeleteComment(ctx context.Context, commentID string) error {
	result := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    deletedCommentContent,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
