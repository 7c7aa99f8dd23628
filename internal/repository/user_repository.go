package repository

import (
	"context"
	"strings"

	"github.com/o6b7/travelbond/internal/models"
	"gorm.io/gorm"
)

// User list orderings
const (
	UserSortNewest = "newest"
	UserSortName   = "name"
)

// UserFilter narrows and orders a user listing
type UserFilter struct {
	Query    string
	Interest string
	Sort     string
	Limit    int
}

// UserRepository handles all database operations for users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" || user.Username == "" {
		return ErrInvalidInput
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// Get gets a user by ID
func (r *userRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetByEmail gets a user by email (case-insensitive)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetByUsername gets a user by username (case-insensitive)
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Update saves the editable profile fields
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Model(user).
		Select("display_name", "bio", "location", "avatar_url", "interests", "updated_at").
		Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users matching the filter
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Where("(LOWER(username) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(location) LIKE ?)",
			pattern, pattern, pattern)
	}
	if filter.Interest != "" {
		query = whereTag(query, "interests", filter.Interest)
	}

	switch filter.Sort {
	case UserSortName:
		query = query.Order("LOWER(display_name) ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var users []*models.User
	err := query.Order("id ASC").Limit(listLimit(filter.Limit)).Find(&users).Error
	return users, err
}

// Count returns the number of active users
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
