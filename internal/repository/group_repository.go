package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/o6b7/travelbond/internal/models"
	"gorm.io/gorm"
)

// Group list orderings
const (
	GroupSortNewest  = "newest"
	GroupSortPopular = "popular"
	GroupSortName    = "name"
)

// GroupFilter narrows and orders a group listing.
// Private groups are only listed for their members (ViewerID).
type GroupFilter struct {
	Query    string
	Category string
	Tag      string
	ViewerID string
	IDs      []string
	Sort     string
	Limit    int
}

// GroupRepository handles all database operations for groups
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	Get(ctx context.Context, groupID string) (*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, groupID string) error
	List(ctx context.Context, filter GroupFilter) ([]*models.Group, error)

	Join(ctx context.Context, groupID, userID string) error
	Leave(ctx context.Context, groupID, userID string) error
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	ListMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Group, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create stores a new group with its owner as the first member
func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if group == nil || group.OwnerID == "" || strings.TrimSpace(group.Name) == "" {
		return ErrInvalidInput
	}
	group.MemberCount = 1

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		owner := &models.GroupMember{GroupID: group.ID, UserID: group.OwnerID, Role: models.GroupRoleOwner}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", group.OwnerID).
			UpdateColumn("group_count", gorm.Expr("group_count + 1")).Error
	})
}

// Get gets a group by ID with its owner
func (r *groupRepository) Get(ctx context.Context, groupID string) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", groupID).
		First(&group).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// Update saves an edited group
func (r *groupRepository) Update(ctx context.Context, group *models.Group) error {
	if group == nil || group.ID == "" {
		return ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Model(group).
		Select("name", "description", "category", "tags", "is_private", "updated_at").
		Updates(group)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft deletes a group
func (r *groupRepository) Delete(ctx context.Context, groupID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", groupID).Delete(&models.Group{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns groups matching the filter
func (r *groupRepository) List(ctx context.Context, filter GroupFilter) ([]*models.Group, error) {
	query := r.db.WithContext(ctx).Model(&models.Group{}).Preload("Owner")

	if filter.ViewerID != "" {
		query = query.Where("(is_private = ? OR id IN (?))", false,
			r.db.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", filter.ViewerID))
	} else {
		query = query.Where("is_private = ?", false)
	}
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		query = whereTag(query, "tags", filter.Tag)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	switch filter.Sort {
	case GroupSortPopular:
		query = query.Order("member_count DESC").Order("created_at DESC")
	case GroupSortName:
		query = query.Order("LOWER(name) ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var groups []*models.Group
	err := query.Order("id ASC").Limit(listLimit(filter.Limit)).Find(&groups).Error
	return groups, err
}

// Join adds the user to a public group
func (r *groupRepository) Join(ctx context.Context, groupID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.Where("id = ?", groupID).First(&group).Error; err != nil {
			return notFound(err)
		}

		var existing int64
		if err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}
		if group.IsPrivate {
			return ErrPrivateGroup
		}

		member := &models.GroupMember{GroupID: groupID, UserID: userID, Role: models.GroupRoleMember}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Group{}).Where("id = ?", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("group_count", gorm.Expr("group_count + 1")).Error
	})
}

// Leave removes a member; the owner cannot leave their own group
func (r *groupRepository) Leave(ctx context.Context, groupID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.GroupMember
		err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotMember
			}
			return err
		}
		if member.Role == models.GroupRoleOwner {
			return ErrOwnerCannotLeave
		}

		if err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
			Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Group{}).Where("id = ? AND member_count > 0", groupID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND group_count > 0", userID).
			UpdateColumn("group_count", gorm.Expr("group_count - 1")).Error
	})
}

// IsMember reports whether the user belongs to the group
func (r *groupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListMembers returns members in the order they joined, owner first
func (r *groupRepository) ListMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	var members []*models.GroupMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Order("user_id ASC").
		Limit(MaxListSize).
		Find(&members).Error
	return members, err
}

// ListForUser returns the groups a user belongs to
func (r *groupRepository) ListForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).Model(&models.Group{}).
		Select(`"groups".*`).
		Joins(`JOIN group_members ON group_members.group_id = "groups".id`).
		Where("group_members.user_id = ?", userID).
		Order("group_members.created_at ASC").
		Order(`"groups".id ASC`).
		Limit(MaxListSize).
		Find(&groups).Error
	return groups, err
}
