package db

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/postline/postline/internal/models"
)

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Create inserts a follow edge. Concurrent inserts of the same pair are
// collapsed by the primary key: conflicting rows are silently skipped.
func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

// Delete removes a follow edge if present
func (r *FollowRepository) Delete(ctx context.Context, userID, authorID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether userID follows authorID
func (r *FollowRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByFollower counts the edges outgoing from a follower
func (r *FollowRepository) CountByFollower(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FollowedAuthorIDs returns the ids of all authors the user follows
func (r *FollowRepository) FollowedAuthorIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowedAuthors returns the authors the user follows
func (r *FollowRepository) FollowedAuthors(ctx context.Context, userID int64) ([]*models.User, error) {
	var authors []*models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN postline_follows ON postline_follows.author_id = postline_users.id").
		Where("postline_follows.user_id = ?", userID).
		Order("postline_users.username ASC").
		Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}
