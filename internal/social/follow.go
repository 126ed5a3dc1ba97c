// Package social holds the write-side services: post authoring, comment
// attachment and the follow graph.
package social

import (
	"context"

	"go.uber.org/zap"

	"github.com/postline/postline/internal/apperr"
	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/pkg/logging"
)

// FollowService maintains the directed follow-edge set. Edges are plain
// existence records: no pending state, no graph traversal.
type FollowService struct {
	follows *db.FollowRepository
	users   *db.UserRepository
	logger  *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(repo *db.Repository) *FollowService {
	return &FollowService{
		follows: db.NewFollowRepository(repo),
		users:   db.NewUserRepository(repo),
		logger:  logging.GetLogger().With(zap.String("component", "social-follow")),
	}
}

// resolveAuthor maps a username to a user or a NotFound error
func (s *FollowService) resolveAuthor(ctx context.Context, username string) (*models.User, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFoundf("user %q", username)
	}
	return author, nil
}

// Follow creates the edge follower→author. Self-follows and existing
// edges are silent no-ops. Returns the follower's resulting edge count.
func (s *FollowService) Follow(ctx context.Context, follower *models.User, authorUsername string) (int64, error) {
	if follower == nil {
		return 0, apperr.ErrUnauthenticated
	}

	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return 0, err
	}

	if follower.ID != author.ID {
		// The composite key absorbs duplicate inserts, including the
		// concurrent ones an existence pre-check would miss.
		if err := s.follows.Create(ctx, &models.Follow{
			UserID:   follower.ID,
			AuthorID: author.ID,
		}); err != nil {
			return 0, err
		}
	}

	return s.follows.CountByFollower(ctx, follower.ID)
}

// Unfollow removes the edge follower→author if present; absent edges are
// a no-op
func (s *FollowService) Unfollow(ctx context.Context, follower *models.User, authorUsername string) error {
	if follower == nil {
		return apperr.ErrUnauthenticated
	}

	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return err
	}

	return s.follows.Delete(ctx, follower.ID, author.ID)
}

// IsFollowing reports whether follower follows author
func (s *FollowService) IsFollowing(ctx context.Context, follower, author *models.User) (bool, error) {
	if follower == nil || author == nil {
		return false, nil
	}
	return s.follows.Exists(ctx, follower.ID, author.ID)
}

// FollowedAuthors returns the set of authors the follower follows
func (s *FollowService) FollowedAuthors(ctx context.Context, follower *models.User) ([]*models.User, error) {
	if follower == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return s.follows.FollowedAuthors(ctx, follower.ID)
}
