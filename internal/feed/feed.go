// Package feed assembles ordered, paginated post listings for the four
// selection contexts: global, by group, by author and by followed authors.
package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/postline/postline/internal/apperr"
	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/pkg/logging"
	"github.com/postline/postline/pkg/telemetry"
)

// Service is the feed query engine. All methods are read-only and compose
// the repository's count and limit/offset primitives, so a page fetch
// never materializes the full corpus.
type Service struct {
	posts   *db.PostRepository
	users   *db.UserRepository
	groups  *db.GroupRepository
	follows *db.FollowRepository
	logger  *zap.Logger
}

// NewService creates a new feed service
func NewService(repo *db.Repository) *Service {
	return &Service{
		posts:   db.NewPostRepository(repo),
		users:   db.NewUserRepository(repo),
		groups:  db.NewGroupRepository(repo),
		follows: db.NewFollowRepository(repo),
		logger:  logging.GetLogger().With(zap.String("component", "feed")),
	}
}

// Global returns a page of all posts, newest first
func (s *Service) Global(ctx context.Context, pageSize, pageNumber int) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.global")
	defer span.End()

	total, err := s.posts.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	number, totalPages, offset := Resolve(total, pageSize, pageNumber)

	items, err := s.posts.ListAll(ctx, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, pageSize, number, totalPages), nil
}

// Group returns the group with the given slug and a page of its posts,
// newest first
func (s *Service) Group(ctx context.Context, slug string, pageSize, pageNumber int) (*models.Group, *Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.group")
	defer span.End()

	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, apperr.NotFoundf("group %q", slug)
	}

	total, err := s.posts.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	number, totalPages, offset := Resolve(total, pageSize, pageNumber)

	items, err := s.posts.ListByGroup(ctx, group.ID, pageSize, offset)
	if err != nil {
		return nil, nil, err
	}
	return group, NewPage(items, total, pageSize, number, totalPages), nil
}

// Author returns the author with the given username and a page of their
// posts, newest first
func (s *Service) Author(ctx context.Context, username string, pageSize, pageNumber int) (*models.User, *Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.author")
	defer span.End()

	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if author == nil {
		return nil, nil, apperr.NotFoundf("user %q", username)
	}

	total, err := s.posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	number, totalPages, offset := Resolve(total, pageSize, pageNumber)

	items, err := s.posts.ListByAuthor(ctx, author.ID, pageSize, offset)
	if err != nil {
		return nil, nil, err
	}
	return author, NewPage(items, total, pageSize, number, totalPages), nil
}

// Followed returns a page of posts authored by anyone the user follows,
// newest first. A user following nobody gets an empty page.
func (s *Service) Followed(ctx context.Context, user *models.User, pageSize, pageNumber int) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.followed")
	defer span.End()

	if user == nil {
		return nil, apperr.ErrUnauthenticated
	}

	authorIDs, err := s.follows.FollowedAuthorIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	total, err := s.posts.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	number, totalPages, offset := Resolve(total, pageSize, pageNumber)

	items, err := s.posts.ListByAuthors(ctx, authorIDs, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, pageSize, number, totalPages), nil
}
