package social

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/postline/postline/internal/apperr"
	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/pkg/logging"
)

// PostInput is the validated post form. GroupSlug is optional; when set it
// must resolve to an existing group.
type PostInput struct {
	Text      string `json:"text" validate:"required"`
	Image     string `json:"image"`
	GroupSlug string `json:"group"`
}

// PostService handles post authoring. Posts are created and edited by
// their author only, and never deleted.
type PostService struct {
	posts    *db.PostRepository
	users    *db.UserRepository
	groups   *db.GroupRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(repo *db.Repository) *PostService {
	return &PostService{
		posts:    db.NewPostRepository(repo),
		users:    db.NewUserRepository(repo),
		groups:   db.NewGroupRepository(repo),
		validate: validator.New(),
		logger:   logging.GetLogger().With(zap.String("component", "social-post")),
	}
}

// resolveGroupID maps an optional slug to a nullable group id
func (s *PostService) resolveGroupID(ctx context.Context, slug string) (sql.NullInt64, error) {
	if slug == "" {
		return sql.NullInt64{}, nil
	}
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return sql.NullInt64{}, err
	}
	if group == nil {
		return sql.NullInt64{}, apperr.NotFoundf("group %q", slug)
	}
	return sql.NullInt64{Int64: group.ID, Valid: true}, nil
}

// Create authors a new post
func (s *PostService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	if author == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.FieldErrors{"text": "this field is required"}
	}

	groupID, err := s.resolveGroupID(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		Image:    in.Image,
		AuthorID: author.ID,
		GroupID:  groupID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Debug("post created",
		zap.Int64("post_id", post.ID),
		zap.String("author", author.Username),
	)
	return post, nil
}

// Get resolves a post by owner username and id. The pair must match: a
// valid id under the wrong username is NotFound.
func (s *PostService) Get(ctx context.Context, username string, postID int64) (*models.Post, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperr.NotFoundf("user %q", username)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.AuthorID != owner.ID {
		return nil, apperr.NotFoundf("post %d by %q", postID, username)
	}
	return post, nil
}

// Update edits an existing post. Only the author may edit; anyone else
// gets PermissionDenied.
func (s *PostService) Update(ctx context.Context, caller *models.User, username string, postID int64, in PostInput) (*models.Post, error) {
	if caller == nil {
		return nil, apperr.ErrUnauthenticated
	}

	post, err := s.Get(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.ID {
		return nil, apperr.ErrPermissionDenied
	}

	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.FieldErrors{"text": "this field is required"}
	}

	groupID, err := s.resolveGroupID(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.Image = in.Image
	post.GroupID = groupID
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
