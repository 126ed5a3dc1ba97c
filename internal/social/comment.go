package social

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/postline/postline/internal/apperr"
	"github.com/postline/postline/internal/db"
	"github.com/postline/postline/internal/models"
	"github.com/postline/postline/pkg/logging"
)

// CommentInput is the validated comment form
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// CommentService attaches comments to posts.
//
// Attribution note: a persisted comment's author is the POST's author,
// not the submitting user. The submitter's identity is not recorded
// anywhere. This matches the long-standing writer behavior; see DESIGN.md
// before changing it, since readers and tests observe it.
type CommentService struct {
	comments *db.CommentRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(repo *db.Repository) *CommentService {
	return &CommentService{
		comments: db.NewCommentRepository(repo),
		validate: validator.New(),
		logger:   logging.GetLogger().With(zap.String("component", "social-comment")),
	}
}

// AddComment validates the text and attaches a comment to the post.
// The submitter must be authenticated but is not recorded on the comment.
func (s *CommentService) AddComment(ctx context.Context, post *models.Post, submitter *models.User, text string) (*models.Comment, error) {
	if submitter == nil {
		return nil, apperr.ErrUnauthenticated
	}

	if err := s.validate.Struct(CommentInput{Text: text}); err != nil {
		return nil, apperr.FieldErrors{"text": "this field is required"}
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: post.AuthorID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Debug("comment added",
		zap.Int64("post_id", post.ID),
		zap.Int64("comment_id", comment.ID),
	)
	return comment, nil
}

// ListComments returns a post's comments, oldest first
func (s *CommentService) ListComments(ctx context.Context, post *models.Post) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, post.ID)
}
