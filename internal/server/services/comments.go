package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
)

type CommentService struct {
	comments comments.Repository
	posts    posts.Repository
	logger   logging.Logger
}

func NewCommentService(m repomanager.RepositoryManager, logger logging.Logger) *CommentService {
	return &CommentService{comments: m.Comments(), posts: m.Posts(), logger: logger.With("module", "comments")}
}

// List returns all comments, or those of postID when it is not empty.
func (s *CommentService) List(ctx context.Context, postID string) (list []*models.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.List")
	defer func() { endSpan(span, err) }()

	list, err = s.comments.List(ctx, postID)
	if err != nil {
		return nil, lookupError(err, "Comment not found")
	}
	return list, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (c *models.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.Get")
	defer func() { endSpan(span, err) }()

	c, err = s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Comment not found")
	}
	return c, nil
}

// Create adds a comment by principalID to an existing post.
func (s *CommentService) Create(ctx context.Context, principalID, postID, content string) (c *models.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.Create")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(content) == "" {
		return nil, validation("Content is required")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, lookupError(err, "Post not found")
	}

	c, err = s.comments.Create(ctx, &models.Comment{PostID: postID, Content: content, Sender: principalID})
	if err != nil {
		return nil, internal(err)
	}
	s.logger.Debug(ctx, "Comment created", "comment_id", c.ID, "post_id", postID)
	return c, nil
}

// Update replaces the content of comment id when principalID owns it.
func (s *CommentService) Update(ctx context.Context, principalID, id, content string) (c *models.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.Update")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(content) == "" {
		return nil, validation("Content is required")
	}

	current, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Comment not found")
	}
	if err := auth.Authorize(principalID, current.Sender, "update this comment"); err != nil {
		return nil, err
	}

	current.Content = content
	c, err = s.comments.Update(ctx, current)
	if err != nil {
		return nil, lookupError(err, "Comment not found")
	}
	return c, nil
}

// Delete removes comment id when principalID owns it.
func (s *CommentService) Delete(ctx context.Context, principalID, id string) (err error) {
	ctx, span := startSpan(ctx, "CommentService.Delete")
	defer func() { endSpan(span, err) }()

	current, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Comment not found")
	}
	if err := auth.Authorize(principalID, current.Sender, "delete this comment"); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return lookupError(err, "Comment not found")
	}
	return nil
}
