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

// PostUpdate carries the fields of a partial post update. Nil fields are
// left unchanged.
type PostUpdate struct {
	Title   *string
	Content *string
}

type PostService struct {
	posts    posts.Repository
	comments comments.Repository
	logger   logging.Logger
}

func NewPostService(m repomanager.RepositoryManager, logger logging.Logger) *PostService {
	return &PostService{posts: m.Posts(), comments: m.Comments(), logger: logger.With("module", "posts")}
}

// withComments fills Comments of every post from the comment store.
func (s *PostService) withComments(ctx context.Context, list ...*models.Post) error {
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	byPost, err := s.comments.ListIDsByPostIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range list {
		if c, ok := byPost[p.ID]; ok {
			p.Comments = c
		} else {
			p.Comments = []string{}
		}
	}
	return nil
}

// List returns all posts, or those of sender when it is not empty.
func (s *PostService) List(ctx context.Context, sender string) (list []*models.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.List")
	defer func() { endSpan(span, err) }()

	list, err = s.posts.List(ctx, sender)
	if err != nil {
		return nil, internal(err)
	}
	if err := s.withComments(ctx, list...); err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *PostService) Get(ctx context.Context, id string) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.Get")
	defer func() { endSpan(span, err) }()

	post, err = s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}
	if err := s.withComments(ctx, post); err != nil {
		return nil, internal(err)
	}
	return post, nil
}

// Create stores a post owned by principalID.
func (s *PostService) Create(ctx context.Context, principalID, title, content string) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.Create")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, validation("Title and content are required")
	}

	post, err = s.posts.Create(ctx, &models.Post{Title: title, Content: content, Sender: principalID})
	if err != nil {
		return nil, internal(err)
	}
	s.logger.Debug(ctx, "Post created", "post_id", post.ID, "sender", principalID)
	return post, nil
}

// Update applies upd to the post id when principalID owns it.
func (s *PostService) Update(ctx context.Context, principalID, id string, upd PostUpdate) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.Update")
	defer func() { endSpan(span, err) }()

	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}
	if err := auth.Authorize(principalID, current.Sender, "update this post"); err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, validation("Title cannot be empty")
		}
		current.Title = *upd.Title
	}
	if upd.Content != nil {
		if strings.TrimSpace(*upd.Content) == "" {
			return nil, validation("Content cannot be empty")
		}
		current.Content = *upd.Content
	}

	post, err = s.posts.Update(ctx, current)
	if err != nil {
		return nil, lookupError(err, "Post not found")
	}
	if err := s.withComments(ctx, post); err != nil {
		return nil, internal(err)
	}
	return post, nil
}

// Delete removes the post id and its comments when principalID owns it.
func (s *PostService) Delete(ctx context.Context, principalID, id string) (err error) {
	ctx, span := startSpan(ctx, "PostService.Delete")
	defer func() { endSpan(span, err) }()

	current, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Post not found")
	}
	if err := auth.Authorize(principalID, current.Sender, "delete this post"); err != nil {
		return err
	}

	n, err := s.comments.DeleteByPostIDs(ctx, []string{id})
	if err != nil {
		s.logger.Error(ctx, "Post cascade failed", "step", "delete comments", "post_id", id, "error", err)
		return internal(err)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "Post cascade failed", "step", "delete post", "post_id", id, "error", err)
		return lookupError(err, "Post not found")
	}

	s.logger.Info(ctx, "Post deleted", "post_id", id, "comments_deleted", n)
	return nil
}
