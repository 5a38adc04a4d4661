package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

const duplicateUser = "User with this email or username already exists"

// UserUpdate carries the fields of a partial user update. Nil fields are
// left unchanged; Password is stored hashed.
type UserUpdate struct {
	UserName *string
	Email    *string
	Password *string
}

type UserService struct {
	users    users.Repository
	posts    posts.Repository
	comments comments.Repository
	tokens   *auth.TokenService
	logger   logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenService, logger logging.Logger) *UserService {
	return &UserService{
		users:    m.Users(),
		posts:    m.Posts(),
		comments: m.Comments(),
		tokens:   tokens,
		logger:   logger.With("module", "users"),
	}
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) (list []*models.User, err error) {
	ctx, span := startSpan(ctx, "UserService.List")
	defer func() { endSpan(span, err) }()

	list, err = s.users.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *UserService) Get(ctx context.Context, id string) (u *models.User, err error) {
	ctx, span := startSpan(ctx, "UserService.Get")
	defer func() { endSpan(span, err) }()

	u, err = s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	return u, nil
}

// Create adds a user without signing them in.
func (s *UserService) Create(ctx context.Context, userName, email, password string) (u *models.User, err error) {
	ctx, span := startSpan(ctx, "UserService.Create")
	defer func() { endSpan(span, err) }()

	userName, email = strings.TrimSpace(userName), strings.TrimSpace(email)
	if userName == "" || email == "" || password == "" {
		return nil, validation("All fields (username, email, password) are required")
	}

	exists, err := s.users.ExistsByEmailOrUserName(ctx, email, userName)
	if err != nil {
		return nil, internal(err)
	}
	if exists {
		return nil, common.NewError(common.KindConflict, duplicateUser)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, internal(err)
	}

	u, err = s.users.Create(ctx, &models.User{UserName: userName, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WrapError(common.KindConflict, duplicateUser, err)
		}
		return nil, internal(err)
	}
	s.logger.Info(ctx, "User created", "user_id", u.ID, "username", u.UserName)
	return u, nil
}

// Update applies upd to user id. Only the user themself may update.
func (s *UserService) Update(ctx context.Context, principalID, id string, upd UserUpdate) (u *models.User, err error) {
	ctx, span := startSpan(ctx, "UserService.Update")
	defer func() { endSpan(span, err) }()

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	if err := auth.Authorize(principalID, current.ID, "update this user"); err != nil {
		return nil, err
	}

	if upd.UserName != nil {
		if strings.TrimSpace(*upd.UserName) == "" {
			return nil, validation("Username cannot be empty")
		}
		current.UserName = strings.TrimSpace(*upd.UserName)
	}
	if upd.Email != nil {
		if strings.TrimSpace(*upd.Email) == "" {
			return nil, validation("Email cannot be empty")
		}
		current.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return nil, validation("Password cannot be empty")
		}
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return nil, internal(err)
		}
		current.PasswordHash = hash
	}

	u, err = s.users.Update(ctx, current)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WrapError(common.KindConflict, duplicateUser, err)
		}
		return nil, lookupError(err, "User not found")
	}
	return u, nil
}

// Delete removes user id and everything they own. Only the user themself
// may delete. The steps run one after another without a transaction; the
// first failure stops the cascade.
func (s *UserService) Delete(ctx context.Context, principalID, id string) (err error) {
	ctx, span := startSpan(ctx, "UserService.Delete")
	defer func() { endSpan(span, err) }()

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "User not found")
	}
	if err := auth.Authorize(principalID, current.ID, "delete this user"); err != nil {
		return err
	}

	fail := func(step string, err error) error {
		s.logger.Error(ctx, "User cascade failed", "step", step, "user_id", id, "error", err)
		return common.WrapError(common.KindInternal, "Error deleting user", err)
	}

	postIDs, err := s.posts.ListIDsBySender(ctx, id)
	if err != nil {
		return fail("list posts", err)
	}
	onPosts, err := s.comments.DeleteByPostIDs(ctx, postIDs)
	if err != nil {
		return fail("delete comments on posts", err)
	}
	authored, err := s.comments.DeleteBySender(ctx, id)
	if err != nil {
		return fail("delete authored comments", err)
	}
	if _, err := s.posts.DeleteBySender(ctx, id); err != nil {
		return fail("delete posts", err)
	}
	tokens, err := s.tokens.InvalidateAllForUser(ctx, id)
	if err != nil {
		return fail("delete refresh tokens", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return lookupError(err, "User not found")
		}
		return fail("delete user", err)
	}

	s.logger.Info(ctx, "User deleted",
		"user_id", id,
		"posts", len(postIDs),
		"comments", onPosts+authored,
		"refresh_tokens", tokens,
	)
	return nil
}
