package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User   models.UserSummary
	Tokens *auth.TokenPair
}

// AuthService handles registration, login, refresh-token rotation and logout.
type AuthService struct {
	users  users.Repository
	tokens *auth.TokenService
	logger logging.Logger
}

func NewAuthService(m repomanager.RepositoryManager, tokens *auth.TokenService, logger logging.Logger) *AuthService {
	return &AuthService{users: m.Users(), tokens: tokens, logger: logger.With("module", "auth")}
}

// Register creates a user with a bcrypt-hashed password and signs them in.
func (s *AuthService) Register(ctx context.Context, userName, email, password string) (res *AuthResult, err error) {
	ctx, span := startSpan(ctx, "AuthService.Register")
	defer func() { endSpan(span, err) }()

	userName, email = strings.TrimSpace(userName), strings.TrimSpace(email)
	if userName == "" || email == "" || password == "" {
		return nil, validation("All fields are required")
	}

	exists, err := s.users.ExistsByEmailOrUserName(ctx, email, userName)
	if err != nil {
		return nil, common.WrapError(common.KindInternal, "Error registering user", err)
	}
	if exists {
		return nil, common.NewError(common.KindConflict, "User already exists")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, common.WrapError(common.KindInternal, "Error registering user", err)
	}

	user, err := s.users.Create(ctx, &models.User{UserName: userName, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WrapError(common.KindConflict, "User already exists", err)
		}
		return nil, common.WrapError(common.KindInternal, "Error registering user", err)
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, common.WrapError(common.KindInternal, "Error registering user", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID, "username", user.UserName)
	return &AuthResult{User: user.Summary(), Tokens: pair}, nil
}

// Login verifies credentials and returns a fresh token pair. Missing fields,
// unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (res *AuthResult, err error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer func() { endSpan(span, err) }()

	invalid := common.NewError(common.KindUnauthorized, "Invalid credentials")

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalid
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, invalid
		}
		return nil, common.WrapError(common.KindInternal, "Error logging in", err)
	}
	if !checkPassword(user.PasswordHash, password) {
		return nil, invalid
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, common.WrapError(common.KindInternal, "Error logging in", err)
	}

	s.logger.Info(ctx, "Logged in", "user_id", user.ID)
	return &AuthResult{User: user.Summary(), Tokens: pair}, nil
}

// Refresh rotates refreshToken into a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (pair *auth.TokenPair, err error) {
	ctx, span := startSpan(ctx, "AuthService.Refresh")
	defer func() { endSpan(span, err) }()

	pair, err = s.tokens.RotateRefreshToken(ctx, refreshToken)
	switch {
	case err == nil:
		return pair, nil
	case errors.Is(err, common.ErrMissingToken):
		return nil, common.WrapError(common.KindUnauthorized, "Refresh token required", err)
	case errors.Is(err, common.ErrTokenRevoked):
		s.logger.Warn(ctx, "Refresh token reuse or unknown token rejected")
		return nil, common.WrapError(common.KindForbidden, "Invalid refresh token", err)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return nil, common.WrapError(common.KindForbidden, "Invalid or expired refresh token", err)
	default:
		return nil, common.WrapError(common.KindInternal, "Error refreshing token", err)
	}
}

// Logout deletes refreshToken. Unknown tokens succeed.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (err error) {
	ctx, span := startSpan(ctx, "AuthService.Logout")
	defer func() { endSpan(span, err) }()

	if err := s.tokens.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrMissingToken) {
			return common.WrapError(common.KindValidation, "Refresh token required", err)
		}
		return common.WrapError(common.KindInternal, "Error logging out", err)
	}
	return nil
}
