// Package auth holds the authentication and authorization core: JWT minting
// and verification, the refresh-token lifecycle, bearer header parsing and
// the ownership policy.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/refreshtokens"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService mints and verifies access tokens and manages the lifecycle of
// persisted refresh tokens. It is safe for concurrent use.
type TokenService struct {
	refreshTokens                refreshtokens.Repository
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// Option customizes a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService builds a TokenService from secrets and TTLs in cfg.
func NewTokenService(cfg *config.Config, repo refreshtokens.Repository, opts ...Option) *TokenService {
	s := &TokenService{
		refreshTokens:                repo,
		accessSecret:                 []byte(cfg.AccessTokenSecret),
		refreshSecret:                []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueTokenPair mints an access and a refresh token for userID and persists
// the refresh token.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	now := s.now()

	access, err := GenerateToken(userID, s.accessSecret, now, s.accessTokenValidityDuration, "")
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	expires := now.Add(s.refreshTokenValidityDuration)
	refresh, err := GenerateToken(userID, s.refreshSecret, now, s.refreshTokenValidityDuration, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.refreshTokens.Create(ctx, userID, refresh, expires); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken returns the user id carried by a valid access token.
func (s *TokenService) VerifyAccessToken(token string) (string, error) {
	if token == "" {
		return "", common.ErrMissingToken
	}
	return GetUserIDFromToken(token, s.accessSecret, s.now)
}

// RotateRefreshToken consumes a valid refresh token and returns a new pair.
// The stored record is deleted before the new pair is issued; when the
// delete removes nothing (already used, logged out, or never issued) the
// call fails with common.ErrTokenRevoked, which wraps common.ErrInvalidToken.
func (s *TokenService) RotateRefreshToken(ctx context.Context, token string) (*TokenPair, error) {
	if token == "" {
		return nil, common.ErrMissingToken
	}

	userID, err := GetUserIDFromToken(token, s.refreshSecret, s.now)
	if err != nil {
		return nil, err
	}

	consumed, err := s.refreshTokens.DeleteForUser(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !consumed {
		return nil, common.ErrTokenRevoked
	}

	return s.IssueTokenPair(ctx, userID)
}

// InvalidateRefreshToken deletes token from the store. Unknown tokens are
// not an error.
func (s *TokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrMissingToken
	}
	if err := s.refreshTokens.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// InvalidateAllForUser deletes every refresh token of userID.
func (s *TokenService) InvalidateAllForUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.refreshTokens.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete refresh tokens: %w", err)
	}
	return n, nil
}
