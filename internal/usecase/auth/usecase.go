package auth

import (
	"context"

	"go.uber.org/zap"

	useruc "user-directory-service/internal/usecase/user"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/hash"
	"user-directory-service/pkg/token"
)

// LoginRequest represents the credentials presented on login.
type LoginRequest struct {
	Name     string
	Password string
}

// LoginResponse carries the bearer token minted for an authenticated user.
type LoginResponse struct {
	AccessToken string
}

// Usecase implements authentication: it resolves a name to a stored account,
// verifies the password against the stored hash, and mints a bearer token
// whose subject is the user id.
type Usecase struct {
	repo   useruc.Repository
	hasher hash.Hasher
	tokens *token.Issuer
	log    *zap.Logger
}

// New creates a new authentication usecase.
func New(repo useruc.Repository, h hash.Hasher, tokens *token.Issuer, log *zap.Logger) *Usecase {
	return &Usecase{repo: repo, hasher: h, tokens: tokens, log: log}
}

// Login verifies name and password and returns a signed token on success.
// An unknown name and a wrong password both fail with the same
// unauthenticated error so the caller cannot probe which accounts exist;
// only the logs carry the distinction.
func (uc *Usecase) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if in.Name == "" || in.Password == "" {
		uc.log.Warn("login validation failed", zap.String("reason", "missing name or password"))
		return nil, apperrors.NewInvalidArgumentError("", "name and password are required")
	}

	u, err := uc.repo.FindByName(ctx, in.Name)
	if err != nil {
		uc.log.Error("failed to look up user for login", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	if u == nil {
		uc.log.Warn("login failed", zap.String("name", in.Name), zap.String("reason", "unknown name"))
		return nil, apperrors.NewUnauthenticatedError("invalid credentials")
	}

	if !uc.hasher.Verify(in.Password, u.PasswordHash) {
		uc.log.Warn("login failed", zap.String("name", in.Name), zap.String("reason", "password mismatch"))
		return nil, apperrors.NewUnauthenticatedError("invalid credentials")
	}

	signed, err := uc.tokens.Issue(u.ID)
	if err != nil {
		uc.log.Error("failed to issue token", zap.Int64("id", u.ID), zap.Error(err))
		return nil, err
	}

	uc.log.Info("user authenticated", zap.Int64("id", u.ID))
	return &LoginResponse{AccessToken: signed}, nil
}
