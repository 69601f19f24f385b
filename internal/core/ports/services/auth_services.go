package services

import (
	"context"
	"time"

	"github.com/kvyts/library_lending_app/internal/core/domain"
	"golang.org/x/oauth2"
)

// TokenSvcFacade issues and validates the tokens used by the auth surface.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT access token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and its expiry.
	// Only the hash of the token is persisted.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a presented refresh token against the
	// stored hash and expiry, returning the user on success.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth code-exchange flow.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken trades an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateIDToken verifies the ID token and returns the verified email and name.
	ValidateIDToken(ctx context.Context, rawIDToken string) (email string, name string, err error)
}
