package services

import (
	"context"
	"time"

	"github.com/kvyts/library_lending_app/internal/core/domain"
	"github.com/kvyts/library_lending_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a specific user by their username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users (staff only; enforced by caller).
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)

	// ResolveRequester builds the identity-plus-role value passed to every
	// authorization decision from an authenticated user ID.
	ResolveRequester(ctx context.Context, userID string) (domain.Requester, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user's mutable fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requester domain.Requester) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string, requester domain.Requester) error

	// FindOrCreateOAuthUser retrieves the user for a federated identity,
	// creating one on first sign-in.
	FindOrCreateOAuthUser(ctx context.Context, email string, name string) (*domain.User, error)

	// UpdateRefreshToken stores the hash of a newly issued refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthenticatorSvc verifies credentials.
type UserAuthenticatorSvc interface {
	// AuthenticateUser checks username/password and returns the user on success.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
