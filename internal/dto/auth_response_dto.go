package dto

import "time"

// LoginRequest defines the credentials for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and its expiry. The refresh
// token travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshRequest identifies the user asking for a new access token. The
// refresh token itself is read from the cookie.
type RefreshRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ExchangeCodeRequest carries the authorization code from the Google OAuth
// redirect, posted by the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
