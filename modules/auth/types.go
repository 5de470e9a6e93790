package auth

import (
	"time"
)

// RegisterRequest is a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is a credential login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries an issued token pair. Login and refresh return the
// same shape.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// LoginResponse is the reply to a login request.
type LoginResponse = TokenResponse

// RefreshResponse is the reply to a token refresh request.
type RefreshResponse = TokenResponse

// UserResponse carries the public fields of a user account. Registration and
// user lookup return the same shape.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse is the reply to a registration request.
type RegisterResponse = UserResponse

// GetUserResponse is the reply to a user lookup.
type GetUserResponse = UserResponse

// ValidateTokenRequest is a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports the outcome of token validation. Failures are
// carried in Error rather than as service errors.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GetUserRequest is a user lookup request.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}
