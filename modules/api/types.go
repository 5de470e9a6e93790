package api

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskBody is the HTTP body for task creation. Dates arrive as
// YYYY-MM-DD or RFC 3339 strings and are parsed at this edge.
type CreateTaskBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Priority    bool   `json:"priority"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskBody is the HTTP body for task edits. Absent fields are left
// untouched.
type UpdateTaskBody struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CategoryID   *string `json:"category_id"`
	Priority     *bool   `json:"priority"`
	DueDate      *string `json:"due_date"`
	Status       *string `json:"status"`
	AutoComplete *bool   `json:"auto_complete"`
	ReviewOn     *string `json:"review_on"`
}

// CreateActionBody is the HTTP body for next-action creation.
type CreateActionBody struct {
	Title string `json:"title"`
}

// ToggleActionBody is the HTTP body for a next-action completion toggle.
type ToggleActionBody struct {
	Completed bool `json:"completed"`
}

// CreateWorkBody is the HTTP body for logging work.
type CreateWorkBody struct {
	Description string   `json:"description"`
	HoursSpent  *float64 `json:"hours_spent"`
}

// UpdateWorkBody is the HTTP body for editing a work-done description.
type UpdateWorkBody struct {
	Description string `json:"description"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
