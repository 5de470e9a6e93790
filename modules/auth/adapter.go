package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/gtd-tracker/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the interface other modules use for token validation and user
// lookup.
type AuthPort interface {
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// authAdapter wraps the auth ServiceContainer for type-safe cross-module
// calls.
type authAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new adapter over the auth module's service
// container.
func NewAuthAdapter(container mono.ServiceContainer) AuthPort {
	if container == nil {
		panic("auth adapter requires non-nil ServiceContainer")
	}
	return &authAdapter{container: container}
}

// call invokes an auth service and decodes the reply into resp.
func (a *authAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// ValidateToken validates an access token and returns its claims.
func (a *authAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	var resp ValidateTokenResponse
	if err := a.call(ctx, "validate-token", &ValidateTokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}
	return &domain.Claims{UserID: resp.UserID, Email: resp.Email}, nil
}

// GetUser retrieves a user by ID.
func (a *authAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var resp GetUserResponse
	if err := a.call(ctx, "get-user", &GetUserRequest{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        resp.ID,
		Email:     resp.Email,
		Name:      resp.Name,
		CreatedAt: resp.CreatedAt,
	}, nil
}
