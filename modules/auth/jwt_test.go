package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "gtd-tracker-test",
	}
}

func TestJWTManager_TokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name     string
		generate func(userID, email string) (string, error)
		validate func(token string) (*JWTClaims, error)
		wantType string
	}{
		{
			name:     "access token",
			generate: manager.GenerateAccessToken,
			validate: manager.ValidateAccessToken,
			wantType: "access",
		},
		{
			name:     "refresh token",
			generate: manager.GenerateRefreshToken,
			validate: manager.ValidateRefreshToken,
			wantType: "refresh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.generate("user-123", "user@example.com")
			if err != nil {
				t.Fatalf("generate error = %v", err)
			}
			if token == "" {
				t.Fatal("generated token is empty")
			}

			claims, err := tt.validate(token)
			if err != nil {
				t.Fatalf("validate error = %v", err)
			}
			if claims.UserID != "user-123" {
				t.Errorf("claims.UserID = %q, want user-123", claims.UserID)
			}
			if claims.Email != "user@example.com" {
				t.Errorf("claims.Email = %q, want user@example.com", claims.Email)
			}
			if claims.TokenType != tt.wantType {
				t.Errorf("claims.TokenType = %q, want %q", claims.TokenType, tt.wantType)
			}
			if claims.Issuer != "gtd-tracker-test" {
				t.Errorf("claims.Issuer = %q, want gtd-tracker-test", claims.Issuer)
			}
		})
	}
}

func TestJWTManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	access, err := manager.GenerateAccessToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := manager.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateRefreshToken(access) error = %v, want ErrInvalidToken", err)
	}
	if _, err := manager.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAccessToken(refresh) error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_RejectsMalformedTokens(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	for _, token := range []string{
		"",
		"not.a.valid.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
	} {
		if _, err := manager.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) error = nil, want failure", token)
		}
	}
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	issuing := NewJWTManager(testJWTConfig())

	otherConfig := testJWTConfig()
	otherConfig.SecretKey = "a-different-secret"
	validating := NewJWTManager(otherConfig)

	token, err := issuing.GenerateAccessToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := validating.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = time.Millisecond
	manager := NewJWTManager(config)

	token, err := manager.GenerateAccessToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTManager_AccessTokenDuration(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = 30 * time.Minute
	manager := NewJWTManager(config)

	if got := manager.AccessTokenDuration(); got != 30*60 {
		t.Errorf("AccessTokenDuration() = %d, want %d", got, 30*60)
	}
}
