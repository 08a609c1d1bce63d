package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims *domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(role domain.Role, expiresIn time.Duration) *domain.Claims {
	return &domain.Claims{
		UserID:   "42",
		UserName: "Nimal",
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestService_ValidateToken(t *testing.T) {
	svc := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "valid marketing manager",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(domain.RoleMarketingManager, time.Hour))
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(domain.RoleMarketingManager, -time.Hour))
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor(domain.RoleGeneralManager, time.Hour))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "no role",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("", time.Hour))
			},
			wantErr: ErrMissingRole,
		},
		{
			name: "unknown role",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("pilot", time.Hour))
			},
			wantErr: ErrUnknownRole,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not.a.jwt" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "42", claims.UserID)
			assert.Equal(t, domain.RoleMarketingManager, claims.UserRole)
		})
	}
}

func TestService_ValidateToken_NoSecret(t *testing.T) {
	svc := NewService(&config.Config{})

	_, err := svc.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
