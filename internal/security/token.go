package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token validation errors.
var (
	// ErrInvalidToken indicates a token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token has expired.
	ErrExpiredToken = errors.New("token expired")
)

// ProviderClaims defines JWT claims for identity-provider sessions.
type ProviderClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateProviderToken signs a provider-session JWT and returns the token
// together with its unique token id, which sign-out uses for revocation.
func GenerateProviderToken(secret, userID, email string, expiry time.Duration) (token string, tokenID string, err error) {
	now := time.Now().UTC()
	tokenID = uuid.NewString()
	claims := ProviderClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	signed, errSign := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if errSign != nil {
		return "", "", errSign
	}
	return signed, tokenID, nil
}

// ParseProviderToken validates a provider-session JWT and returns its claims.
func ParseProviderToken(secret, tokenString string) (*ProviderClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ProviderClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*ProviderClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
