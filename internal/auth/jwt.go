package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the caller behind a session token.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 session tokens.
type JWTManager struct {
	secret  []byte
	timeout time.Duration
}

// NewJWTManager creates a JWTManager.
func NewJWTManager(secret string, timeout time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if timeout <= 0 {
		return nil, errors.New("JWT timeout must be positive")
	}
	return &JWTManager{secret: []byte(secret), timeout: timeout}, nil
}

// GenerateToken signs a token for the user.
func (m *JWTManager) GenerateToken(userID int64, username string, admin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry and returns the claims.
// Tokens signed with anything other than HMAC are rejected.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
