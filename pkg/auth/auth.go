// Package auth provides bcrypt API-key hashing and JWT
// generation/parsing. This is a leaf package with no domain
// dependencies. Used by the token handler and the API middleware.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// BCryptCost is the bcrypt work factor for API-key hashes.
const BCryptCost = 12

// DefaultTokenExpiry applies when an Authenticator is created with a
// non-positive expiry.
const DefaultTokenExpiry = 24 * time.Hour

// Claims are the JWT claims issued by this service. ClientID is the
// caller-supplied identifier echoed into the audit trail.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// Authenticator signs and validates tokens with a shared HS256 secret.
type Authenticator struct {
	secret []byte
	expiry time.Duration
}

// NewAuthenticator creates an Authenticator. An empty secret is allowed
// here; callers decide whether auth is enforced at all.
func NewAuthenticator(secret string, expiry time.Duration) *Authenticator {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &Authenticator{secret: []byte(secret), expiry: expiry}
}

// GenerateToken creates a signed JWT for clientID.
func (a *Authenticator) GenerateToken(clientID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and extracts its claims.
func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// Reject algorithm substitution: only HMAC is acceptable here.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT claims or signature")
	}
	return claims, nil
}

// HashAPIKey hashes a plaintext API key with bcrypt. The hash, not the
// key, goes into configuration.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// VerifyAPIKey verifies a plaintext API key against a bcrypt hash.
// Returns false, never an error, for malformed hashes.
func VerifyAPIKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
