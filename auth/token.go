package auth

import (
	"aptos-board/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer    = "aptos-board"
	RoleAdmin = "admin"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	Address string   `json:"address"`
	Roles   []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT granting roles to a wallet address.
func GenerateToken(secret []byte, address string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		Address: address,
		Roles:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	// HS256 (HMAC with SHA256)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates the signature, issuer and expiration of a JWT string.
func ValidateToken(secret []byte, tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.ErrInvalidToken
}
