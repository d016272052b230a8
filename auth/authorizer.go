package auth

import (
	"aptos-board/contract"
	"log/slog"
	"slices"
	"strings"
)

// TokenAuthorizer grants the admin capability to the wallet named in a signed token.
// The token is checked on every call so an expired token stops granting access.
type TokenAuthorizer struct {
	log    *slog.Logger
	secret []byte
	token  string
}

var _ contract.Authorizer = (*TokenAuthorizer)(nil)

func NewTokenAuthorizer(log *slog.Logger, secret []byte, token string) *TokenAuthorizer {
	return &TokenAuthorizer{log: log, secret: secret, token: token}
}

func (a *TokenAuthorizer) IsAdmin(address string) bool {
	if a.token == "" || address == "" {
		return false
	}
	claims, err := ValidateToken(a.secret, a.token)
	if err != nil {
		a.log.Warn("Admin token rejected", "error", err)
		return false
	}
	// Wallet addresses are hex, case carries no meaning
	if !strings.EqualFold(claims.Address, address) {
		return false
	}
	return slices.Contains(claims.Roles, RoleAdmin)
}
