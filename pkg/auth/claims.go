package auth

import (
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AccountID string
	Email     string
	Role      enums.AccountRole
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients. The token is
// local session bookkeeping only; nothing server-side trusts the role claim.
type AccessTokenClaims struct {
	AccountID string            `json:"account_id"`
	Email     string            `json:"email"`
	Role      enums.AccountRole `json:"role"`
	jwt.RegisteredClaims
}
