package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/marioskal/eshop-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserUUID string
	Username string
	Role     enums.Role
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients. The registered
// subject carries the username.
type AccessTokenClaims struct {
	UserUUID string     `json:"user_uuid"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
