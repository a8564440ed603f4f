package model

import "github.com/golang-jwt/jwt/v5"

// Token kinds. An endpoint that requires an access token rejects a refresh
// token and vice versa, even though both are signed with the same key.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// AppClaims is the JWT payload. Subject carries the user id, ID carries
// the jti used as the revocation key.
type AppClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}
