package jwt

import (
	jwt2 "github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const UserClaimKey ctxKey = "user_claims"

// UserClaims is the payload of operator tokens. Tokens are minted by the
// login service and only verified here.
type UserClaims struct {
	jwt2.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func CreateToken(secret []byte, claims *UserClaims) (string, error) {
	return jwt2.NewWithClaims(jwt2.SigningMethodHS256, claims).SignedString(secret)
}
