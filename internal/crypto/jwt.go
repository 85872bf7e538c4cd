package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// TokenUser is the identity embedded in every token.
type TokenUser struct {
	ID string `json:"id"`
}

// Claims is the token payload: {"user":{"id":...},"iat":...}.
// Tokens carry no expiry.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 token for the given user.
func GenerateToken(userID, secret string) (string, error) {
	claims := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a token string, returning the claims if valid.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
