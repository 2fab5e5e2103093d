package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token has expired")

// Identity — подтверждённая личность из bearer-токена.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type TokenVerifier interface {
	Verify(ctx context.Context, tokenString string) (*Identity, error)
}

// Claims — полезная нагрузка токена внешней системы аутентификации.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func identityFromClaims(claims *Claims) (*Identity, error) {
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

func mapParseError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return ErrInvalidToken
}
