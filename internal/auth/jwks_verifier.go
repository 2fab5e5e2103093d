package auth

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier проверяет подпись по опубликованному набору публичных ключей
// (EdDSA у внешней системы аутентификации). keyfunc кэширует ключи в процессе
// и лениво обновляет набор при незнакомом kid; параллельные обновления при
// промахе кэша допустимы.
type JWKSVerifier struct {
	kf keyfunc.Keyfunc
}

func NewJWKSVerifier(ctx context.Context, jwksURL string) (*JWKSVerifier, error) {
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("загрузка JWKS: %w", err)
	}
	return &JWKSVerifier{kf: kf}, nil
}

func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	claims := &Claims{}
	// aud намеренно не проверяется, см. SecretVerifier
	token, err := jwt.ParseWithClaims(tokenString, claims, v.kf.Keyfunc)
	if err != nil {
		return nil, mapParseError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return identityFromClaims(claims)
}
