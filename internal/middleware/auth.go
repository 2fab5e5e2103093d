package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"todoApi/internal/auth"
	"todoApi/internal/logger"

	"go.uber.org/zap"
)

const IdentityKey contextKey = "identity"

// Authenticate проверяет bearer-токен и кладёт Identity в контекст.
// Любой сбой проверки — 401, до хранилища такой запрос не доходит.
func Authenticate(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "отсутствует заголовок Authorization")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, r, "ожидается схема Bearer")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				unauthorized(w, r, "пустой токен")
				return
			}

			identity, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				msg := "невалидный токен"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "токен просрочен"
				}

				logger.Warn("HTTP: Отклонён bearer-токен",
					zap.Error(err),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("client_ip", r.RemoteAddr))

				unauthorized(w, r, msg)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	json.NewEncoder(w).Encode(map[string]any{
		"error":      message,
		"request_id": GetRequestID(r.Context()),
	})
}
