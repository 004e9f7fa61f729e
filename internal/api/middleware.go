package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/accordo-app/accordo/internal/model"
	"github.com/accordo-app/accordo/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware проверяет Bearer-токен и кладёт личность вызывающего
// в контекст запроса
func AuthMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, service.ErrInvalidToken)
				return
			}

			identity, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, service.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только вызывающих с указанной ролью
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFrom(r)
			if !ok || identity.Role != role {
				respondError(w, service.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFrom(r *http.Request) (*service.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(*service.Identity)
	return identity, ok
}
