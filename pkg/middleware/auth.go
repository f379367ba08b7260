package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/auth"
	"github.com/Kantor012/Product-Catalog/pkg/response"
)

// UserLoader resolves a token subject (hex ObjectID) to a live user document
// with sensitive fields stripped. Implemented by UserRepository.
type UserLoader interface {
	FindPublicByHexID(ctx context.Context, id string) (models.User, error)
}

type userCtxKey struct{}

// UserFromCtx returns the authenticated user stored by Protect.
func UserFromCtx(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(models.User)
	return u, ok
}

// WithUser stores a user in ctx. Exported for handler tests.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// Protect validates the bearer token and loads its subject into the request
// context. Missing token, invalid token, and a deleted subject all fail the
// same way: the caller learns only that they are not authorized.
func Protect(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "Not authorized, no token")
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Unauthorized(w, "Not authorized, token failed")
				return
			}

			user, err := users.FindPublicByHexID(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w, "Not authorized, token failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Admin requires the context user (set by Protect) to carry the admin flag.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromCtx(r.Context())
		if !ok || !user.IsAdmin {
			response.Unauthorized(w, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}
