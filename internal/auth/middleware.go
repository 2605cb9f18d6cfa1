package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const userKey contextKey = "auth_user"

// UserFromContext returns the authenticated user injected by Middleware
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// WithUser returns a context carrying the authenticated user.
// Exposed for handler tests.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Middleware validates the bearer token and loads the user into the
// request context. Requests without a valid token get 401.
func Middleware(tokens *TokenManager, userRepo repository.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				unauthorized(w, domain.ErrMsgTokenInvalid)
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			user, err := userRepo.GetUserByID(r.Context(), userID)
			if err != nil {
				logger.FromContext(r.Context()).Warn("token subject not found", "user_id", userID)
				unauthorized(w, domain.ErrMsgTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
