// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carterperez-dev/cardfolio/internal/core"
)

const (
	ActorKey contextKey = "actor"
)

// TokenVerifier decodes and validates an access token. Every failure mode
// surfaces as the same error kind so callers cannot distinguish an expired
// token from a tampered one.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*core.Actor, error)
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			actor, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, *actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards admin-only routes. Must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}

		if !actor.IsAdmin {
			core.JSONError(w, core.ForbiddenError("administrator access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireBusiness guards routes reserved for business or admin accounts.
func RequireBusiness(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}

		if !actor.CanPublish() {
			core.JSONError(
				w,
				core.ForbiddenError("business account required"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetActor(ctx context.Context) (core.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(core.Actor)
	return actor, ok
}

func GetUserID(ctx context.Context) string {
	if actor, ok := GetActor(ctx); ok {
		return actor.ID
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}
