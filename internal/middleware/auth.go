package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/brainbox/internal/ctxkeys"
	"github.com/templui/brainbox/internal/service"
)

// TokenHeader is the header clients send their bearer token in.
// Authorization: Bearer <token> is accepted as well.
const TokenHeader = "token"

// RequireAuth runs the auth gate before next: a missing token is 401, a token
// that fails verification is 403. On success the user id is put in the context.
func RequireAuth(tokenService *service.TokenService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, err := tokenService.Authenticate(requestToken(r))
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					writeError(w, http.StatusUnauthorized, "Authentication required")
					return
				}

				slog.Debug("rejected token", "error", err, "path", maskedPath(r.URL.Path))
				if errors.Is(err, service.ErrTokenExpired) {
					writeError(w, http.StatusForbidden, "Token expired")
					return
				}
				writeError(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next(w, r.WithContext(ctx))
		}
	}
}

// requestToken returns the presented credential, or "" if there is none.
func requestToken(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}

	authorization := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authorization, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return token
	}

	// Some other scheme: still a presented credential, and it will fail verification
	return authorization
}
