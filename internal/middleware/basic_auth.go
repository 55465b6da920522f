package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"TODOLIST_BACK-END/internal/auth"
	"TODOLIST_BACK-END/internal/utils"
)

// Authenticator resolves Basic Auth credentials to a username.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// BasicAuthMiddleware re-authenticates every request from its Authorization
// header and stores the username in the request context. Nothing reaches next
// unless the credentials are valid.
func BasicAuthMiddleware(next http.HandlerFunc, authenticator Authenticator, realm string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			utils.WriteUnauthorized(w, realm, "Not authenticated")
			return
		}

		username, err := authenticator.Authenticate(r.Context(), username, password)
		if errors.Is(err, auth.ErrUnauthorized) {
			utils.WriteUnauthorized(w, realm, "Incorrect username or password")
			return
		}
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("authentication lookup failed")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}

		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user", username)
		})
		next.ServeHTTP(w, r.WithContext(utils.WithUsername(r.Context(), username)))
	}
}
