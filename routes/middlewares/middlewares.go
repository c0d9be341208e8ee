package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/mbolis/survey-box/httpx"
	"github.com/mbolis/survey-box/log"
	"github.com/mbolis/survey-box/session"
)

// Admin middleware to check for the 'admin' role in an OAuth token.
func Admin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), admin).Handler(next)
	}
}

func admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)

		isAdmin := false
		if rolesClaim, ok := claims["roles"]; ok {
			roles := strings.Split(rolesClaim, ",")
			for _, role := range roles {
				if role == "admin" {
					isAdmin = true
					break
				}
			}
		}

		if !isAdmin {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "token.roles.not_admin")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireFlag lets a request through only when its session carries flag.
// Anyone else is redirected to loginPath.
func RequireFlag(sessions *session.Manager, flag string, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := sessions.Has(r, flag)
			if err != nil {
				httpx.LogInternalError(w, "session.get", err)
				return
			}
			if !ok {
				httpx.LogRedirect(w, r, "session.missing_flag."+flag, loginPath)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
