package middleware

import (
	"net/http"

	"github.com/pid-digital/leads-backend/api/responses"
	"github.com/pid-digital/leads-backend/internal/auth"
	"github.com/pid-digital/leads-backend/pkg/config"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
	"github.com/pid-digital/leads-backend/pkg/logger"
)

// SessionToken reads the raw session cookie. Missing cookie means no
// session; the guard decides what to do with that.
func SessionToken(r *http.Request, cfg config.SessionConfig) string {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// checkSession resolves the cookie into an identity. Any failure, the
// backend being unreachable included, reports no valid session.
func checkSession(r *http.Request, cfg config.SessionConfig, svc auth.Service, logg *logger.Logger) (*auth.Identity, string, bool) {
	token := SessionToken(r, cfg)
	if token == "" {
		return nil, "", false
	}

	identity, err := svc.Check(r.Context(), token)
	if err != nil {
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			if logg != nil {
				logg.Error(r.Context(), "session.check_failed", err)
			}
		}
		return nil, "", false
	}
	return identity, token, true
}

// RequireSession protects admin pages. Without a valid session the browser
// is sent to the login page; the check failing counts as no session.
func RequireSession(cfg config.SessionConfig, svc auth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, token, ok := checkSession(r, cfg, svc, logg)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := WithIdentity(r.Context(), identity.ID, identity.Email)
			ctx = WithSessionToken(ctx, token)
			if logg != nil {
				ctx = logg.WithUserEmail(ctx, identity.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectIfSession keeps an already authenticated admin off the login
// page and sends them to the console instead.
func RedirectIfSession(cfg config.SessionConfig, svc auth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, _, ok := checkSession(r, cfg, svc, logg); ok {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSessionAPI protects the admin JSON endpoints. API clients get a
// 401 envelope rather than a redirect.
func RequireSessionAPI(cfg config.SessionConfig, svc auth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, token, ok := checkSession(r, cfg, svc, logg)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session"))
				return
			}

			ctx := WithIdentity(r.Context(), identity.ID, identity.Email)
			ctx = WithSessionToken(ctx, token)
			if logg != nil {
				ctx = logg.WithUserEmail(ctx, identity.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
