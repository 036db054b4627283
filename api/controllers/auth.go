package controllers

import (
	"net/http"
	"time"

	"github.com/pid-digital/leads-backend/api/middleware"
	"github.com/pid-digital/leads-backend/api/responses"
	"github.com/pid-digital/leads-backend/api/validators"
	"github.com/pid-digital/leads-backend/internal/auth"
	"github.com/pid-digital/leads-backend/pkg/config"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
	"github.com/pid-digital/leads-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin exchanges credentials for a session cookie. The token never
// reaches page scripts; the cookie carries it on every navigation.
func AuthLogin(cfg config.SessionConfig, svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, session.AccessToken, session.ExpiresAt))
		responses.WriteSuccess(w, map[string]string{"status": "authenticated"})
	}
}

// AuthLogout revokes the backend session and expires the cookie. A failed
// revocation keeps the cookie: the session is still live on the backend,
// and the console reports the failure without navigating away.
func AuthLogout(cfg config.SessionConfig, svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		if token == "" {
			token = middleware.SessionToken(r, cfg)
		}

		if token != "" {
			if err := svc.Logout(r.Context(), token); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		http.SetCookie(w, sessionCookie(cfg, "", time.Unix(0, 0)))
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

func sessionCookie(cfg config.SessionConfig, token string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
