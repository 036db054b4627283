package controllers

import (
	"bytes"
	"net/http"

	"github.com/pid-digital/leads-backend/api/middleware"
	"github.com/pid-digital/leads-backend/api/responses"
	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/pkg/config"
	"github.com/pid-digital/leads-backend/pkg/db/models"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
	"github.com/pid-digital/leads-backend/pkg/logger"
	"github.com/pid-digital/leads-backend/web"
)

type homeData struct {
	GroupLink string
}

type adminData struct {
	UserEmail string
	Query     string
	Contacts  []models.Contact
}

// HomePage serves the public capture form.
func HomePage(cfg *config.Config, renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, "home.html", homeData{GroupLink: cfg.WhatsApp.GroupLink})
	}
}

// LoginPage serves the admin login form.
func LoginPage(renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, renderer, logg, "login.html", nil)
	}
}

// AdminPage renders the console with the current, optionally filtered,
// listing. Cache-bypassing refresh stays on the JSON endpoint so a failed
// refresh leaves the rendered view alone.
func AdminPage(svc contacts.Service, renderer *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query().Get("q")
		data := adminData{
			UserEmail: middleware.UserEmailFromContext(r.Context()),
			Query:     query,
			Contacts:  contacts.Filter(rows, query),
		}
		renderPage(w, r, renderer, logg, "admin.html", data)
	}
}

// renderPage buffers the template so a render failure can still answer
// with an error instead of a half-written page.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *web.Renderer, logg *logger.Logger, name string, data any) {
	if renderer == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "renderer unavailable"))
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil && logg != nil {
		logg.Error(r.Context(), "page.write_failed", err)
	}
}
