package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pid-digital/leads-backend/api/controllers"
	"github.com/pid-digital/leads-backend/api/middleware"
	"github.com/pid-digital/leads-backend/internal/auth"
	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/pkg/config"
	"github.com/pid-digital/leads-backend/pkg/logger"
	"github.com/pid-digital/leads-backend/pkg/metrics"
	"github.com/pid-digital/leads-backend/web"
)

// Deps carries everything the router wires together. Gatherer and the
// readiness pingers are optional; nil just drops the endpoint content.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	Renderer  *web.Renderer
	Auth      auth.Service
	Contacts  contacts.Service
	Metrics   *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
	Readiness map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	// Public surface: the capture form and its submission endpoint.
	r.Get("/", controllers.HomePage(cfg, deps.Renderer, logg))
	r.Post("/api/v1/contacts", controllers.ContactsSubmit(deps.Contacts, logg))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(cfg.Session, deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(cfg.Session, deps.Auth, logg))
	})

	// Login page bounces already authenticated admins to the console.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfSession(cfg.Session, deps.Auth, logg))
		r.Get("/login", controllers.LoginPage(deps.Renderer, logg))
	})

	// Console pages: anything under /admin needs a live session.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireSession(cfg.Session, deps.Auth, logg))
		r.Get("/", controllers.AdminPage(deps.Contacts, deps.Renderer, logg))
		r.Get("/export", controllers.ContactsExport(deps.Contacts, logg))
		r.Get("/*", controllers.AdminPage(deps.Contacts, deps.Renderer, logg))
	})

	// Console data endpoints answer 401 instead of redirecting.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSessionAPI(cfg.Session, deps.Auth, logg))
		r.Get("/api/v1/contacts", controllers.ContactsList(deps.Contacts, logg))
		r.Delete("/api/v1/contacts/{id}", controllers.ContactsDelete(deps.Contacts, logg))
	})

	return r
}
