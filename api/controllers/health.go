package controllers

import (
	"context"
	"net/http"

	"github.com/pid-digital/leads-backend/api/responses"
	"github.com/pid-digital/leads-backend/pkg/config"
	pkgerrors "github.com/pid-digital/leads-backend/pkg/errors"
	"github.com/pid-digital/leads-backend/pkg/logger"
)

// Pinger is anything readiness can poke: the database pool, the redis
// client, the Supabase REST client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PID-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers 200 only when every wired dependency responds.
// Nil pingers are dependencies the deployment chose not to run.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PID-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				status[name] = "down"
				wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable")
				responses.WriteError(r.Context(), logg, w, wrapped)
				return
			}
			status[name] = "up"
		}

		responses.WriteSuccess(w, status)
	}
}
