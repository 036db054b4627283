package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/pid-digital/leads-backend/api/controllers"
	"github.com/pid-digital/leads-backend/api/routes"
	"github.com/pid-digital/leads-backend/internal/auth"
	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/pkg/config"
	"github.com/pid-digital/leads-backend/pkg/db"
	"github.com/pid-digital/leads-backend/pkg/logger"
	"github.com/pid-digital/leads-backend/pkg/metrics"
	"github.com/pid-digital/leads-backend/pkg/redis"
	"github.com/pid-digital/leads-backend/pkg/supabase"
	"github.com/pid-digital/leads-backend/web"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	supabaseClient, err := supabase.New(context.Background(), cfg.Supabase, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap supabase client", err)
		os.Exit(1)
	}

	var closers []func() error
	readiness := map[string]controllers.Pinger{"supabase": supabaseClient}

	// The default deployment stores contacts in Supabase; postgres/sqlite
	// run against a directly owned table instead.
	var store contacts.Store = contacts.NewSupabaseStore(supabaseClient, cfg.Supabase.ContactsTable)
	if cfg.Storage.UsesDatabase() {
		dbClient, err := db.New(context.Background(), cfg.Storage.Driver, cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		readiness["database"] = dbClient
		store = contacts.NewRepository(dbClient.DB())
	}

	var cache contacts.ListingCache
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readiness["redis"] = redisClient
		cache = contacts.NewRedisListingCache(redisClient, logg)
	}

	contactService, err := contacts.NewService(store, cache)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.NewSupabaseProvider(supabaseClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logg.Error(context.Background(), "failed to parse page templates", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			Renderer:  renderer,
			Auth:      authService,
			Contacts:  contactService,
			Metrics:   httpMetrics,
			Gatherer:  registry,
			Readiness: readiness,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		for _, closeFn := range closers {
			err = multierr.Append(err, closeFn())
		}
		if err != nil {
			logg.Error(ctx, "shutdown finished with errors", err)
			os.Exit(1)
		}
	}
}
