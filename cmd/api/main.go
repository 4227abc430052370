package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forless-ai/forless-backend/config"
	"github.com/forless-ai/forless-backend/internal/auth"
	"github.com/forless-ai/forless-backend/internal/bootstrap"
	cronjob "github.com/forless-ai/forless-backend/internal/cron"
	"github.com/forless-ai/forless-backend/internal/projects"
	"github.com/forless-ai/forless-backend/internal/routing"
	"github.com/forless-ai/forless-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	if cfg.Database.Migrate {
		if err := bootstrap.RunMigrations(cfg.Database.DSN, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		// The site cache is an optimization; serve without it.
		log.Warn().Err(err).Msg("redis unavailable, site cache disabled")
		redisClient = nil
	}

	deps := bootstrap.RouterDeps{Cfg: cfg, DB: db, Redis: redisClient, Log: log}

	if cfg.Firebase.CredentialsPath != "" {
		authClient, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatal().Err(err).Msg("firebase init failed")
		}
		deps.Auth = authClient
	} else {
		log.Warn().Msg("no firebase credentials, using header identity (development only)")
	}

	scheduler := cronjob.NewScheduler(projects.NewRepo(db), log)
	scheduler.Start()
	defer scheduler.Stop()

	engine := bootstrap.BuildRouter(deps)

	// Host-based tenant routing wraps the whole engine so rewrites happen
	// before gin matches a route.
	handler := routing.Rewriter(routing.DomainConfig{
		RootDomain:     cfg.Domains.RootDomain,
		WildcardDomain: cfg.Domains.WildcardDomain,
		AppLabel:       cfg.Domains.AppLabel,
	}, log, engine)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("root_domain", cfg.Domains.RootDomain).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
