package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-web/internal/config"
	"todo-web/internal/controller"
	"todo-web/internal/database"
	"todo-web/internal/password"
	"todo-web/internal/queue"
	"todo-web/internal/repository"
	"todo-web/internal/routes"
	"todo-web/internal/session"
	"todo-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Variables already in the environment win over .env.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Get()
	logger.SetDefault(logger.New(os.Stdout, cfg.LogLevel))

	db, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "Database not available; exiting", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	ready := map[string]func(context.Context) error{
		"database": db.PingContext,
	}

	// Logout revocations are shared through Redis when it is reachable.
	var revoker session.Revoker
	if rdb, err := session.NewRedisClient(ctx, cfg); err != nil {
		logger.Warn(ctx, "Redis unavailable; session revocation is process-local", "error", err)
		revoker = session.NewMemoryRevoker()
	} else {
		defer rdb.Close()
		revoker = session.NewRedisRevoker(rdb)
		ready["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	sessions, err := session.NewManager(session.Options{
		Secret:  cfg.SessionSecret,
		TTL:     cfg.SessionTTL,
		Secure:  cfg.CookieSecure,
		Revoker: revoker,
	})
	if err != nil {
		logger.Error(ctx, "Session manager misconfigured", "error", err)
		os.Exit(1)
	}

	var events controller.Publisher = queue.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		queue.EnsureTopic(ctx, cfg)
		pub := queue.NewKafkaPublisher(ctx, cfg)
		defer pub.Close()
		events = pub
	} else {
		logger.Info(ctx, "Activity events disabled (no Kafka brokers)")
	}

	users := repository.NewUsers(db)
	ctl := controller.New(controller.Deps{
		Users:              users,
		Items:              repository.NewItems(db),
		Sessions:           sessions,
		Hasher:             password.NewHasher(cfg.PasswordIterations),
		Events:             events,
		GenericLoginErrors: cfg.LoginGenericErrors,
		Ready:              ready,
	})

	gin.SetMode(gin.ReleaseMode)
	handler, err := routes.Router(ctl, sessions, users)
	if err != nil {
		logger.Error(ctx, "Router setup failed", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}
