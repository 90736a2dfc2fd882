package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campusclubs/club-blog-service/internal/api/http"
	"github.com/campusclubs/club-blog-service/internal/api/http/handlers"
	"github.com/campusclubs/club-blog-service/internal/auth"
	"github.com/campusclubs/club-blog-service/internal/config"
	"github.com/campusclubs/club-blog-service/internal/events"
	"github.com/campusclubs/club-blog-service/internal/mailer"
	"github.com/campusclubs/club-blog-service/internal/observability"
	"github.com/campusclubs/club-blog-service/internal/persistence"
	"github.com/campusclubs/club-blog-service/internal/repository"
	"github.com/campusclubs/club-blog-service/internal/service"
	"github.com/campusclubs/club-blog-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	blogRepo := repository.NewBlogRepository(pool)
	actionRepo := repository.NewAdminActionRepository(pool)

	ledger := auth.NewLedger(tokenRepo)
	tokenMgr := auth.NewTokenManager(
		cfg.Auth.JWTAccessSecret,
		cfg.Auth.JWTRefreshSecret,
		time.Duration(cfg.Auth.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenTTLHours)*time.Hour,
	)
	mail := mailer.New(cfg.Mail, logger)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Ledger:     ledger,
		TokenMgr:   tokenMgr,
		Mailer:     mail,
		Dispatcher: dispatcher,
	})
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		UserRepo:   userRepo,
		Ledger:     ledger,
		Mailer:     mail,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	blogService := service.NewBlogService(blogRepo, dispatcher)
	auditService := service.NewAuditService(actionRepo, dispatcher, logger)
	limiter := service.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts,
		time.Duration(cfg.Auth.LoginWindowSeconds)*time.Second)

	worker.StartAuditRecorder(auditService)
	worker.StartTokenSweeper(ctx, ledger, logger, time.Hour)

	if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(tokenMgr)
	cookies := auth.NewCookieWriter(cfg.App.IsProduction())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, limiter, cookies),
		Admin:          handlers.NewAdminHandler(adminService, blogService),
		Blogs:          handlers.NewBlogsHandler(blogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
