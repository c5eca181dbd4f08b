// Backoffice API server: customers, billing, commissions, and the public
// content app behind one HTTP surface.
//
// @title        Backoffice API
// @version      1.0
// @description  ISP back-office: customers, billing, commissions, content.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
	"github.com/rs/zerolog"

	"github.com/networkasro/backoffice/internal/api"
	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
	"github.com/networkasro/backoffice/internal/core/service"
	"github.com/networkasro/backoffice/internal/infrastructure/config"
	mongodb "github.com/networkasro/backoffice/internal/infrastructure/db/mongo"
	"github.com/networkasro/backoffice/internal/infrastructure/db/postgres"
	redisdb "github.com/networkasro/backoffice/internal/infrastructure/db/redis"
	"github.com/networkasro/backoffice/internal/infrastructure/queue"
	"github.com/networkasro/backoffice/internal/infrastructure/scheduler"
	"github.com/networkasro/backoffice/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "backoffice"})
		boot.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "backoffice",
		Pretty:  cfg.Env == "development",
	})

	// --- Storage ---
	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}

	mclient, mdb, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := mclient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	commissionRepo := postgres.NewCommissionRepository(db)
	commissionSettingRepo := postgres.NewCommissionSettingRepository(db)

	pageRepo := mongodb.NewPageRepository(mdb)
	sliderRepo := mongodb.NewSliderRepository(mdb)
	settingsRepo := mongodb.NewSettingsRepository(mdb)
	if err := pageRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("page index creation failed")
	}
	if err := sliderRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("slider index creation failed")
	}

	tokenStore := redisdb.NewTokenStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, profileRepo, tokenStore,
		cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	customerService := service.NewCustomerService(customerRepo, planRepo, log)
	planService := service.NewPlanService(planRepo, log)
	commissionService := service.NewCommissionService(commissionRepo, commissionSettingRepo, log)
	contentService := service.NewContentService(pageRepo, sliderRepo, settingsRepo, log)

	dispatcher := queue.NewDispatcher(cfg.AccrualWorkers, commissionService, log)
	dispatcher.Start(ctx)

	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, dispatcher, log)

	billing := scheduler.NewBillingScheduler(invoiceService, log)
	if err := billing.Start(); err != nil {
		log.Fatal().Err(err).Msg("billing scheduler start failed")
	}
	defer billing.Stop()

	seedBootstrapOwner(ctx, cfg, authService, log)

	// --- HTTP ---
	e := api.NewRouter(api.Services{
		Auth:        authService,
		Profiles:    profileRepo,
		Customers:   customerService,
		Plans:       planService,
		Invoices:    invoiceService,
		Commissions: commissionService,
		Content:     contentService,
	}, db, mdb, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
}

// seedBootstrapOwner creates the first owner account when configured and
// not present yet. Without it a fresh install has no one able to sign in.
func seedBootstrapOwner(ctx context.Context, cfg *config.Config, auth ports.AuthService, log zerolog.Logger) {
	if cfg.BootstrapOwnerEmail == "" || cfg.BootstrapOwnerPassword == "" {
		return
	}

	_, err := auth.SignUp(ctx, ports.SignUpInput{
		Email:    cfg.BootstrapOwnerEmail,
		Password: cfg.BootstrapOwnerPassword,
		FullName: "Owner",
		Role:     domain.RoleOwner,
	})
	switch {
	case err == nil:
		log.Info().Str("email", cfg.BootstrapOwnerEmail).Msg("seeded bootstrap owner")
	case errors.Is(err, domain.ErrUserExists):
		// already seeded
	default:
		log.Error().Err(err).Msg("bootstrap owner seed failed")
	}
}
