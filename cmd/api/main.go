package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dagmara-szproch/animal-farm/internal/api"
	"github.com/dagmara-szproch/animal-farm/internal/auth"
	"github.com/dagmara-szproch/animal-farm/internal/config"
	"github.com/dagmara-szproch/animal-farm/internal/db"
	"github.com/dagmara-szproch/animal-farm/internal/gateway"
	"github.com/dagmara-szproch/animal-farm/internal/logger"
	"github.com/dagmara-szproch/animal-farm/internal/mailer"
	"github.com/dagmara-szproch/animal-farm/internal/metrics"
	"github.com/dagmara-szproch/animal-farm/internal/middleware"
	"github.com/dagmara-szproch/animal-farm/internal/receipts"
	"github.com/dagmara-szproch/animal-farm/internal/repository/postgres"
	"github.com/dagmara-szproch/animal-farm/internal/services"
	"github.com/dagmara-szproch/animal-farm/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer,
		15*time.Minute, 7*24*time.Hour)

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	}

	gw := gateway.NewStripeGateway(cfg.StripeSecretKey)
	receiptStore := receipts.NewStore(receipts.DefaultTTL)

	userSvc := services.NewUserService(repos.Users, repos.DeletionRequests, repos.AuditLogs, tm)
	animalSvc := services.NewAnimalService(repos.Animals, repos.Donations)
	donationSvc := services.NewDonationService(
		repos.Donations, repos.Animals, repos.Users, repos.AuditLogs,
		gw, receiptStore, mail, wp, cfg.Currency, cfg.StripePublicKey,
	)
	dashboardSvc := services.NewDashboardService(repos.Donations)
	moderationSvc := services.NewModerationService(repos.Donations, repos.AuditLogs)

	r := api.NewRouter(api.Deps{
		Cfg:        cfg,
		Users:      userSvc,
		Animals:    animalSvc,
		Donations:  donationSvc,
		Dashboard:  dashboardSvc,
		Moderation: moderationSvc,
		AuthMW:     middleware.NewAuthMiddleware(tm, cfg.Env),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
