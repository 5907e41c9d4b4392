package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sclayai/proposal-intake/internal/infra/database"
	"github.com/sclayai/proposal-intake/internal/infra/http/handlers"
	"github.com/sclayai/proposal-intake/internal/infra/http/middleware"
	"github.com/sclayai/proposal-intake/internal/infra/integration/supabase"
	"github.com/sclayai/proposal-intake/internal/infra/integration/webhook"
	"github.com/sclayai/proposal-intake/internal/infra/mail"
	"github.com/sclayai/proposal-intake/internal/infra/queue"
	"github.com/sclayai/proposal-intake/internal/session"
	"github.com/sclayai/proposal-intake/internal/usecase"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr         string
		migrateFirst bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.HTTPAddr = addr
			}
			return runServe(cmd.Context(), a, migrateFirst)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, a *app, migrateFirst bool) error {
	cfg, logger := a.cfg, a.logger

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateFirst {
		if _, err := database.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	// 1. Repositories
	onboardingRepo := database.NewOnboardingRepository(db)
	prospectRepo := database.NewProspectRepository(db)
	metrics := middleware.PrometheusRecorder{}

	g, gctx := errgroup.WithContext(ctx)

	// 2. Forwarding: direct webhook, or through RabbitMQ when configured
	webhookClient := webhook.NewClient(cfg.WebhookURL, cfg.ForwardTimeout)
	var (
		forwarder    usecase.Forwarder
		brokerHealth handlers.ClosedChecker
	)
	if cfg.WebhookURL != "" {
		forwarder = webhookClient
	} else {
		logger.Warn("WEBHOOK_URL not set, submissions will not be forwarded")
	}
	if cfg.RabbitMQURL != "" && cfg.WebhookURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbit.Close()

		consumeCh, err := rabbit.Conn.Channel()
		if err != nil {
			return fmt.Errorf("open consumer channel: %w", err)
		}
		defer consumeCh.Close()

		forwarder = queue.NewProducer(rabbit.Ch)
		brokerHealth = rabbit.Conn

		worker := queue.NewWorker(consumeCh, webhookClient, metrics, logger.Named("worker"))
		g.Go(func() error { return worker.Start(gctx, queue.QueueName) })
	}

	// 3. Team notices
	var emailService usecase.EmailService
	if cfg.Mail.Enabled() {
		emailService = mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
			cfg.Mail.From, cfg.Mail.NotifyTo, cfg.Mail.DashboardURL,
		)
	}

	// 4. Session guard
	var verifier session.TokenVerifier
	if cfg.SupabaseJWTSecret != "" {
		verifier = session.NewJWTVerifier(cfg.SupabaseJWTSecret, "")
	}
	guard := session.NewGuard(
		session.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey},
		supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, 10*time.Second),
		verifier,
		logger.Named("session"),
	)
	unsubscribe := guard.Subscribe(func(ev session.Event) {
		middleware.RecordSessionEvent(string(ev.Type))
		fields := []zap.Field{zap.String("event", string(ev.Type))}
		if ev.Identity != nil {
			fields = append(fields, zap.String("user_id", ev.Identity.UserID))
		}
		logger.Info("session transition", fields...)
	})
	defer unsubscribe()

	// 5. Use cases
	submitUC := usecase.NewSubmitProposalUseCase(onboardingRepo, prospectRepo, forwarder, emailService, metrics, logger.Named("submit"))
	submitUC.ForwardTimeout = cfg.ForwardTimeout
	dashboard := usecase.NewDashboard(onboardingRepo, prospectRepo, metrics, logger.Named("dashboard"))

	// 6. Handlers
	trustedProxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	limiter := handlers.NewRateLimiter(10, time.Minute)
	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	limiter.StartSweeper(10*time.Minute, stopSweeper)

	router := newRouter(routes{
		forms:       handlers.NewFormHandler(submitUC, logger),
		dashboard:   handlers.NewDashboardHandler(dashboard),
		auth:        handlers.NewAuthHandler(guard, limiter, cfg.SecureCookies, logger),
		health:      handlers.NewHealthHandler(db, brokerHealth, cfg.WebhookURL != "", guard.ConfigError() == nil, version),
		sessions:    guard,
		corsOrigins: cfg.CORSOrigins,

		trustedProxies: trustedProxies,
		logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		err := srv.Shutdown(shutdownCtx)
		submitUC.Wait()
		return err
	})

	return g.Wait()
}
