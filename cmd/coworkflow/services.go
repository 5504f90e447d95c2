package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coworkflow/coworkflow/internal/config"
	"github.com/coworkflow/coworkflow/internal/database"
	"github.com/coworkflow/coworkflow/internal/handler"
	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/middleware"
	"github.com/coworkflow/coworkflow/internal/proxy"
	"github.com/coworkflow/coworkflow/internal/queue"
	"github.com/coworkflow/coworkflow/internal/repository"
	"github.com/coworkflow/coworkflow/internal/router"
	"github.com/coworkflow/coworkflow/internal/service"
)

func gatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Run the API gateway (port 8000)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Gateway)
			rdb := config.NewRedisClient()
			if rdb != nil {
				defer rdb.Close()
			}
			gw := handler.NewGateway(proxy.NewRegistry(cfg.Services, upstreamSettings(cfg)))
			router.RegisterGateway(e, gw, cfg.JWTSecret, router.GatewayOptions{
				RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, cfg.JWTSecret),
				Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
			})
			return serve(cmd.Context(), config.Gateway, cfg, e)
		},
	}
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Run the users service (port 5001)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Users)
			router.RegisterUsers(e, handler.NewUsersHandler(cfg, repository.NewUserRepo()))
			return serve(cmd.Context(), config.Users, cfg, e)
		},
	}
}

func spacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spaces",
		Short: "Run the spaces service (port 5002)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Spaces)
			router.RegisterSpaces(e, handler.NewSpacesHandler(repository.NewSpaceRepo()))
			return serve(cmd.Context(), config.Spaces, cfg, e)
		},
	}
}

func reservationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reservations",
		Short: "Run the reservations service (port 5003)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Reservations)
			events := service.NewAsyncPublisher(service.PublisherFor(cfg.AMQPURL))
			defer events.Wait()
			h := handler.NewReservationsHandler(repository.NewReservationRepo(), events)
			router.RegisterReservations(e, h)
			return serve(cmd.Context(), config.Reservations, cfg, e)
		},
	}
}

func paymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "Run the payments service (port 5004)",
		Long: `Run the payments service.

Payments are stored in MySQL when DB_HOST is set and in memory otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Payments)
			store, closeStore, err := paymentStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()
			router.RegisterPayments(e, handler.NewPaymentsHandler(store))
			return serve(cmd.Context(), config.Payments, cfg, e)
		},
	}
}

func paymentStore(ctx context.Context, cfg config.Config) (repository.PaymentStore, func(), error) {
	if cfg.DBHost == "" {
		logs.For(config.Payments).Info("DB_HOST not set; payments kept in memory")
		return repository.NewMemoryPaymentRepo(), func() {}, nil
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open payments database: %w", err)
	}
	repo := repository.NewSQLPaymentRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("payments schema: %w", err)
	}
	return repo, func() { _ = db.Close() }, nil
}

func pricingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pricing",
		Short: "Run the pricing service (port 5005)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Pricing)
			router.RegisterPricing(e)
			return serve(cmd.Context(), config.Pricing, cfg, e)
		},
	}
}

func checkinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Run the check-in service (port 5006)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Checkin)
			up := proxy.NewUpstream(config.Reservations, cfg.Services[config.Reservations], upstreamSettings(cfg))
			router.RegisterCheckin(e, handler.NewCheckinHandler(service.NewReservationClient(up)))
			return serve(cmd.Context(), config.Checkin, cfg, e)
		},
	}
}

func notificationsCmd() *cobra.Command {
	var consume bool
	var eventLog string
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Run the notifications service (port 5007)",
		Long: `Run the notifications service.

E-mail is delivered over SMTP when SMTP_HOST is set and only logged otherwise.
With --consume the process also records reservation and notification events
from RabbitMQ into the event log.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := setup(config.Notifications)
			var mailer service.Mailer
			if cfg.SMTPHost != "" {
				mailer = service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
			}
			events := service.NewAsyncPublisher(service.PublisherFor(cfg.AMQPURL))
			defer events.Wait()
			router.RegisterNotifications(e, handler.NewNotificationsHandler(mailer, events))

			if consume {
				if cfg.AMQPURL == "" {
					return fmt.Errorf("--consume needs RABBITMQ_URL or AMQP_URL")
				}
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go func() {
					if err := queue.StartEventConsumer(ctx, cfg.AMQPURL, eventLog); err != nil && ctx.Err() == nil {
						logs.For(config.Notifications).WithError(err).Error("event consumer stopped")
					}
				}()
			}
			return serve(cmd.Context(), config.Notifications, cfg, e)
		},
	}
	cmd.Flags().BoolVar(&consume, "consume", false, "also consume events from RabbitMQ")
	cmd.Flags().StringVar(&eventLog, "event-log", "logs/events.log", "file the consumer appends events to")
	return cmd
}
