package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/cafe/internal/dal/postgres"
	"github.com/corray333/backend-labs/cafe/internal/dal/rabbitmq"
	outboxrepo "github.com/corray333/backend-labs/cafe/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/backend-labs/cafe/internal/otel"
	"github.com/corray333/backend-labs/cafe/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/cafe/internal/service/services/ordersvc"
	httptransport "github.com/corray333/backend-labs/cafe/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/cafe/internal/worker/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otel           *otel.OtelController
}

// MustNewApp creates a new application.
// RabbitMQ and the outbox worker are wired only when rabbitmq.enabled is set.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()

	var (
		orderSvc     *ordersvc.OrderService
		rabbitClient *rabbitmq.Client
		worker       *outboxworker.Worker
	)
	if viper.GetBool("rabbitmq.enabled") {
		rabbitClient = rabbitmq.MustNewClient()

		queue := viper.GetString("rabbitmq.order_events.queue")
		if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    queue,
			Durable: true,
		}); err != nil {
			panic("failed to declare order events queue: " + err.Error())
		}

		orderSvc = ordersvc.MustNewOrderService(
			ordersvc.WithPostgresClient(postgresClient),
			ordersvc.WithOrderEvents(ordersvc.EventsConfig{
				QueueName:    queue,
				ExchangeName: viper.GetString("rabbitmq.order_events.exchange"),
				RoutingKey:   viper.GetString("rabbitmq.order_events.routing_key"),
				MaxRetries:   viper.GetInt("rabbitmq.order_events.max_retries"),
			}),
		)

		worker = outboxworker.NewWorker(
			outboxrepo.NewOutboxRepository(postgresClient.Pool()),
			rabbitClient,
		)
	} else {
		orderSvc = ordersvc.MustNewOrderService(
			ordersvc.WithPostgresClient(postgresClient),
		)
	}

	menuSvc := menusvc.MustNewMenuService(
		menusvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, menuSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   worker,
		otel:           otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "port", viper.GetString("server.http.port"))
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if a.outboxWorker != nil {
		g.Go(func() error {
			a.outboxWorker.Start(gctx)

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")

		timeout := time.Duration(viper.GetInt("server.shutdown_timeout_seconds")) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return a.transport.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Application stopped with error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.close()
}

func (a *App) close() {
	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.otel.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
