package gymflow

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/gymflowhq/gymflow/internal/cache"
	"github.com/gymflowhq/gymflow/internal/config"
	"github.com/gymflowhq/gymflow/internal/identity"
	"github.com/gymflowhq/gymflow/internal/lib/jwt"
	"github.com/gymflowhq/gymflow/internal/migrations"
	"github.com/gymflowhq/gymflow/internal/paystack"
	"github.com/gymflowhq/gymflow/internal/rabbitmq"
	"github.com/gymflowhq/gymflow/internal/services"
	"github.com/gymflowhq/gymflow/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	gateway := paystack.NewClient(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, cfg.Paystack.Currency)
	provider := identity.NewClient(cfg.IdentityProvider.BaseURL, cfg.IdentityProvider.ServiceKey)
	maker := jwt.NewJWTMaker(cfg.IdentityProvider.JWTSecret, cfg.IdentityProvider.TokenTTL)

	planService := services.NewPlanService(db, cacheRedis, logger)
	memberService := services.NewMemberService(db, db, db, gateway, publisher, logger)
	paymentService := services.NewPaymentService(db, publisher, logger)
	profileService := services.NewProfileService(db, provider, logger)
	managerService := services.NewManagerService(db, provider, publisher, logger)
	revenueService := services.NewRevenueService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, maker,
		planService, memberService, paymentService,
		profileService, managerService, revenueService,
		cfg.Paystack.SecretKey)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
