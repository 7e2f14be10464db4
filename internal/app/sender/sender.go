// Package sender собирает сервис доставки писем: подключение к очереди
// уведомлений и потребители на каждую очередь.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/gymflowhq/gymflow/internal/config"
	"github.com/gymflowhq/gymflow/internal/lib/smtp"
	"github.com/gymflowhq/gymflow/internal/rabbitmq"
	"github.com/gymflowhq/gymflow/internal/services"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *services.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	_ = ctx

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := services.NewSenderService(logger, transport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.GetNotificationQueues() {
		if err := rabbitmq.ConsumerMessage(ctx, a.ch, q.QueueName, a.senderService.Deliver); err != nil {
			a.logger.Error("failed to start consumer",
				slog.String("queue", q.QueueName), slog.Any("err", err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
