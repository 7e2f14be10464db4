package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gymflowhq/gymflow/internal/lib/sl"
	"github.com/gymflowhq/gymflow/internal/lib/smtp"
	"github.com/gymflowhq/gymflow/internal/metrics"
	"github.com/gymflowhq/gymflow/internal/models"
)

// SenderService доставляет уведомления из очереди по SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// Deliver разбирает сообщение очереди и отправляет письмо нужного типа.
func (s *SenderService) Deliver(body []byte) error {
	var message models.Notification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	var subject, bodyText string
	switch message.Type {
	case models.NotificationWelcome:
		subject = "Welcome to the gym!"
		bodyText = fmt.Sprintf("Hi %s!\n\nYour membership is now active. Welcome aboard — see you at the gym!",
			message.FullName)
	case models.NotificationInvite:
		subject = "You have been invited to GymFlow"
		bodyText = fmt.Sprintf("Hi %s!\n\nAn account has been created for you.\nTemporary password: %s\n\nPlease sign in and change it right away.",
			message.FullName, message.TempPassword)
	case models.NotificationPayment:
		subject = "Payment received"
		bodyText = fmt.Sprintf("Hi!\n\nWe received your payment of %.2f. Your membership has been extended.\n\nThank you!",
			message.Amount)
	case models.NotificationBroadcast:
		subject = message.Subject
		bodyText = message.Message
	default:
		return fmt.Errorf("unknown notification type: %q", message.Type)
	}

	err := s.sendEmail([]string{message.Email}, subject, bodyText)
	if err != nil {
		metrics.RecordEmail(message.Type, "failed")
		return err
	}
	metrics.RecordEmail(message.Type, "sent")
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
