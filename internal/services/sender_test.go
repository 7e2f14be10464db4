package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymflowhq/gymflow/internal/models"
)

func TestSender_Deliver(t *testing.T) {
	tests := []struct {
		name         string
		notification models.Notification
		wantSubject  string
		wantInBody   []string
	}{
		{
			name: "welcome email",
			notification: models.Notification{
				Type: models.NotificationWelcome, Email: "john@example.com", FullName: "John",
			},
			wantSubject: "Subject: Welcome to the gym!",
			wantInBody:  []string{"Hi John!", "membership is now active"},
		},
		{
			name: "invite email with temp password",
			notification: models.Notification{
				Type: models.NotificationInvite, Email: "mgr@example.com",
				FullName: "Alice", TempPassword: "GFABC234",
			},
			wantSubject: "Subject: You have been invited to GymFlow",
			wantInBody:  []string{"Temporary password: GFABC234"},
		},
		{
			name: "payment confirmation",
			notification: models.Notification{
				Type: models.NotificationPayment, Email: "john@example.com", Amount: 15000,
			},
			wantSubject: "Subject: Payment received",
			wantInBody:  []string{"15000.00", "membership has been extended"},
		},
		{
			name: "broadcast uses its own subject and text",
			notification: models.Notification{
				Type: models.NotificationBroadcast, Email: "john@example.com",
				Subject: "Holiday hours", Message: "We close early on Friday.",
			},
			wantSubject: "Subject: Holiday hours",
			wantInBody:  []string{"We close early on Friday."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var written bytes.Buffer
			client := new(MockSMTPClient)
			client.On("Mail", "sender@gymflow.example").Return(nil)
			client.On("Rcpt", tt.notification.Email).Return(nil)
			client.On("Data").Return(nopWriteCloser{&written}, nil)
			client.On("Quit").Return(nil)
			client.On("Close").Return(nil)

			transport := new(MockTransport)
			transport.On("Connect").Return(client, nil)
			transport.On("GetSMTPUser").Return("sender@gymflow.example")

			svc := NewSenderService(NewNoopLogger(), transport)
			body, err := json.Marshal(tt.notification)
			require.NoError(t, err)
			require.NoError(t, svc.Deliver(body))

			msg := written.String()
			assert.Contains(t, msg, tt.wantSubject)
			for _, fragment := range tt.wantInBody {
				assert.Contains(t, msg, fragment)
			}
		})
	}
}

func TestSender_Deliver_Errors(t *testing.T) {
	t.Run("malformed message body", func(t *testing.T) {
		svc := NewSenderService(NewNoopLogger(), new(MockTransport))
		require.Error(t, svc.Deliver([]byte("not-json")))
	})

	t.Run("unknown notification type", func(t *testing.T) {
		svc := NewSenderService(NewNoopLogger(), new(MockTransport))
		body, _ := json.Marshal(models.Notification{Type: "carrier-pigeon", Email: "x@example.com"})
		require.Error(t, svc.Deliver(body))
	})

	t.Run("smtp connect failure", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("Connect").Return(nil, errors.New("connection refused"))
		transport.On("GetSMTPUser").Return("sender@gymflow.example")

		svc := NewSenderService(NewNoopLogger(), transport)
		body, _ := json.Marshal(models.Notification{
			Type: models.NotificationWelcome, Email: "x@example.com", FullName: "X",
		})
		require.Error(t, svc.Deliver(body))
	})
}
