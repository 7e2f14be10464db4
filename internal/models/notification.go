package models

// Типы уведомлений, публикуемых в очередь.
const (
	NotificationWelcome   = "welcome"
	NotificationInvite    = "invite"
	NotificationPayment   = "payment"
	NotificationBroadcast = "broadcast"
)

// Notification сообщение очереди уведомлений. Отправка писем вынесена
// из критического пути запроса: API публикует сообщение fire-and-forget,
// доставкой занимается отдельный сервис-consumer.
type Notification struct {
	Type         string  `json:"type"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name,omitempty"`
	TempPassword string  `json:"temp_password,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	Subject      string  `json:"subject,omitempty"`
	Message      string  `json:"message,omitempty"`
}
