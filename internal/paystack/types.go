package paystack

// InitializeRequest представляет запрос на инициализацию транзакции.
// Amount передаётся в минорных единицах валюты (кобо/песева).
type InitializeRequest struct {
	Email    string            `json:"email"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"` // дополнительная инфа: member_id
}

// InitializeResponse представляет ответ на инициализацию транзакции.
type InitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"` // ссылка на оплату для участника
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// WebhookEvent представляет событие вебхука платёжного шлюза.
// Для продления абонемента значимо только charge.success.
type WebhookEvent struct {
	Event string       `json:"event"`
	Data  WebhookEventData `json:"data"`
}

// WebhookEventData полезная нагрузка события.
type WebhookEventData struct {
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"` // в минорных единицах
	Currency  string          `json:"currency"`
	Customer  WebhookCustomer `json:"customer"`
}

// WebhookCustomer данные плательщика в событии.
type WebhookCustomer struct {
	Email string `json:"email"`
}
