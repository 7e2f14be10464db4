// Package paystack реализует клиент платёжного шлюза Paystack:
// инициализацию транзакций и проверку подписи вебхуков.
package paystack

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type Client struct {
	secretKey  string
	apiURL     string
	currency   string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Paystack.
func NewClient(secretKey, apiURL, currency string) *Client {
	if apiURL == "" {
		apiURL = "https://api.paystack.co"
	}
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		currency:   currency,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// InitializeTransaction отправляет запрос на инициализацию транзакции
// и возвращает платёжную ссылку. Сумма принимается в основной единице
// валюты и конвертируется в минорные единицы здесь.
func (c *Client) InitializeTransaction(email string, amount float64, metadata map[string]string) (*InitializeResponse, error) {
	reqParams := InitializeRequest{
		Email:    email,
		Amount:   int64(amount * 100),
		Currency: c.currency,
		Metadata: metadata,
	}
	req, err := c.newRequest("POST", "/transaction/initialize", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var initResp InitializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return nil, err
	}
	if !initResp.Status {
		return nil, errors.New("transaction initialize failed: " + initResp.Message)
	}
	return &initResp, nil
}

// VerifySignature проверяет подпись вебхука: HMAC-SHA512 от сырого тела
// запроса на секретном ключе, hex-представление. Сравнение выполняется
// за постоянное время.
func VerifySignature(secretKey string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
