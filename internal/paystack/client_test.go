package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_InitializeTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Сумма конвертирована в минорные единицы
		assert.Equal(t, int64(1500000), req.Amount)
		assert.Equal(t, "NGN", req.Currency)
		assert.Equal(t, "member@example.com", req.Email)
		assert.Equal(t, "m-1", req.Metadata["member_id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref_xyz"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_secret", server.URL, "NGN")
	resp, err := client.InitializeTransaction("member@example.com", 15000,
		map[string]string{"member_id": "m-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.Data.AuthorizationURL)
	assert.Equal(t, "ref_xyz", resp.Data.Reference)
}

func TestClient_InitializeTransaction_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("sk_bad_key", server.URL, "NGN")
	_, err := client.InitializeTransaction("member@example.com", 15000, nil)
	require.Error(t, err)
}

func TestClient_InitializeTransaction_FalseStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
	}))
	defer server.Close()

	client := NewClient("sk_test_secret", server.URL, "NGN")
	_, err := client.InitializeTransaction("member@example.com", 15000, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestVerifySignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1"}}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		body      []byte
		signature string
		want      bool
	}{
		{name: "valid signature", body: body, signature: valid, want: true},
		{name: "tampered body", body: []byte(`{"event":"charge.success","data":{"reference":"ref_2"}}`), signature: valid, want: false},
		{name: "empty signature", body: body, signature: "", want: false},
		{name: "garbage signature", body: body, signature: "deadbeef", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(secret, tt.body, tt.signature))
		})
	}
}
