package midtrans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shophub-order-service/internal/domain"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		serverKey:  "SB-Mid-server-testkey",
		snapURL:    srv.URL,
		coreURL:    srv.URL,
		httpClient: srv.Client(),
	}
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:         "order-123",
		TotalPrice: 300000,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", ProductName: "Denim Jacket", Price: 150000, Quantity: 2},
		},
	}
}

func TestClient_CreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/snap/v1/transactions", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "SB-Mid-server-testkey", user)

		var req snapRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order-123", req.TransactionDetails.OrderID)
		assert.Equal(t, int64(300000), req.TransactionDetails.GrossAmount)
		require.Len(t, req.ItemDetails, 1)
		assert.Equal(t, "Denim Jacket", req.ItemDetails[0].Name)
		assert.Equal(t, "buyer@example.com", req.CustomerDetails.Email)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"token":        "66e4fa55-fdac-4ef9-91b5-733b97d1b862",
			"redirect_url": "https://app.sandbox.midtrans.com/snap/v2/vtweb/66e4fa55",
		})
	}))
	defer srv.Close()

	session, err := testClient(srv).CreateSession(context.Background(), testOrder(), Customer{
		FirstName: "Ayu",
		Email:     "buyer@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "66e4fa55-fdac-4ef9-91b5-733b97d1b862", session.Token)
	assert.Contains(t, session.RedirectURL, "/snap/v2/vtweb/")
}

func TestClient_CreateSession_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error_messages": []string{"Access denied due to unauthorized transaction"},
		})
	}))
	defer srv.Close()

	_, err := testClient(srv).CreateSession(context.Background(), testOrder(), Customer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Access denied")
}

func TestClient_QueryStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/order-123/status", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]string{
			"transaction_id":     "9aed5972-5b6a-401e-894b-a32c91ed1a3a",
			"order_id":           "order-123",
			"transaction_status": "settlement",
			"fraud_status":       "accept",
			"payment_type":       "gopay",
			"gross_amount":       "300000.00",
		})
	}))
	defer srv.Close()

	status, err := testClient(srv).QueryStatus(context.Background(), "order-123")

	require.NoError(t, err)
	assert.Equal(t, "settlement", status.TransactionStatus)
	assert.Equal(t, "accept", status.FraudStatus)
	assert.Equal(t, "order-123", status.OrderID)
}

func TestClient_QueryStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"status_message": "Transaction doesn't exist.",
		})
	}))
	defer srv.Close()

	_, err := testClient(srv).QueryStatus(context.Background(), "order-404")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction doesn't exist")
}

func TestClient_CancelSession(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]string{
			"status_code":        "200",
			"transaction_status": "cancel",
		})
	}))
	defer srv.Close()

	err := testClient(srv).CancelSession(context.Background(), "order-123")

	require.NoError(t, err)
	assert.Equal(t, "/v2/order-123/cancel", gotPath)
}

func TestNewClient_Environments(t *testing.T) {
	sandbox := NewClient("key", false, 0)
	assert.Equal(t, sandboxSnapURL, sandbox.snapURL)
	assert.Equal(t, sandboxCoreURL, sandbox.coreURL)

	prod := NewClient("key", true, 0)
	assert.Equal(t, prodSnapURL, prod.snapURL)
	assert.Equal(t, prodCoreURL, prod.coreURL)
}
