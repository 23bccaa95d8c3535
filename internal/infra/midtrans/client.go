package midtrans

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shophub-order-service/internal/domain"
)

const (
	sandboxSnapURL = "https://app.sandbox.midtrans.com"
	sandboxCoreURL = "https://api.sandbox.midtrans.com"
	prodSnapURL    = "https://app.midtrans.com"
	prodCoreURL    = "https://api.midtrans.com"
)

// Customer carries the buyer contact info the gateway wants on a session.
type Customer struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
}

// SnapSession is a payable hosted-checkout session for one order.
type SnapSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// TransactionStatus mirrors the Core API status response.
type TransactionStatus struct {
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
	SettlementTime    string `json:"settlement_time,omitempty"`
	Currency          string `json:"currency,omitempty"`
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type itemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Name     string `json:"name"`
}

type snapRequest struct {
	TransactionDetails transactionDetails `json:"transaction_details"`
	ItemDetails        []itemDetail       `json:"item_details,omitempty"`
	CustomerDetails    *Customer          `json:"customer_details,omitempty"`
}

type Client struct {
	serverKey  string
	snapURL    string
	coreURL    string
	httpClient *http.Client
}

func NewClient(serverKey string, production bool, timeout time.Duration) *Client {
	snapURL, coreURL := sandboxSnapURL, sandboxCoreURL
	if production {
		snapURL, coreURL = prodSnapURL, prodCoreURL
	}
	return &Client{
		serverKey:  serverKey,
		snapURL:    snapURL,
		coreURL:    coreURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSession asks Snap for a payable session. A failure here mutates no
// order state; the order stays PENDING and the call is retriable.
func (c *Client) CreateSession(ctx context.Context, order *domain.Order, customer Customer) (*SnapSession, error) {
	reqBody := snapRequest{
		TransactionDetails: transactionDetails{
			OrderID:     order.ID,
			GrossAmount: order.TotalPrice,
		},
		CustomerDetails: &customer,
	}
	for _, it := range order.Items {
		reqBody.ItemDetails = append(reqBody.ItemDetails, itemDetail{
			ID:       it.ProductID,
			Price:    it.Price,
			Quantity: it.Quantity,
			Name:     it.ProductName,
		})
	}

	var session SnapSession
	if err := c.do(ctx, http.MethodPost, c.snapURL+"/snap/v1/transactions", reqBody, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// QueryStatus pulls the current transaction status from the Core API.
func (c *Client) QueryStatus(ctx context.Context, orderID string) (*TransactionStatus, error) {
	var status TransactionStatus
	url := fmt.Sprintf("%s/v2/%s/status", c.coreURL, orderID)
	if err := c.do(ctx, http.MethodGet, url, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CancelSession voids the transaction at the gateway. Best effort: the
// session may already be expired or never paid there.
func (c *Client) CancelSession(ctx context.Context, orderID string) error {
	url := fmt.Sprintf("%s/v2/%s/cancel", c.coreURL, orderID)
	return c.do(ctx, http.MethodPost, url, nil, nil)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body *bytes.Buffer = &bytes.Buffer{}
	if in != nil {
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Midtrans authenticates with the server key as basic-auth user.
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			StatusMessage string   `json:"status_message"`
			ErrorMessages []string `json:"error_messages"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if len(apiErr.ErrorMessages) > 0 {
			return fmt.Errorf("midtrans returned status %d: %s", resp.StatusCode, apiErr.ErrorMessages[0])
		}
		if apiErr.StatusMessage != "" {
			return fmt.Errorf("midtrans returned status %d: %s", resp.StatusCode, apiErr.StatusMessage)
		}
		return fmt.Errorf("midtrans returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
