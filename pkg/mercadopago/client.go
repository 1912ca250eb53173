package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Mercado Pago API base URL.
const DefaultBaseURL = "https://api.mercadopago.com"

// Client is a minimal HTTP client for the Mercado Pago payments API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	debug       bool
}

// NewClient constructs a new Mercado Pago client with sane defaults.
// An empty baseURL falls back to the production API.
func NewClient(accessToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		accessToken: accessToken,
		debug:       os.Getenv("ENV") == "development",
	}
}

// CreatePayment creates a tokenized card charge. The external reference is
// also sent as the idempotency key so gateway-side retries never double
// charge.
func (c *Client) CreatePayment(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	if req.Installments == 0 {
		req.Installments = 1
	}
	var payment Payment
	if err := c.doRequest(ctx, http.MethodPost, "/v1/payments", req.ExternalReference, req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPayment fetches a payment by id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	if err := c.doRequest(ctx, http.MethodGet, "/v1/payments/"+paymentID, "", nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// doRequest performs an HTTP call against the Mercado Pago API with JSON
// payloads and decodes the JSON response into result.
func (c *Client) doRequest(ctx context.Context, method, endpoint, idempotencyKey string, body, result any) error {
	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if c.debug && payload != nil {
		log.Debug().
			Str("endpoint", c.baseURL+endpoint).
			RawJSON("request", payload).
			Msg("[MERCADOPAGO] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[MERCADOPAGO] Incoming response")
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("mercadopago: %s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("mercadopago: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
