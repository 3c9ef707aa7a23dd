package paymentgateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	errors "github.com/alphagrips/academy-backend/internal"
	gatewayDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/paymentgateway"
)

// ClientAPI is the outbound gateway surface the payment flow depends on.
type ClientAPI interface {
	CreateOrder(ctx context.Context, req *gatewayDatamodel.OrderRequest) (*gatewayDatamodel.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Client talks to a Razorpay-compatible orders API over basic auth.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, keyID, keySecret string, requestTimeout time.Duration, maxRetries int, logger *slog.Logger) *Client {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// CreateOrder posts an order to the gateway with bounded retry. Retries use
// exponential backoff starting at one second; 4xx responses do not retry.
func (c *Client) CreateOrder(ctx context.Context, req *gatewayDatamodel.OrderRequest) (*gatewayDatamodel.Order, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode order request", err)
	}

	var lastErr error
	backoff := time.Second

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		order, retryable, err := c.postOrder(ctx, payload)
		if err == nil {
			return order, nil
		}
		lastErr = err
		if !retryable {
			break
		}

		c.logger.Warn("gateway order creation failed, retrying",
			"attempt", attempt, "max_retries", c.maxRetries, "error", err)

		if attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.NewExternalError("order creation cancelled", errors.ErrCodeGatewayUnavailble, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (c *Client) postOrder(ctx context.Context, payload []byte) (*gatewayDatamodel.Order, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, false, errors.NewInternalError("failed to build order request", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, true, errors.NewExternalError("gateway unreachable", errors.ErrCodeGatewayUnavailble, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errors.NewExternalError("failed to read gateway response", errors.ErrCodeGatewayUnavailble, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var order gatewayDatamodel.Order
		if err := json.Unmarshal(body, &order); err != nil {
			return nil, false, errors.NewExternalError("malformed gateway response", errors.ErrCodeOrderFailed, err)
		}
		if order.ID == "" {
			return nil, false, errors.NewExternalError("gateway returned order without id", errors.ErrCodeOrderFailed, nil)
		}
		return &order, false, nil
	case resp.StatusCode >= 500:
		return nil, true, errors.NewExternalError(
			fmt.Sprintf("gateway error: status %d", resp.StatusCode), errors.ErrCodeGatewayUnavailble, nil)
	default:
		return nil, false, errors.NewExternalError(
			fmt.Sprintf("order rejected: status %d", resp.StatusCode), errors.ErrCodeOrderFailed, nil)
	}
}

// VerifySignature checks the callback HMAC: SHA-256 over "orderID|paymentID"
// keyed with the gateway secret, hex-encoded, compared in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	expected := SignPayload(c.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayload computes the gateway callback signature for an order/payment
// pair. Exported for webhook tests and the seeder.
func SignPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
