package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/civiseek/civiseek/internal/domain/model"
)

// ErrOrderUnknown indicates the gateway has no record of the order yet.
var ErrOrderUnknown = errors.New("order unknown to gateway")

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// CreateOrderRequest carries everything the gateway needs to open a trade.
type CreateOrderRequest struct {
	UserID      int64   `json:"user_id"`
	GoodsID     int64   `json:"goods_id"`
	OrderNumber string  `json:"out_trade_no"`
	Amount      float64 `json:"amount"`
	Subject     string  `json:"subject"`
}

// Client exposes operations against the hosted order gateway.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error)
	QueryOrder(ctx context.Context, orderNumber string) (model.TradeStatus, error)
}

// HTTPClient implements Client via the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type createResponse struct {
	FormHTML string `json:"form_html"`
}

type queryResponse struct {
	Code        string `json:"code"`
	TradeStatus string `json:"trade_status"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateOrder registers a trade and returns the hosted payment form HTML.
func (c *HTTPClient) CreateOrder(ctx context.Context, reqBody CreateOrderRequest) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/pay/create")

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway create order failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var data createResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", err
	}
	if data.FormHTML == "" {
		return "", fmt.Errorf("gateway returned empty payment form")
	}
	return data.FormHTML, nil
}

// QueryOrder fetches the trade status for a merchant order number.
func (c *HTTPClient) QueryOrder(ctx context.Context, orderNumber string) (model.TradeStatus, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/pay/query/", orderNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data queryResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return "", err
		}
		return model.TradeStatus(data.TradeStatus), nil
	case http.StatusNoContent, http.StatusNotFound:
		return "", ErrOrderUnknown
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return "", TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway query failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
