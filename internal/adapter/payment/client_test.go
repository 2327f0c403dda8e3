package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("not-a-url", discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateOrderReturnsForm(t *testing.T) {
	var got CreateOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pay/create" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"form_html": "<form/>"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:      1,
		GoodsID:     2,
		OrderNumber: "CS123",
		Amount:      19.9,
		Subject:     "membership: Monthly",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form != "<form/>" {
		t.Fatalf("expected form html, got %q", form)
	}
	if got.OrderNumber != "CS123" || got.Amount != 19.9 {
		t.Fatalf("unexpected request payload: %+v", got)
	}
}

func TestCreateOrderRejectsEmptyForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"form_html": ""})
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{}); err == nil {
		t.Fatal("expected error for empty payment form")
	}
}

func TestCreateOrderPropagatesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{}); err == nil {
		t.Fatal("expected gateway error")
	}
}

func TestQueryOrderParsesTradeStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pay/query/CS123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "10000", "trade_status": "TRADE_SUCCESS"})
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	status, err := client.QueryOrder(context.Background(), "CS123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Succeeded() {
		t.Fatalf("expected succeeded status, got %v", status)
	}
}

func TestQueryOrderUnknownOrder(t *testing.T) {
	for _, code := range []int{http.StatusNoContent, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		client, _ := NewHTTPClient(server.URL, discardLogger())
		_, err := client.QueryOrder(context.Background(), "CS123")
		server.Close()
		if !errors.Is(err, ErrOrderUnknown) {
			t.Fatalf("expected unknown order for status %d, got %v", code, err)
		}
	}
}

func TestQueryOrderRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	_, err := client.QueryOrder(context.Background(), "CS123")
	var rateLimited TooManyRequestsError
	if !errors.As(err, &rateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rateLimited.RetryAfter != 7*time.Second {
		t.Fatalf("expected 7s retry after, got %v", rateLimited.RetryAfter)
	}
}

func TestParseRetryAfterFallback(t *testing.T) {
	if got := parseRetryAfter(""); got != 5*time.Second {
		t.Fatalf("expected default retry after, got %v", got)
	}
	if got := parseRetryAfter("junk"); got != 5*time.Second {
		t.Fatalf("expected default retry after for junk, got %v", got)
	}
}

func TestQueryOrderHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.QueryOrder(ctx, "CS123"); err == nil {
		t.Fatal("expected context deadline error")
	}
}
