package model

import "time"

// OrderStatus describes the settlement lifecycle of a membership order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusClosed  OrderStatus = "CLOSED"
)

// TradeStatus is the payment state reported by the order gateway.
type TradeStatus string

const (
	TradeStatusSuccess  TradeStatus = "TRADE_SUCCESS"
	TradeStatusFinished TradeStatus = "TRADE_FINISHED"
	TradeStatusClosed   TradeStatus = "TRADE_CLOSED"
	TradeStatusPending  TradeStatus = "WAIT_BUYER_PAY"
)

// Succeeded reports whether the gateway considers the trade paid.
func (s TradeStatus) Succeeded() bool {
	return s == TradeStatusSuccess || s == TradeStatusFinished
}

// Closed reports whether the gateway closed the trade without payment.
func (s TradeStatus) Closed() bool {
	return s == TradeStatusClosed
}

// Order describes a single membership purchase attempt.
type Order struct {
	ID        int64
	UserID    int64
	Number    string
	GoodsID   int64
	Amount    float64
	Subject   string
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
