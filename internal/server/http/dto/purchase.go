package dto

import "time"

// PlanResponse describes one membership tier on offer.
type PlanResponse struct {
	GoodsID int64   `json:"goods_id"`
	Name    string  `json:"name"`
	Level   int     `json:"level"`
	Price   float64 `json:"price"`
}

// PurchaseRequest selects the plan to buy.
type PurchaseRequest struct {
	GoodsID int64 `json:"goods_id"`
}

// PurchaseResponse carries everything needed to open the payment page.
type PurchaseResponse struct {
	OrderNumber string  `json:"order_number"`
	Amount      float64 `json:"amount"`
	Subject     string  `json:"subject"`
	FormHTML    string  `json:"form_html"`
}

// PurchaseStatusResponse reports the confirmation session progress.
type PurchaseStatusResponse struct {
	State    string `json:"state"`
	Attempts int    `json:"attempts"`
}

// OrderResponse describes a purchase history entry.
type OrderResponse struct {
	Number    string    `json:"number"`
	GoodsID   int64     `json:"goods_id"`
	Amount    float64   `json:"amount"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
