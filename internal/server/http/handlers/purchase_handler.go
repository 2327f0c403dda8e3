package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/purchase"
	"github.com/civiseek/civiseek/internal/server/http/dto"
)

// PurchaseHandler manages membership plans and the purchase flow.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Plans handles GET /api/plans.
func (h *PurchaseHandler) Plans(c *gin.Context) {
	plans := h.facade.Plans()
	response := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		response = append(response, dto.PlanResponse{
			GoodsID: p.GoodsID,
			Name:    p.Name,
			Level:   p.Level,
			Price:   p.Price,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Orders handles GET /api/user/orders.
func (h *PurchaseHandler) Orders(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.OrderResponse{
			Number:    o.Number,
			GoodsID:   o.GoodsID,
			Amount:    o.Amount,
			Subject:   o.Subject,
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Initiate handles POST /api/user/purchase.
func (h *PurchaseHandler) Initiate(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	intent, err := h.facade.InitiatePurchase(c.Request.Context(), userID, req.GoodsID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotAuthenticated):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrUnknownPlan):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrOrderCreationFailed):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{
		OrderNumber: intent.OrderNumber,
		Amount:      intent.Amount,
		Subject:     intent.Subject,
		FormHTML:    intent.FormHTML,
	})
}

// Confirm handles POST /api/user/purchase/confirm.
func (h *PurchaseHandler) Confirm(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.ConfirmPayment(userID); err != nil {
		switch {
		case errors.Is(err, purchase.ErrNoActiveSession):
			c.Status(http.StatusNotFound)
		case errors.Is(err, purchase.ErrConfirmInProgress):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusAccepted)
}

// Status handles GET /api/user/purchase/status.
func (h *PurchaseHandler) Status(c *gin.Context) {
	userID := CurrentUserID(c)
	state, attempts, err := h.facade.PurchaseStatus(userID)
	if err != nil {
		switch {
		case errors.Is(err, purchase.ErrNoActiveSession):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.PurchaseStatusResponse{State: string(state), Attempts: attempts})
}

// Cancel handles POST /api/user/purchase/cancel.
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.CancelPurchase(userID); err != nil {
		switch {
		case errors.Is(err, purchase.ErrNoActiveSession):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
