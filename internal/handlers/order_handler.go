package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ommangate/order-up-scholars/internal/auth"
	"github.com/ommangate/order-up-scholars/internal/order"
)

type OrderHandler struct {
	svc *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// GET /api/orders
//
// Students see their own orders. Admins see everything, optionally
// narrowed with ?user_id=.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userID := user.ID
	if user.IsAdmin() {
		filter, ok := queryID(c, "user_id")
		if !ok {
			return
		}
		userID = filter
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if o.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}
