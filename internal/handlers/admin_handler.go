package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ommangate/order-up-scholars/internal/catalog"
	"github.com/ommangate/order-up-scholars/internal/models"
	"github.com/ommangate/order-up-scholars/internal/order"
)

// AdminHandler carries the canteen-staff surface: menu CRUD, availability
// toggling, order status transitions and the dashboard summary.
type AdminHandler struct {
	catalog *catalog.Service
	orders  *order.Service
}

func NewAdminHandler(catalogSvc *catalog.Service, orderSvc *order.Service) *AdminHandler {
	return &AdminHandler{catalog: catalogSvc, orders: orderSvc}
}

type foodItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Image       string   `json:"image"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	CanteenID   uint     `json:"canteen_id" binding:"required"`
	Available   *bool    `json:"available"`
}

func (r foodItemRequest) toModel(id uint) models.FoodItem {
	item := models.FoodItem{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
		CanteenID:   r.CanteenID,
		Available:   true,
	}
	if r.Available != nil {
		item.Available = *r.Available
	}
	return item
}

// POST /api/admin/items
func (h *AdminHandler) CreateItem(c *gin.Context) {
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.catalog.CreateItem(c.Request.Context(), req.toModel(0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// PUT /api/admin/items/:id
func (h *AdminHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.catalog.UpdateItem(c.Request.Context(), req.toModel(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DELETE /api/admin/items/:id
func (h *AdminHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// POST /api/admin/items/:id/toggle
func (h *AdminHandler) ToggleAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.catalog.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PATCH /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

// GET /api/admin/stats
//
// The numbers behind the dashboard charts: menu size per canteen, item
// spread per category, and order counts per status.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	canteens, err := h.catalog.ListCanteens(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	items, err := h.catalog.ListItems(ctx, 0, 0)
	if err != nil {
		writeError(c, err)
		return
	}
	byStatus, err := h.orders.CountByStatus(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	perCanteen := make([]gin.H, 0, len(canteens))
	for _, cn := range canteens {
		var n int
		for _, it := range items {
			if it.CanteenID == cn.ID {
				n++
			}
		}
		perCanteen = append(perCanteen, gin.H{"canteen": cn.Name, "items": n})
	}

	perCategory := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		var n int
		for _, it := range items {
			if it.CategoryID == cat.ID {
				n++
			}
		}
		if n > 0 {
			perCategory = append(perCategory, gin.H{"category": cat.Name, "items": n})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"items_per_canteen":  perCanteen,
		"items_per_category": perCategory,
		"orders_by_status":   byStatus,
	})
}
