package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ommangate/order-up-scholars/internal/auth"
	"github.com/ommangate/order-up-scholars/internal/cart"
	"github.com/ommangate/order-up-scholars/internal/catalog"
	"github.com/ommangate/order-up-scholars/internal/logging"
	"github.com/ommangate/order-up-scholars/internal/middleware"
)

type CartHandler struct {
	carts   *cart.Registry
	catalog *catalog.Service
}

func NewCartHandler(carts *cart.Registry, catalogSvc *catalog.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalogSvc}
}

func (h *CartHandler) cartFor(c *gin.Context) *cart.Cart {
	return h.carts.Get(auth.CartKey(c, uuid.NewString))
}

type cartLineView struct {
	ItemID        uint    `json:"item_id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	Customization string  `json:"customization,omitempty"`
	LineTotal     float64 `json:"line_total"`
	CanteenID     uint    `json:"canteen_id"`
}

func cartView(ct *cart.Cart) gin.H {
	lines := ct.Lines()
	views := make([]cartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, cartLineView{
			ItemID:        l.Item.ID,
			Name:          l.Item.Name,
			UnitPrice:     l.Item.Price,
			Quantity:      l.Quantity,
			Customization: l.Customization,
			LineTotal:     l.Item.Price * float64(l.Quantity),
			CanteenID:     l.Item.CanteenID,
		})
	}
	return gin.H{
		"lines":          views,
		"total_price":    ct.TotalPrice(),
		"total_items":    ct.TotalItemCount(),
		"mixed_canteens": ct.MixedCanteens(),
	}
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(h.cartFor(c)))
}

type addItemRequest struct {
	ItemID        uint   `json:"item_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization"`
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.catalog.GetItem(c.Request.Context(), req.ItemID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !item.Available {
		c.JSON(http.StatusConflict, gin.H{"error": "item is currently unavailable"})
		return
	}

	ct := h.cartFor(c)
	ct.AddItem(item, req.Quantity, req.Customization)
	c.JSON(http.StatusOK, cartView(ct))
}

type updateLineRequest struct {
	Quantity      *int    `json:"quantity"`
	Customization *string `json:"customization"`
}

// PATCH /api/cart/items/:id
func (h *CartHandler) UpdateLine(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct := h.cartFor(c)
	if req.Quantity != nil {
		ct.SetQuantity(itemID, *req.Quantity)
	}
	if req.Customization != nil {
		ct.SetCustomization(itemID, *req.Customization)
	}
	c.JSON(http.StatusOK, cartView(ct))
}

// DELETE /api/cart/items/:id
func (h *CartHandler) RemoveLine(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	ct := h.cartFor(c)
	ct.RemoveItem(itemID)
	c.JSON(http.StatusOK, cartView(ct))
}

// POST /api/cart/clear
func (h *CartHandler) Clear(c *gin.Context) {
	ct := h.cartFor(c)
	ct.Clear()
	c.JSON(http.StatusOK, cartView(ct))
}

type checkoutRequest struct {
	CanteenID uint `json:"canteen_id"`
}

// POST /api/cart/checkout
//
// The canteen defaults to that of the first line, the way the storefront
// did it. A cart spanning canteens still checks out; the response carries
// the advisory flag so the client can warn.
func (h *CartHandler) Checkout(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ct := h.cartFor(c)
	mixed := ct.MixedCanteens()

	canteenID := req.CanteenID
	if canteenID == 0 {
		if lines := ct.Lines(); len(lines) > 0 {
			canteenID = lines[0].Item.CanteenID
		}
	}

	o, err := ct.Checkout(c.Request.Context(), user.ID, canteenID)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.CountOrderPlaced()
	logging.From(c).Info("order placed",
		"order_id", o.ID, "user_id", user.ID, "total", o.TotalAmount)

	resp := gin.H{"order": o}
	if mixed {
		resp["warning"] = "order contains items from more than one canteen"
	}
	c.JSON(http.StatusCreated, resp)
}

func pathID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return uint(v), true
}
