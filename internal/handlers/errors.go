package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ommangate/order-up-scholars/internal/cart"
	"github.com/ommangate/order-up-scholars/internal/catalog"
	"github.com/ommangate/order-up-scholars/internal/order"
)

// writeError maps service errors onto HTTP statuses. Anything unrecognized
// is treated as a transport failure from the backing service; the caller is
// expected to just retry the action.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, catalog.ErrCanteenNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrValidation),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrEmptySnapshot),
		errors.Is(err, cart.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	}
}
