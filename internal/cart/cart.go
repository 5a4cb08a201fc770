// Package cart holds the per-session cart store. A cart keeps one line per
// distinct food item, in the order lines were first added, and knows how to
// turn itself into an order snapshot at checkout.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/ommangate/order-up-scholars/internal/models"
	"github.com/ommangate/order-up-scholars/internal/order"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Placer is the slice of the order service the cart needs.
type Placer interface {
	PlaceOrder(ctx context.Context, snap order.Snapshot) (models.Order, error)
}

// Line is one distinct food item pending checkout. Item is a snapshot taken
// at add time; later catalog edits do not reach into the cart.
type Line struct {
	Item          models.FoodItem
	Quantity      int
	Customization string
}

type Cart struct {
	mu     sync.Mutex
	lines  []*Line        // insertion order
	index  map[uint]*Line // by food item id
	placer Placer
}

func New(placer Placer) *Cart {
	return &Cart{index: make(map[uint]*Line), placer: placer}
}

// AddItem accumulates quantity onto the existing line for the item, or
// appends a new line. A non-positive quantity is ignored. A non-empty
// customization overwrites the line's existing note; an empty one leaves it
// alone.
func (c *Cart) AddItem(item models.FoodItem, quantity int, customization string) {
	if quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.index[item.ID]; ok {
		l.Quantity += quantity
		if customization != "" {
			l.Customization = customization
		}
		return
	}
	l := &Line{Item: item, Quantity: quantity, Customization: customization}
	c.lines = append(c.lines, l)
	c.index[item.ID] = l
}

// RemoveItem deletes the line for itemID; no-op when absent.
func (c *Cart) RemoveItem(itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(itemID)
}

func (c *Cart) remove(itemID uint) {
	if _, ok := c.index[itemID]; !ok {
		return
	}
	delete(c.index, itemID)
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// SetQuantity overwrites the line's quantity. Zero or negative removes the
// line, same as RemoveItem.
func (c *Cart) SetQuantity(itemID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.remove(itemID)
		return
	}
	if l, ok := c.index[itemID]; ok {
		l.Quantity = quantity
	}
}

// SetCustomization overwrites the note on an existing line; no-op if absent.
func (c *Cart) SetCustomization(itemID uint, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.index[itemID]; ok {
		l.Customization = text
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[uint]*Line)
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, l := range c.lines {
		sum += l.Item.Price * float64(l.Quantity)
	}
	return sum
}

func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// MixedCanteens reports whether the cart spans more than one canteen.
// Checkout still goes through; callers surface this as an advisory only.
func (c *Cart) MixedCanteens() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.Item.CanteenID != c.lines[0].Item.CanteenID {
			return true
		}
	}
	return false
}

// Checkout submits the cart as an order for userID at canteenID and clears
// the cart on success. A failed placement leaves the cart untouched so the
// user can simply retry.
func (c *Cart) Checkout(ctx context.Context, userID, canteenID uint) (models.Order, error) {
	c.mu.Lock()
	if len(c.lines) == 0 {
		c.mu.Unlock()
		return models.Order{}, ErrEmptyCart
	}
	if userID == 0 {
		c.mu.Unlock()
		return models.Order{}, ErrNotAuthenticated
	}
	snap := order.Snapshot{UserID: userID, CanteenID: canteenID}
	for _, l := range c.lines {
		snap.Lines = append(snap.Lines, order.SnapshotLine{
			ItemID:        l.Item.ID,
			Name:          l.Item.Name,
			UnitPrice:     l.Item.Price,
			Quantity:      l.Quantity,
			Customization: l.Customization,
		})
	}
	c.mu.Unlock()

	o, err := c.placer.PlaceOrder(ctx, snap)
	if err != nil {
		return models.Order{}, err
	}
	c.Clear()
	return o, nil
}
