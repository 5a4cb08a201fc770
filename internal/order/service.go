package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/internal/latency"
	"github.com/ommangate/order-up-scholars/internal/logging"
	"github.com/ommangate/order-up-scholars/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrEmptySnapshot = errors.New("order snapshot has no lines")
)

// SnapshotLine is one frozen cart line handed to PlaceOrder.
type SnapshotLine struct {
	ItemID        uint
	Name          string
	UnitPrice     float64
	Quantity      int
	Customization string
}

// Snapshot is the cart at the moment of checkout. Line order is preserved
// into the stored order.
type Snapshot struct {
	UserID    uint
	CanteenID uint
	Lines     []SnapshotLine
}

// Notifier receives fire-and-forget order events. Implementations must not
// block order placement; failures are theirs to log.
type Notifier interface {
	OrderPlaced(userID uint, o models.Order)
	OrderReady(userID uint, o models.Order)
}

// Service is the order collaborator: placement, listing and status updates.
type Service struct {
	db       *gorm.DB
	delay    latency.Simulator
	notifier Notifier
}

func NewService(gdb *gorm.DB, delay latency.Simulator, n Notifier) *Service {
	return &Service{db: gdb, delay: delay, notifier: n}
}

// PlaceOrder persists the snapshot as a new pending order. The order id and
// pickup QR token are generated here; the total is computed from the lines
// and never recomputed afterwards. Order and lines commit in one
// transaction.
func (s *Service) PlaceOrder(ctx context.Context, snap Snapshot) (models.Order, error) {
	if err := s.delay.Write(ctx); err != nil {
		return models.Order{}, err
	}
	if len(snap.Lines) == 0 {
		return models.Order{}, ErrEmptySnapshot
	}

	var total float64
	lines := make([]models.OrderLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		total += l.UnitPrice * float64(l.Quantity)
		lines = append(lines, models.OrderLine{
			FoodItemID:    l.ItemID,
			Name:          l.Name,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			Customization: l.Customization,
		})
	}

	o := models.Order{
		ID:          uuid.NewString(),
		UserID:      snap.UserID,
		CanteenID:   snap.CanteenID,
		Status:      models.StatusPending,
		TotalAmount: total,
		QRCode:      "pickup-" + uuid.NewString(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = o.ID
		}
		return tx.CreateInBatches(&lines, len(lines)).Error
	})
	if err != nil {
		return models.Order{}, err
	}
	o.Lines = lines

	if s.notifier != nil {
		go s.notifier.OrderPlaced(o.UserID, o)
	}
	return o, nil
}

// ListOrders returns orders newest first, with lines in insertion order.
// A zero userID means all orders (the admin view).
func (s *Service) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	if err := s.delay.Read(ctx); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Order("created_at DESC")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (models.Order, error) {
	if err := s.delay.Read(ctx); err != nil {
		return models.Order{}, err
	}
	var o models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return models.Order{}, err
	}
	return o, nil
}

// UpdateStatus overwrites the order's status. Any known status may follow
// any other; the canteen staff sometimes do walk orders backwards, so only
// unknown status values are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if err := s.delay.Write(ctx); err != nil {
		return models.Order{}, err
	}
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	prev := o.Status
	if err := s.db.WithContext(ctx).Model(&o).Update("status", status).Error; err != nil {
		return models.Order{}, err
	}
	o.Status = status

	if s.notifier != nil && status == models.StatusReady && prev != models.StatusReady {
		go s.notifier.OrderReady(o.UserID, o)
	}
	logging.FromCtx(ctx).Info("order status updated",
		"order_id", o.ID, "from", string(prev), "to", string(status))
	return o, nil
}

// CountByStatus powers the admin dashboard summary.
func (s *Service) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	if err := s.delay.Read(ctx); err != nil {
		return nil, err
	}
	type row struct {
		Status models.OrderStatus
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.OrderStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
