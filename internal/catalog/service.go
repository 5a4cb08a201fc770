package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/internal/latency"
	"github.com/ommangate/order-up-scholars/internal/models"
)

var (
	ErrItemNotFound     = errors.New("food item not found")
	ErrCanteenNotFound  = errors.New("canteen not found")
	ErrCategoryNotFound = errors.New("food category not found")
	ErrValidation       = errors.New("validation failed")
)

// Service is the catalog collaborator: canteens, categories and food items.
// Every call crosses the simulated network before touching the store.
type Service struct {
	db    *gorm.DB
	delay latency.Simulator
}

func NewService(gdb *gorm.DB, delay latency.Simulator) *Service {
	return &Service{db: gdb, delay: delay}
}

func (s *Service) ListCanteens(ctx context.Context) ([]models.Canteen, error) {
	if err := s.delay.Read(ctx); err != nil {
		return nil, err
	}
	var canteens []models.Canteen
	if err := s.db.WithContext(ctx).Order("id").Find(&canteens).Error; err != nil {
		return nil, err
	}
	return canteens, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.FoodCategory, error) {
	if err := s.delay.Read(ctx); err != nil {
		return nil, err
	}
	var categories []models.FoodCategory
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListItems filters by canteen and/or category; zero means no filter.
func (s *Service) ListItems(ctx context.Context, canteenID, categoryID uint) ([]models.FoodItem, error) {
	if err := s.delay.Read(ctx); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Order("id")
	if canteenID != 0 {
		q = q.Where("canteen_id = ?", canteenID)
	}
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var items []models.FoodItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, id uint) (models.FoodItem, error) {
	if err := s.delay.Read(ctx); err != nil {
		return models.FoodItem{}, err
	}
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FoodItem{}, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
		}
		return models.FoodItem{}, err
	}
	return item, nil
}

func validateItem(item models.FoodItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	return nil
}

// CreateItem validates the payload, checks the referenced canteen and
// category exist, and inserts the item. Succeeds or fails atomically.
func (s *Service) CreateItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error) {
	if err := s.delay.Write(ctx); err != nil {
		return models.FoodItem{}, err
	}
	if err := validateItem(item); err != nil {
		return models.FoodItem{}, err
	}
	if err := s.checkRefs(ctx, item); err != nil {
		return models.FoodItem{}, err
	}
	item.ID = 0
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.FoodItem{}, err
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, item models.FoodItem) (models.FoodItem, error) {
	if err := s.delay.Write(ctx); err != nil {
		return models.FoodItem{}, err
	}
	if err := validateItem(item); err != nil {
		return models.FoodItem{}, err
	}
	if err := s.checkRefs(ctx, item); err != nil {
		return models.FoodItem{}, err
	}

	var existing models.FoodItem
	if err := s.db.WithContext(ctx).First(&existing, item.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FoodItem{}, fmt.Errorf("%w: id %d", ErrItemNotFound, item.ID)
		}
		return models.FoodItem{}, err
	}
	// Full overwrite, last write wins.
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return models.FoodItem{}, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uint) error {
	if err := s.delay.Write(ctx); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.FoodItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return nil
}

// ToggleAvailability flips the item's available flag and returns the
// updated item.
func (s *Service) ToggleAvailability(ctx context.Context, id uint) (models.FoodItem, error) {
	if err := s.delay.Write(ctx); err != nil {
		return models.FoodItem{}, err
	}
	var item models.FoodItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
			}
			return err
		}
		item.Available = !item.Available
		return tx.Model(&item).Update("available", item.Available).Error
	})
	if err != nil {
		return models.FoodItem{}, err
	}
	return item, nil
}

func (s *Service) checkRefs(ctx context.Context, item models.FoodItem) error {
	var canteen models.Canteen
	if err := s.db.WithContext(ctx).First(&canteen, item.CanteenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrCanteenNotFound, item.CanteenID)
		}
		return err
	}
	var category models.FoodCategory
	if err := s.db.WithContext(ctx).First(&category, item.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrCategoryNotFound, item.CategoryID)
		}
		return err
	}
	return nil
}
