package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/internal/models"
)

// Seed loads the campus fixtures: two canteens, the category list, a starter
// menu, and one admin plus one student account. It is idempotent in the
// cheapest way possible: if any canteen exists the store is assumed seeded.
func Seed(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Canteen{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	canteens := []models.Canteen{
		{Name: "The Hungry Scholar", Location: "IT Building, MIT ADT University, Pune"},
		{Name: "Main Canteen", Location: "Main Campus, MIT ADT University, Pune"},
	}

	categories := []models.FoodCategory{
		{Name: "Breakfast"},
		{Name: "Juices/Fresh Fruits"},
		{Name: "Hot Drinks"},
		{Name: "Shakes"},
		{Name: "Salads"},
		{Name: "Starters"},
		{Name: "Lunch"},
		{Name: "Evening Snacks"},
		{Name: "Desserts"},
		{Name: "Beverages"},
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&canteens).Error; err != nil {
			return err
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		items := []models.FoodItem{
			{Name: "Poha", Description: "Flattened rice with herbs and spices", Price: 30, CategoryID: categories[0].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Idli Sambhar", Description: "Steamed rice cakes with lentil soup", Price: 40, CategoryID: categories[0].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Vada Pav", Description: "Spicy potato fritter in a bun", Price: 20, CategoryID: categories[0].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Toast Sandwich", Description: "Grilled sandwich with vegetables", Price: 35, CategoryID: categories[0].ID, CanteenID: canteens[1].ID, Available: true},
			{Name: "Tea", Description: "Indian masala chai", Price: 15, CategoryID: categories[2].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Coffee", Description: "Hot coffee with milk", Price: 20, CategoryID: categories[2].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Chocolate Shake", Description: "Rich chocolate milkshake", Price: 60, CategoryID: categories[3].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Mango Shake", Description: "Fresh mango milkshake", Price: 70, CategoryID: categories[3].ID, CanteenID: canteens[1].ID, Available: true},
			{Name: "Thali", Description: "Full meal with roti, rice, dal, sabzi, and more", Price: 100, CategoryID: categories[6].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Biryani", Description: "Spiced rice dish with vegetables", Price: 90, CategoryID: categories[6].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Samosa", Description: "Fried pastry with spiced potato filling", Price: 15, CategoryID: categories[7].ID, CanteenID: canteens[0].ID, Available: true},
			{Name: "Kachori", Description: "Fried spicy snack", Price: 20, CategoryID: categories[7].ID, CanteenID: canteens[1].ID, Available: true},
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users := []models.User{
			{Name: "Admin User", Email: "admin@example.com", Phone: "1234567890", Role: models.RoleAdmin, PasswordHash: string(hash)},
			{Name: "Student User", Email: "student@example.com", Phone: "9876543210", Role: models.RoleStudent, PasswordHash: string(hash)},
		}
		return tx.Create(&users).Error
	})
}
