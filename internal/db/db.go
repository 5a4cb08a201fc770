package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ommangate/order-up-scholars/configs"
	"github.com/ommangate/order-up-scholars/internal/models"
)

// Open connects to the backing store. The default driver is an in-memory
// SQLite database, which stands in for the campus backend; postgres is
// available for a deployment that wants its catalog to survive restarts.
func Open(cfg configs.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Store.Driver {
	case "", "sqlite":
		dsn := cfg.Store.DSN
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(cfg.Store.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Canteen{},
		&models.FoodCategory{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}
