// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopdash/backend/internal/config"
	"github.com/shopdash/backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.Order{},
		&models.TrackingEvent{},
		&models.Email{},
		&models.EmailFlow{},
		&models.TrackingConfig{},
		&models.ProfitEntry{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Order indexes: the batch pipeline scans by store+status+flags and
		// the velocity window scans by store+date.
		"CREATE INDEX IF NOT EXISTS idx_orders_store_status ON orders(store_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_store_date ON orders(store_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_store_address_valid ON orders(store_id, address_valid)",
		"CREATE INDEX IF NOT EXISTS idx_orders_tracking_number ON orders(tracking_number)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_store_in_stock ON products(store_id, in_stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_store_name ON products(store_id, name)",

		// Email indexes: dedup and follow-up selection filter on these.
		"CREATE INDEX IF NOT EXISTS idx_emails_order_type_status ON emails(order_id, type, status)",
		"CREATE INDEX IF NOT EXISTS idx_emails_store_created_at ON emails(store_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_emails_sent_at ON emails(sent_at)",

		// Tracking events are read newest-first per order.
		"CREATE INDEX IF NOT EXISTS idx_tracking_events_order_ts ON tracking_events(order_id, timestamp DESC)",

		"CREATE INDEX IF NOT EXISTS idx_email_flows_store_sort ON email_flows(store_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_profit_entries_store_month ON profit_entries(store_id, month)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
