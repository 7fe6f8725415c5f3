package migration

import (
	"tmm-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Warnw("uuid-ossp extension unavailable", "error", err)
		}
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"menu item", &entities.MenuItem{}},
		{"order", &entities.Order{}},
		{"order item", &entities.OrderItem{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}
