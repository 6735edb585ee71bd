package database

import (
	"fmt"

	"dentapp/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared database handle, set by ConnectDB at startup
var DB *gorm.DB

// ConnectDB opens the Postgres connection described by the configuration
// and stores it in the package-level DB handle
func ConnectDB(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	return nil
}
