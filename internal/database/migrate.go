package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/successpath-portal/internal/models"
)

// Migrate creates the portal_sessions table the SQL session store writes to.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SessionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate session tables: %w", err)
	}
	return nil
}
