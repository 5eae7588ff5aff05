package database

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipe-suggestions/backend/internal/models"
)

// Migrate brings the schema up to date. On postgres the vector extension is
// created first so recipe embeddings can be stored.
func Migrate(db *DB, logger *zap.Logger) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&models.User{}, &models.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("database schema is up to date", zap.String("driver", db.Dialector.Name()))
	return nil
}
