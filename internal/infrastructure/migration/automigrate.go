package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// GormAutoMigrateStrategy implements migration using GORM AutoMigrate
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM AutoMigrate strategy
func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm-automigrate"),
	}
}

// Migrate executes GORM AutoMigrate for the given models
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm automigrate", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("automigrate failed", "error", err)
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	s.logger.Infow("automigrate completed successfully")
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns the full set of models managed by schema
// migration, in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CompanyModel{},
		&models.ServiceOfferingModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.OrderUserModel{},
		&models.EntitlementModel{},
		&models.EntitlementUserModel{},
		&models.ActivityModel{},
		&models.SystemSettingModel{},
	}
}
