package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudesk-io/cloudesk/internal/domain/setting"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// SystemSettingRepositoryImpl implements the setting.Repository interface
type SystemSettingRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSystemSettingRepository creates a new setting repository instance
func NewSystemSettingRepository(database *gorm.DB, logger logger.Interface) setting.Repository {
	return &SystemSettingRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// GetByKey retrieves a setting by category and key
func (r *SystemSettingRepositoryImpl) GetByKey(ctx context.Context, category, key string) (*setting.SystemSetting, error) {
	var model models.SystemSettingModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("category = ? AND `key` = ?", category, key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return settingToDomain(&model), nil
}

// GetByCategory retrieves all settings in a category
func (r *SystemSettingRepositoryImpl) GetByCategory(ctx context.Context, category string) ([]*setting.SystemSetting, error) {
	var rows []models.SystemSettingModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("category = ?", category).Order("`key` ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	out := make([]*setting.SystemSetting, 0, len(rows))
	for i := range rows {
		out = append(out, settingToDomain(&rows[i]))
	}
	return out, nil
}

// Upsert creates or updates a setting keyed on category plus key
func (r *SystemSettingRepositoryImpl) Upsert(ctx context.Context, s *setting.SystemSetting) error {
	model := &models.SystemSettingModel{
		SID:         s.SID(),
		Category:    s.Category(),
		Key:         s.Key(),
		Value:       s.Value(),
		ValueType:   s.ValueType().String(),
		Description: s.Description(),
		UpdatedBy:   s.UpdatedBy(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "value_type", "description", "updated_by", "version", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert setting",
			"category", s.Category(),
			"key", s.Key(),
			"error", err)
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	if s.ID() == 0 && model.ID != 0 {
		if err := s.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set setting ID: %w", err)
		}
	}

	r.logger.Infow("setting upserted",
		"category", s.Category(),
		"key", s.Key(),
		"value", s.Value())

	return nil
}

func settingToDomain(m *models.SystemSettingModel) *setting.SystemSetting {
	return setting.ReconstructSystemSetting(
		m.ID,
		m.SID,
		m.Category,
		m.Key,
		m.Value,
		setting.ValueType(m.ValueType),
		m.Description,
		m.UpdatedBy,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
