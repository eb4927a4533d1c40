package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cloudesk-io/cloudesk/internal/domain/activity"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// ActivityRepositoryImpl implements the activity.Repository interface
type ActivityRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewActivityRepository creates a new activity repository instance
func NewActivityRepository(database *gorm.DB, logger logger.Interface) activity.Repository {
	return &ActivityRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Append persists a new audit entry
func (r *ActivityRepositoryImpl) Append(ctx context.Context, a *activity.Activity) error {
	var metadata datatypes.JSON
	if len(a.Metadata()) > 0 {
		raw, err := json.Marshal(a.Metadata())
		if err != nil {
			return fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	model := &models.ActivityModel{
		SID:         a.SID(),
		Type:        a.Type().String(),
		Description: a.Description(),
		CompanyID:   a.CompanyID(),
		UserID:      a.UserID(),
		UserEmail:   a.UserEmail(),
		Metadata:    metadata,
		CreatedAt:   a.CreatedAt(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to append activity",
			"type", a.Type().String(),
			"company_id", a.CompanyID(),
			"error", err)
		return fmt.Errorf("failed to append activity: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set activity ID: %w", err)
	}

	return nil
}

// ListByCompany retrieves a company's audit trail, newest first
func (r *ActivityRepositoryImpl) ListByCompany(ctx context.Context, companyID uint, limit int) ([]*activity.Activity, error) {
	return r.list(ctx, limit, "company_id = ?", companyID)
}

// ListByType retrieves entries of one type for a company, newest first
func (r *ActivityRepositoryImpl) ListByType(ctx context.Context, companyID uint, typ activity.Type, limit int) ([]*activity.Activity, error) {
	return r.list(ctx, limit, "company_id = ? AND type = ?", companyID, typ.String())
}

func (r *ActivityRepositoryImpl) list(ctx context.Context, limit int, query string, args ...any) ([]*activity.Activity, error) {
	var rows []models.ActivityModel
	tx := db.GetTxFromContext(ctx, r.db).
		Where(query, args...).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	out := make([]*activity.Activity, 0, len(rows))
	for i := range rows {
		a, err := activityToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func activityToDomain(m *models.ActivityModel) (*activity.Activity, error) {
	var metadata map[string]any
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode activity metadata: %w", err)
		}
	}

	return activity.ReconstructActivity(
		m.ID,
		m.SID,
		activity.Type(m.Type),
		m.Description,
		m.CompanyID,
		m.UserID,
		m.UserEmail,
		metadata,
		m.CreatedAt,
	)
}
