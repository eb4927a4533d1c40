package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// EntitlementRepositoryImpl implements the entitlement.Repository interface
type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(database *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Create persists a new entitlement with its user set
func (r *EntitlementRepositoryImpl) Create(ctx context.Context, e *entitlement.ServiceEntitlement) error {
	model := entitlementToModel(e)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create entitlement",
			"sid", e.SID(),
			"company_id", e.CompanyID(),
			"error", err)
		return fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set entitlement ID: %w", err)
	}

	return nil
}

// Update persists changes to an existing entitlement. The user set is
// replaced wholesale so additions and removals both land in one write.
func (r *EntitlementRepositoryImpl) Update(ctx context.Context, e *entitlement.ServiceEntitlement) error {
	model := entitlementToModel(e)
	model.ID = e.ID()

	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.EntitlementModel{}).
		Where("id = ? AND version = ?", e.ID(), e.Version()-1).
		Updates(map[string]any{
			"status":        model.Status,
			"monthly_price": model.MonthlyPrice,
			"end_date":      model.EndDate,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update entitlement",
			"id", e.ID(),
			"error", result.Error)
		return fmt.Errorf("failed to update entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entitlement.ErrEntitlementNotFound
	}

	if err := tx.Where("entitlement_id = ?", e.ID()).Delete(&models.EntitlementUserModel{}).Error; err != nil {
		return fmt.Errorf("failed to replace entitlement users: %w", err)
	}
	if len(model.Users) > 0 {
		for i := range model.Users {
			model.Users[i].EntitlementID = e.ID()
		}
		if err := tx.Create(&model.Users).Error; err != nil {
			return fmt.Errorf("failed to replace entitlement users: %w", err)
		}
	}

	return nil
}

// Delete removes an entitlement and its user rows
func (r *EntitlementRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("entitlement_id = ?", id).Delete(&models.EntitlementUserModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete entitlement users: %w", err)
	}

	result := tx.Delete(&models.EntitlementModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete entitlement", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entitlement.ErrEntitlementNotFound
	}

	r.logger.Infow("entitlement deleted", "id", id)
	return nil
}

// GetByID retrieves an entitlement by numeric ID
func (r *EntitlementRepositoryImpl) GetByID(ctx context.Context, id uint) (*entitlement.ServiceEntitlement, error) {
	var model models.EntitlementModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Users").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return entitlementToDomain(&model)
}

// GetBySID retrieves an entitlement by its public prefixed ID
func (r *EntitlementRepositoryImpl) GetBySID(ctx context.Context, sid string) (*entitlement.ServiceEntitlement, error) {
	var model models.EntitlementModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Users").Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return entitlementToDomain(&model)
}

// ListByCompany retrieves all entitlements of a company
func (r *EntitlementRepositoryImpl) ListByCompany(ctx context.Context, companyID uint) ([]*entitlement.ServiceEntitlement, error) {
	return r.list(ctx, "company_id = ?", companyID)
}

// ListActiveByCompany retrieves the company's billable entitlements
func (r *EntitlementRepositoryImpl) ListActiveByCompany(ctx context.Context, companyID uint) ([]*entitlement.ServiceEntitlement, error) {
	var rows []models.EntitlementModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Users").
		Where("company_id = ? AND status = ?", companyID, entitlement.StatusActive.String()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return entitlementsToDomain(rows)
}

// ListPending retrieves entitlements awaiting manual validation, oldest first
func (r *EntitlementRepositoryImpl) ListPending(ctx context.Context) ([]*entitlement.ServiceEntitlement, error) {
	return r.list(ctx, "status = ?", entitlement.StatusPending.String())
}

// ListByUser retrieves entitlements covering the given user
func (r *EntitlementRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*entitlement.ServiceEntitlement, error) {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.EntitlementUserModel{}).
		Where("user_id = ?", userID).
		Pluck("entitlement_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list entitlements by user: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "id IN ?", ids)
}

func (r *EntitlementRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]*entitlement.ServiceEntitlement, error) {
	var rows []models.EntitlementModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Users").
		Where(query, args...).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return entitlementsToDomain(rows)
}

// --- mapping ---

func entitlementToModel(e *entitlement.ServiceEntitlement) *models.EntitlementModel {
	users := make([]models.EntitlementUserModel, 0, len(e.Users()))
	for _, u := range e.Users() {
		users = append(users, models.EntitlementUserModel{
			UserID: u.UserID,
			Email:  u.Email,
		})
	}

	return &models.EntitlementModel{
		SID:            e.SID(),
		CompanyID:      e.CompanyID(),
		ServiceID:      e.ServiceID(),
		ServiceSID:     e.ServiceSID(),
		Name:           e.Name(),
		Category:       e.Category().String(),
		Status:         e.Status().String(),
		MonthlyPrice:   e.MonthlyPrice(),
		DurationMonths: e.Duration().Months(),
		StartDate:      e.StartDate(),
		EndDate:        e.EndDate(),
		Version:        e.Version(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
		Users:          users,
	}
}

func entitlementToDomain(m *models.EntitlementModel) (*entitlement.ServiceEntitlement, error) {
	users := make([]entitlement.EntitledUser, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, entitlement.EntitledUser{
			UserID: u.UserID,
			Email:  u.Email,
		})
	}

	return entitlement.ReconstructServiceEntitlement(
		m.ID,
		m.SID,
		m.CompanyID,
		m.ServiceID,
		m.ServiceSID,
		m.Name,
		catalog.Category(m.Category),
		entitlement.Status(m.Status),
		users,
		m.MonthlyPrice,
		pricing.CommitmentDuration(m.DurationMonths),
		m.StartDate,
		m.EndDate,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func entitlementsToDomain(rows []models.EntitlementModel) ([]*entitlement.ServiceEntitlement, error) {
	out := make([]*entitlement.ServiceEntitlement, 0, len(rows))
	for i := range rows {
		e, err := entitlementToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
