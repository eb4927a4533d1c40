package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// CompanyRepositoryImpl implements the company.Repository interface
type CompanyRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCompanyRepository creates a new company repository instance
func NewCompanyRepository(database *gorm.DB, logger logger.Interface) company.Repository {
	return &CompanyRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Create persists a new company
func (r *CompanyRepositoryImpl) Create(ctx context.Context, c *company.Company) error {
	model := companyToModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create company", "sid", c.SID(), "error", err)
		return fmt.Errorf("failed to create company: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set company ID: %w", err)
	}

	return nil
}

// Update persists changes to an existing company. The revenue counter
// is excluded: it only moves through AddMonthlyRevenue and
// SetMonthlyRevenue.
func (r *CompanyRepositoryImpl) Update(ctx context.Context, c *company.Company) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.CompanyModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"name":           c.Name(),
			"vat_number":     c.VATNumber(),
			"address":        c.Address(),
			"payment_method": c.PaymentMethod(),
			"currency":       c.Currency(),
			"version":        c.Version(),
			"updated_at":     c.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update company", "id", c.ID(), "error", result.Error)
		return fmt.Errorf("failed to update company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// GetByID retrieves a company by numeric ID
func (r *CompanyRepositoryImpl) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	var model models.CompanyModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return companyToDomain(&model)
}

// GetBySID retrieves a company by its public prefixed ID
func (r *CompanyRepositoryImpl) GetBySID(ctx context.Context, sid string) (*company.Company, error) {
	var model models.CompanyModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return companyToDomain(&model)
}

// AddMonthlyRevenue applies a delta to the revenue counter as a single
// SQL-side increment. Concurrent writers each add their own delta
// without reading the counter first, so no update is lost.
func (r *CompanyRepositoryImpl) AddMonthlyRevenue(ctx context.Context, companyID uint, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.CompanyModel{}).
		Where("id = ?", companyID).
		Update("monthly_revenue", gorm.Expr("monthly_revenue + ?", delta))
	if result.Error != nil {
		r.logger.Errorw("failed to apply revenue delta",
			"company_id", companyID,
			"delta", delta,
			"error", result.Error)
		return fmt.Errorf("failed to apply revenue delta: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}

	r.logger.Infow("revenue counter updated", "company_id", companyID, "delta", delta)
	return nil
}

// SetMonthlyRevenue overwrites the counter. Reconciliation repair only.
func (r *CompanyRepositoryImpl) SetMonthlyRevenue(ctx context.Context, companyID uint, value decimal.Decimal) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.CompanyModel{}).
		Where("id = ?", companyID).
		Update("monthly_revenue", value)
	if result.Error != nil {
		r.logger.Errorw("failed to set revenue counter",
			"company_id", companyID,
			"value", value,
			"error", result.Error)
		return fmt.Errorf("failed to set revenue counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}

	r.logger.Warnw("revenue counter overwritten", "company_id", companyID, "value", value)
	return nil
}

// --- mapping ---

func companyToModel(c *company.Company) *models.CompanyModel {
	return &models.CompanyModel{
		SID:            c.SID(),
		Name:           c.Name(),
		VATNumber:      c.VATNumber(),
		Address:        c.Address(),
		PaymentMethod:  c.PaymentMethod(),
		Currency:       c.Currency(),
		MonthlyRevenue: c.MonthlyRevenue(),
		Version:        c.Version(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func companyToDomain(m *models.CompanyModel) (*company.Company, error) {
	return company.ReconstructCompany(
		m.ID,
		m.SID,
		m.Name,
		m.VATNumber,
		m.Address,
		m.PaymentMethod,
		m.Currency,
		m.MonthlyRevenue,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
