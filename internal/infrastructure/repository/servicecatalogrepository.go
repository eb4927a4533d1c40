package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// ServiceCatalogRepositoryImpl implements the catalog.Repository interface
type ServiceCatalogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewServiceCatalogRepository creates a new catalog repository instance
func NewServiceCatalogRepository(database *gorm.DB, logger logger.Interface) catalog.Repository {
	return &ServiceCatalogRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Create creates a new catalog entry
func (r *ServiceCatalogRepositoryImpl) Create(ctx context.Context, s *catalog.ServiceOffering) error {
	model := serviceToModel(s)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create service", "sid", s.SID(), "error", err)
		return fmt.Errorf("failed to create service: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set service ID: %w", err)
	}

	return nil
}

// Update updates an existing catalog entry
func (r *ServiceCatalogRepositoryImpl) Update(ctx context.Context, s *catalog.ServiceOffering) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ServiceOfferingModel{}).
		Where("id = ?", s.ID()).
		Updates(map[string]any{
			"name":        s.Name(),
			"description": s.Description(),
			"base_price":  s.BasePrice(),
			"category":    s.Category().String(),
			"active":      s.Active(),
			"updated_at":  s.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update service", "id", s.ID(), "error", result.Error)
		return fmt.Errorf("failed to update service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}

	return nil
}

// GetByID retrieves a service by numeric ID
func (r *ServiceCatalogRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.ServiceOffering, error) {
	var model models.ServiceOfferingModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return serviceToDomain(&model)
}

// GetBySID retrieves a service by its public prefixed ID
func (r *ServiceCatalogRepositoryImpl) GetBySID(ctx context.Context, sid string) (*catalog.ServiceOffering, error) {
	var model models.ServiceOfferingModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return serviceToDomain(&model)
}

// ListActive retrieves all services available for ordering
func (r *ServiceCatalogRepositoryImpl) ListActive(ctx context.Context) ([]*catalog.ServiceOffering, error) {
	var rows []models.ServiceOfferingModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("active = ?", true).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return servicesToDomain(rows)
}

// ListByCategory retrieves active services of one category
func (r *ServiceCatalogRepositoryImpl) ListByCategory(ctx context.Context, category catalog.Category) ([]*catalog.ServiceOffering, error) {
	var rows []models.ServiceOfferingModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("active = ? AND category = ?", true, category.String()).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return servicesToDomain(rows)
}

// --- mapping ---

func serviceToModel(s *catalog.ServiceOffering) *models.ServiceOfferingModel {
	return &models.ServiceOfferingModel{
		SID:         s.SID(),
		Name:        s.Name(),
		Description: s.Description(),
		BasePrice:   s.BasePrice(),
		Category:    s.Category().String(),
		Active:      s.Active(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func serviceToDomain(m *models.ServiceOfferingModel) (*catalog.ServiceOffering, error) {
	return catalog.ReconstructServiceOffering(
		m.ID,
		m.SID,
		m.Name,
		m.Description,
		m.BasePrice,
		catalog.Category(m.Category),
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func servicesToDomain(rows []models.ServiceOfferingModel) ([]*catalog.ServiceOffering, error) {
	out := make([]*catalog.ServiceOffering, 0, len(rows))
	for i := range rows {
		s, err := serviceToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
