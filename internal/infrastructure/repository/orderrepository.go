package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
	"github.com/cloudesk-io/cloudesk/internal/domain/pricing"
	"github.com/cloudesk-io/cloudesk/internal/infrastructure/persistence/models"
	"github.com/cloudesk-io/cloudesk/internal/shared/db"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// OrderRepositoryImpl implements the order.Repository interface
type OrderRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(database *gorm.DB, logger logger.Interface) order.Repository {
	return &OrderRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Create persists a new order with its service lines and user set
func (r *OrderRepositoryImpl) Create(ctx context.Context, o *order.Order) error {
	model := orderToModel(o)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create order",
			"sid", o.SID(),
			"company_id", o.Customer().CompanyID,
			"error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := o.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set order ID: %w", err)
	}

	r.logger.Infow("order created",
		"id", model.ID,
		"sid", model.SID,
		"company_id", model.CompanyID,
		"total_amount", model.TotalAmount)

	return nil
}

// GetByID retrieves an order by numeric ID
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Items").Preload("Users").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return orderToDomain(&model)
}

// GetBySID retrieves an order by its public prefixed ID
func (r *OrderRepositoryImpl) GetBySID(ctx context.Context, sid string) (*order.Order, error) {
	var model models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Items").Preload("Users").Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return orderToDomain(&model)
}

// ListByCompany retrieves all orders of a company, newest first
func (r *OrderRepositoryImpl) ListByCompany(ctx context.Context, companyID uint) ([]*order.Order, error) {
	var rows []models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Items").Preload("Users").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return ordersToDomain(rows)
}

// ListByStatus retrieves all orders in a given status, oldest first
func (r *OrderRepositoryImpl) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var rows []models.OrderModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Items").Preload("Users").
		Where("status = ?", status.String()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return ordersToDomain(rows)
}

// TransitionFromPending persists the order's new status guarded on the
// stored row still being pending. The guard is the compare-and-swap
// that makes concurrent confirmation attempts fail cleanly instead of
// double-provisioning.
func (r *OrderRepositoryImpl) TransitionFromPending(ctx context.Context, o *order.Order) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", o.ID(), order.StatusPending.String()).
		Updates(map[string]any{
			"status":     o.Status().String(),
			"updated_at": o.UpdatedAt(),
			"version":    o.Version(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to transition order",
			"id", o.ID(),
			"target_status", o.Status().String(),
			"error", result.Error)
		return fmt.Errorf("failed to transition order: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.OrderModel{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}
		if count == 0 {
			return order.ErrOrderNotFound
		}
		return order.ErrAlreadyProcessed
	}

	r.logger.Infow("order transitioned",
		"id", o.ID(),
		"sid", o.SID(),
		"status", o.Status().String())

	return nil
}

// --- mapping ---

func orderToModel(o *order.Order) *models.OrderModel {
	cust := o.Customer()
	billing := o.Billing()

	items := make([]models.OrderItemModel, 0, len(o.Services()))
	for _, line := range o.Services() {
		items = append(items, models.OrderItemModel{
			ServiceID:       line.ServiceID,
			ServiceSID:      line.ServiceSID,
			Name:            line.Name,
			Category:        line.Category.String(),
			BasePrice:       line.BasePrice,
			DurationMonths:  line.Duration.Months(),
			DiscountRate:    line.Discount,
			DiscountedPrice: line.DiscountedPrice,
			TotalPrice:      line.TotalPrice,
			UsersCount:      line.UsersCount,
		})
	}

	users := make([]models.OrderUserModel, 0, len(o.Users()))
	for _, u := range o.Users() {
		users = append(users, models.OrderUserModel{
			UserID:    u.UserID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}

	return &models.OrderModel{
		SID:                   o.SID(),
		Status:                o.Status().String(),
		CompanyID:             cust.CompanyID,
		CompanySID:            cust.CompanySID,
		CompanyName:           cust.CompanyName,
		VATNumber:             cust.VATNumber,
		Address:               cust.Address,
		RequestedByID:         cust.RequestedByID,
		RequestedByEmail:      cust.RequestedByEmail,
		PaymentMethod:         billing.Method.String(),
		MonthlyBaseTotal:      billing.MonthlyBaseTotal,
		EffectiveMonthlyPrice: billing.EffectiveMonthlyPrice,
		TotalAmount:           billing.TotalAmount,
		Currency:              billing.Currency,
		Version:               o.Version(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Items:                 items,
		Users:                 users,
	}
}

func orderToDomain(m *models.OrderModel) (*order.Order, error) {
	lines := make([]order.ServiceLine, 0, len(m.Items))
	for _, item := range m.Items {
		lines = append(lines, order.ServiceLine{
			ServiceID:       item.ServiceID,
			ServiceSID:      item.ServiceSID,
			Name:            item.Name,
			Category:        catalog.Category(item.Category),
			BasePrice:       item.BasePrice,
			Duration:        pricing.CommitmentDuration(item.DurationMonths),
			Discount:        item.DiscountRate,
			DiscountedPrice: item.DiscountedPrice,
			TotalPrice:      item.TotalPrice,
			UsersCount:      item.UsersCount,
		})
	}

	users := make([]order.OrderUser, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, order.OrderUser{
			UserID:    u.UserID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}

	return order.ReconstructOrder(
		m.ID,
		m.SID,
		order.Status(m.Status),
		order.CustomerSnapshot{
			CompanyID:        m.CompanyID,
			CompanySID:       m.CompanySID,
			CompanyName:      m.CompanyName,
			VATNumber:        m.VATNumber,
			Address:          m.Address,
			RequestedByID:    m.RequestedByID,
			RequestedByEmail: m.RequestedByEmail,
		},
		lines,
		users,
		order.Billing{
			Method:                order.PaymentMethod(m.PaymentMethod),
			MonthlyBaseTotal:      m.MonthlyBaseTotal,
			EffectiveMonthlyPrice: m.EffectiveMonthlyPrice,
			TotalAmount:           m.TotalAmount,
			Currency:              m.Currency,
		},
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func ordersToDomain(rows []models.OrderModel) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(rows))
	for i := range rows {
		o, err := orderToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
