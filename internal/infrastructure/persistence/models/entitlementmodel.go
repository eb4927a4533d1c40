package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntitlementModel is the GORM model for the entitlements table. Price
// and duration are frozen at creation time.
type EntitlementModel struct {
	ID             uint                   `gorm:"primaryKey;autoIncrement"`
	SID            string                 `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	CompanyID      uint                   `gorm:"column:company_id;not null;index"`
	ServiceID      uint                   `gorm:"column:service_id;not null;index"`
	ServiceSID     string                 `gorm:"column:service_sid;type:varchar(50);not null"`
	Name           string                 `gorm:"column:name;type:varchar(200);not null"`
	Category       string                 `gorm:"column:category;type:varchar(50);not null"`
	Status         string                 `gorm:"column:status;type:varchar(20);not null;index"`
	MonthlyPrice   decimal.Decimal        `gorm:"column:monthly_price;type:decimal(12,2);not null"`
	DurationMonths int                    `gorm:"column:duration_months;not null"`
	StartDate      time.Time              `gorm:"column:start_date;not null"`
	EndDate        *time.Time             `gorm:"column:end_date"`
	Version        int                    `gorm:"column:version;not null;default:1"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
	Users          []EntitlementUserModel `gorm:"foreignKey:EntitlementID"`
}

// TableName returns the table name for GORM
func (EntitlementModel) TableName() string {
	return "entitlements"
}

// EntitlementUserModel is the GORM model for the entitlement_users
// table: the users covered by one entitlement.
type EntitlementUserModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	EntitlementID uint   `gorm:"column:entitlement_id;not null;index:idx_entitlement_users_pair,unique,priority:1"`
	UserID        uint   `gorm:"column:user_id;not null;index:idx_entitlement_users_pair,unique,priority:2;index"`
	Email         string `gorm:"column:email;type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (EntitlementUserModel) TableName() string {
	return "entitlement_users"
}
