package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOfferingModel is the GORM model for the services table
type ServiceOfferingModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	SID         string          `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"column:name;type:varchar(200);not null"`
	Description string          `gorm:"column:description;type:varchar(1000)"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:decimal(12,2);not null"`
	Category    string          `gorm:"column:category;type:varchar(50);not null;index"`
	Active      bool            `gorm:"column:active;not null;default:true;index"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ServiceOfferingModel) TableName() string {
	return "services"
}
