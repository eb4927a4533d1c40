package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyModel is the GORM model for the companies table
type CompanyModel struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"`
	SID            string          `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"column:name;type:varchar(200);not null"`
	VATNumber      string          `gorm:"column:vat_number;type:varchar(50)"`
	Address        string          `gorm:"column:address;type:varchar(500)"`
	PaymentMethod  string          `gorm:"column:payment_method;type:varchar(30)"`
	Currency       string          `gorm:"column:currency;type:varchar(3);not null;default:EUR"`
	MonthlyRevenue decimal.Decimal `gorm:"column:monthly_revenue;type:decimal(12,2);not null;default:0"`
	Version        int             `gorm:"column:version;not null;default:1"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}
