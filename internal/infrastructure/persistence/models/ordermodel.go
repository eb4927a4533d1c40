package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel is the GORM model for the orders table. Company contact
// and billing details are denormalized on purpose: they are a snapshot
// taken at order time.
type OrderModel struct {
	ID                    uint             `gorm:"primaryKey;autoIncrement"`
	SID                   string           `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Status                string           `gorm:"column:status;type:varchar(20);not null;index"`
	CompanyID             uint             `gorm:"column:company_id;not null;index"`
	CompanySID            string           `gorm:"column:company_sid;type:varchar(50);not null"`
	CompanyName           string           `gorm:"column:company_name;type:varchar(200);not null"`
	VATNumber             string           `gorm:"column:vat_number;type:varchar(50)"`
	Address               string           `gorm:"column:address;type:varchar(500)"`
	RequestedByID         uint             `gorm:"column:requested_by_id;not null"`
	RequestedByEmail      string           `gorm:"column:requested_by_email;type:varchar(255)"`
	PaymentMethod         string           `gorm:"column:payment_method;type:varchar(30);not null"`
	MonthlyBaseTotal      decimal.Decimal  `gorm:"column:monthly_base_total;type:decimal(12,2);not null"`
	EffectiveMonthlyPrice decimal.Decimal  `gorm:"column:effective_monthly_price;type:decimal(12,2);not null"`
	TotalAmount           decimal.Decimal  `gorm:"column:total_amount;type:decimal(12,2);not null"`
	Currency              string           `gorm:"column:currency;type:varchar(3);not null"`
	Version               int              `gorm:"column:version;not null;default:1"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
	Items                 []OrderItemModel `gorm:"foreignKey:OrderID"`
	Users                 []OrderUserModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM model for the order_items table: one priced
// service line of an order.
type OrderItemModel struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	OrderID         uint            `gorm:"column:order_id;not null;index"`
	ServiceID       uint            `gorm:"column:service_id;not null"`
	ServiceSID      string          `gorm:"column:service_sid;type:varchar(50);not null"`
	Name            string          `gorm:"column:name;type:varchar(200);not null"`
	Category        string          `gorm:"column:category;type:varchar(50);not null"`
	BasePrice       decimal.Decimal `gorm:"column:base_price;type:decimal(12,2);not null"`
	DurationMonths  int             `gorm:"column:duration_months;not null"`
	DiscountRate    decimal.Decimal `gorm:"column:discount_rate;type:decimal(5,4);not null"`
	DiscountedPrice decimal.Decimal `gorm:"column:discounted_price;type:decimal(12,2);not null"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:decimal(12,2);not null"`
	UsersCount      int             `gorm:"column:users_count;not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderUserModel is the GORM model for the order_users table: the set of
// users an order covers.
type OrderUserModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	OrderID   uint   `gorm:"column:order_id;not null;index:idx_order_users_order_user,unique,priority:1"`
	UserID    uint   `gorm:"column:user_id;not null;index:idx_order_users_order_user,unique,priority:2"`
	FirstName string `gorm:"column:first_name;type:varchar(100)"`
	LastName  string `gorm:"column:last_name;type:varchar(100)"`
	Email     string `gorm:"column:email;type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (OrderUserModel) TableName() string {
	return "order_users"
}
