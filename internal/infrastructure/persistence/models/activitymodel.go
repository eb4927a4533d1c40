package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityModel is the GORM model for the activities table. The table
// is append-only: rows are never updated or deleted.
type ActivityModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	SID         string         `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	Type        string         `gorm:"column:type;type:varchar(50);not null;index"`
	Description string         `gorm:"column:description;type:varchar(1000);not null"`
	CompanyID   uint           `gorm:"column:company_id;not null;index"`
	UserID      uint           `gorm:"column:user_id"`
	UserEmail   string         `gorm:"column:user_email;type:varchar(255)"`
	Metadata    datatypes.JSON `gorm:"column:metadata"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}
