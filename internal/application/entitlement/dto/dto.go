package dto

import "time"

// EntitlementDTO is the presentation shape of a service entitlement.
// Monetary amounts are decimal strings to keep exact cents on the wire.
type EntitlementDTO struct {
	SID            string            `json:"sid"`
	ServiceSID     string            `json:"service_sid"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Status         string            `json:"status"`
	MonthlyPrice   string            `json:"monthly_price"`
	MonthlyRevenue string            `json:"monthly_revenue"`
	DurationMonths int               `json:"duration_months"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        *time.Time        `json:"end_date,omitempty"`
	Users          []EntitledUserDTO `json:"users"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// EntitledUserDTO is one user covered by an entitlement.
type EntitledUserDTO struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}
