package dto

import "time"

// OrderDTO is the presentation shape of an order. Monetary amounts are
// decimal strings to keep exact cents on the wire.
type OrderDTO struct {
	SID                   string           `json:"sid"`
	Status                string           `json:"status"`
	CompanySID            string           `json:"company_sid"`
	CompanyName           string           `json:"company_name"`
	VATNumber             string           `json:"vat_number,omitempty"`
	Address               string           `json:"address,omitempty"`
	RequestedByEmail      string           `json:"requested_by_email"`
	PaymentMethod         string           `json:"payment_method"`
	Services              []ServiceLineDTO `json:"services"`
	Users                 []OrderUserDTO   `json:"users"`
	MonthlyBaseTotal      string           `json:"monthly_base_total"`
	EffectiveMonthlyPrice string           `json:"effective_monthly_price"`
	TotalAmount           string           `json:"total_amount"`
	Currency              string           `json:"currency"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// ServiceLineDTO is one priced service line of an order.
type ServiceLineDTO struct {
	ServiceSID      string `json:"service_sid"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	BasePrice       string `json:"base_price"`
	DurationMonths  int    `json:"duration_months"`
	DiscountRate    string `json:"discount_rate"`
	DiscountedPrice string `json:"discounted_price"`
	TotalPrice      string `json:"total_price"`
	UsersCount      int    `json:"users_count"`
}

// OrderUserDTO is one covered user of an order.
type OrderUserDTO struct {
	UserID    uint   `json:"user_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
}
