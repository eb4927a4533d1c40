package dto

import "github.com/cloudesk-io/cloudesk/internal/application/billing/usecases"

// RevenueDTO is the recomputed monthly revenue of a company.
type RevenueDTO struct {
	CompanySID     string `json:"company_sid"`
	Currency       string `json:"currency"`
	MonthlyRevenue string `json:"monthly_revenue"`
	Entitlements   int    `json:"entitlements"`
}

func ToRevenueDTO(r *usecases.CompanyMonthlyRevenueResult) *RevenueDTO {
	if r == nil {
		return nil
	}
	return &RevenueDTO{
		CompanySID:     r.CompanySID,
		Currency:       r.Currency,
		MonthlyRevenue: r.MonthlyRevenue.StringFixed(2),
		Entitlements:   r.Entitlements,
	}
}

// ReconciliationDTO reports counter drift and whether it was repaired.
type ReconciliationDTO struct {
	CompanySID string `json:"company_sid"`
	Cached     string `json:"cached"`
	Computed   string `json:"computed"`
	Drift      string `json:"drift"`
	Repaired   bool   `json:"repaired"`
}

func ToReconciliationDTO(r *usecases.ReconcileCompanyRevenueResult) *ReconciliationDTO {
	if r == nil {
		return nil
	}
	return &ReconciliationDTO{
		CompanySID: r.CompanySID,
		Cached:     r.Cached.StringFixed(2),
		Computed:   r.Computed.StringFixed(2),
		Drift:      r.Drift.StringFixed(2),
		Repaired:   r.Repaired,
	}
}

// UserServiceCountDTO is one user's coverage summary.
type UserServiceCountDTO struct {
	UserID     uint           `json:"user_id"`
	Email      string         `json:"email"`
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}

// UsageDTO is the per-user service count report for a company.
type UsageDTO struct {
	CompanySID string                `json:"company_sid"`
	Users      []UserServiceCountDTO `json:"users"`
}

func ToUsageDTO(r *usecases.PerUserServiceCountResult) *UsageDTO {
	if r == nil {
		return nil
	}
	users := make([]UserServiceCountDTO, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, UserServiceCountDTO{
			UserID:     u.UserID,
			Email:      u.Email,
			Total:      u.Total,
			ByCategory: u.ByCategory,
		})
	}
	return &UsageDTO{CompanySID: r.CompanySID, Users: users}
}

// InvoiceLineDTO is one billable line of the invoice inputs.
type InvoiceLineDTO struct {
	EntitlementSID string `json:"entitlement_sid"`
	ServiceName    string `json:"service_name"`
	Category       string `json:"category"`
	UnitPrice      string `json:"unit_price"`
	Users          int    `json:"users"`
	LineTotal      string `json:"line_total"`
}

// InvoiceInputsDTO is the full input set for the invoice generator.
type InvoiceInputsDTO struct {
	CompanySID   string           `json:"company_sid"`
	CompanyName  string           `json:"company_name"`
	VATNumber    string           `json:"vat_number,omitempty"`
	Address      string           `json:"address,omitempty"`
	Currency     string           `json:"currency"`
	Lines        []InvoiceLineDTO `json:"lines"`
	MonthlyTotal string           `json:"monthly_total"`
}

func ToInvoiceInputsDTO(r *usecases.InvoiceInputsResult) *InvoiceInputsDTO {
	if r == nil {
		return nil
	}
	lines := make([]InvoiceLineDTO, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, InvoiceLineDTO{
			EntitlementSID: l.EntitlementSID,
			ServiceName:    l.ServiceName,
			Category:       l.Category,
			UnitPrice:      l.UnitPrice.StringFixed(2),
			Users:          l.Users,
			LineTotal:      l.LineTotal.StringFixed(2),
		})
	}
	return &InvoiceInputsDTO{
		CompanySID:   r.CompanySID,
		CompanyName:  r.CompanyName,
		VATNumber:    r.VATNumber,
		Address:      r.Address,
		Currency:     r.Currency,
		Lines:        lines,
		MonthlyTotal: r.MonthlyTotal.StringFixed(2),
	}
}
