package dto

import (
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
)

// ToEntitlementDTO converts an entitlement aggregate to its presentation shape
func ToEntitlementDTO(e *entitlement.ServiceEntitlement) *EntitlementDTO {
	if e == nil {
		return nil
	}

	users := make([]EntitledUserDTO, 0, len(e.Users()))
	for _, u := range e.Users() {
		users = append(users, EntitledUserDTO{
			UserID: u.UserID,
			Email:  u.Email,
		})
	}

	return &EntitlementDTO{
		SID:            e.SID(),
		ServiceSID:     e.ServiceSID(),
		Name:           e.Name(),
		Category:       e.Category().String(),
		Status:         e.Status().String(),
		MonthlyPrice:   e.MonthlyPrice().StringFixed(2),
		MonthlyRevenue: e.MonthlyRevenue().StringFixed(2),
		DurationMonths: e.Duration().Months(),
		StartDate:      e.StartDate(),
		EndDate:        e.EndDate(),
		Users:          users,
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}

// ToEntitlementDTOList converts a list of entitlements
func ToEntitlementDTOList(ents []*entitlement.ServiceEntitlement) []*EntitlementDTO {
	dtos := make([]*EntitlementDTO, 0, len(ents))
	for _, e := range ents {
		if e != nil {
			dtos = append(dtos, ToEntitlementDTO(e))
		}
	}
	return dtos
}
