package dto

import (
	"github.com/cloudesk-io/cloudesk/internal/domain/order"
)

// ToOrderDTO converts an order aggregate to its presentation shape
func ToOrderDTO(o *order.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	services := make([]ServiceLineDTO, 0, len(o.Services()))
	for _, line := range o.Services() {
		services = append(services, ServiceLineDTO{
			ServiceSID:      line.ServiceSID,
			Name:            line.Name,
			Category:        line.Category.String(),
			BasePrice:       line.BasePrice.StringFixed(2),
			DurationMonths:  line.Duration.Months(),
			DiscountRate:    line.Discount.String(),
			DiscountedPrice: line.DiscountedPrice.StringFixed(2),
			TotalPrice:      line.TotalPrice.StringFixed(2),
			UsersCount:      line.UsersCount,
		})
	}

	users := make([]OrderUserDTO, 0, len(o.Users()))
	for _, u := range o.Users() {
		users = append(users, OrderUserDTO{
			UserID:    u.UserID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}

	return &OrderDTO{
		SID:                   o.SID(),
		Status:                o.Status().String(),
		CompanySID:            o.Customer().CompanySID,
		CompanyName:           o.Customer().CompanyName,
		VATNumber:             o.Customer().VATNumber,
		Address:               o.Customer().Address,
		RequestedByEmail:      o.Customer().RequestedByEmail,
		PaymentMethod:         o.Billing().Method.String(),
		Services:              services,
		Users:                 users,
		MonthlyBaseTotal:      o.Billing().MonthlyBaseTotal.StringFixed(2),
		EffectiveMonthlyPrice: o.Billing().EffectiveMonthlyPrice.StringFixed(2),
		TotalAmount:           o.Billing().TotalAmount.StringFixed(2),
		Currency:              o.Billing().Currency,
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}
}

// ToOrderDTOList converts a list of orders
func ToOrderDTOList(orders []*order.Order) []*OrderDTO {
	dtos := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		if o != nil {
			dtos = append(dtos, ToOrderDTO(o))
		}
	}
	return dtos
}
