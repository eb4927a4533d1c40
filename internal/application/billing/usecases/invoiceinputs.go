package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type InvoiceLine struct {
	EntitlementSID string
	ServiceName    string
	Category       string
	UnitPrice      decimal.Decimal
	Users          int
	LineTotal      decimal.Decimal
}

type InvoiceInputsResult struct {
	CompanySID   string
	CompanyName  string
	VATNumber    string
	Address      string
	Currency     string
	Lines        []InvoiceLine
	MonthlyTotal decimal.Decimal
}

// InvoiceInputsUseCase assembles the billing lines a downstream invoice
// generator needs: one line per active entitlement, unit price times
// covered users.
type InvoiceInputsUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	logger          logger.Interface
}

func NewInvoiceInputsUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *InvoiceInputsUseCase {
	return &InvoiceInputsUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		logger:          logger,
	}
}

func (uc *InvoiceInputsUseCase) Execute(ctx context.Context, companySID string) (*InvoiceInputsResult, error) {
	comp, err := uc.companyRepo.GetBySID(ctx, companySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", companySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", companySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	active, err := uc.entitlementRepo.ListActiveByCompany(ctx, comp.ID())
	if err != nil {
		uc.logger.Errorw("failed to list active entitlements", "company_sid", companySID, "error", err)
		return nil, fmt.Errorf("failed to list active entitlements: %w", err)
	}

	lines := make([]InvoiceLine, 0, len(active))
	total := decimal.Zero
	for _, ent := range active {
		lineTotal := ent.MonthlyRevenue()
		lines = append(lines, InvoiceLine{
			EntitlementSID: ent.SID(),
			ServiceName:    ent.Name(),
			Category:       ent.Category().String(),
			UnitPrice:      ent.MonthlyPrice(),
			Users:          len(ent.Users()),
			LineTotal:      lineTotal,
		})
		total = total.Add(lineTotal)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ServiceName < lines[j].ServiceName })

	return &InvoiceInputsResult{
		CompanySID:   comp.SID(),
		CompanyName:  comp.Name(),
		VATNumber:    comp.VATNumber(),
		Address:      comp.Address(),
		Currency:     comp.Currency(),
		Lines:        lines,
		MonthlyTotal: total,
	}, nil
}
