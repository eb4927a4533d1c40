package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cloudesk-io/cloudesk/internal/domain/company"
	"github.com/cloudesk-io/cloudesk/internal/domain/entitlement"
	apperrors "github.com/cloudesk-io/cloudesk/internal/shared/errors"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

type PerUserServiceCountCommand struct {
	CompanySID string
	// ActiveOnly restricts the count to active entitlements.
	ActiveOnly bool
}

type UserServiceCount struct {
	UserID     uint
	Email      string
	Total      int
	ByCategory map[string]int
}

type PerUserServiceCountResult struct {
	CompanySID string
	Users      []UserServiceCount
}

// PerUserServiceCountUseCase reports how many services each user of a
// company is covered by, with a per-category breakdown.
type PerUserServiceCountUseCase struct {
	entitlementRepo entitlement.Repository
	companyRepo     company.Repository
	logger          logger.Interface
}

func NewPerUserServiceCountUseCase(
	entitlementRepo entitlement.Repository,
	companyRepo company.Repository,
	logger logger.Interface,
) *PerUserServiceCountUseCase {
	return &PerUserServiceCountUseCase{
		entitlementRepo: entitlementRepo,
		companyRepo:     companyRepo,
		logger:          logger,
	}
}

func (uc *PerUserServiceCountUseCase) Execute(ctx context.Context, cmd PerUserServiceCountCommand) (*PerUserServiceCountResult, error) {
	comp, err := uc.companyRepo.GetBySID(ctx, cmd.CompanySID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company not found", cmd.CompanySID)
		}
		uc.logger.Errorw("failed to get company", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	var ents []*entitlement.ServiceEntitlement
	if cmd.ActiveOnly {
		ents, err = uc.entitlementRepo.ListActiveByCompany(ctx, comp.ID())
	} else {
		ents, err = uc.entitlementRepo.ListByCompany(ctx, comp.ID())
	}
	if err != nil {
		uc.logger.Errorw("failed to list entitlements", "company_sid", cmd.CompanySID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	counts := make(map[uint]*UserServiceCount)
	for _, ent := range ents {
		for _, u := range ent.Users() {
			c, ok := counts[u.UserID]
			if !ok {
				c = &UserServiceCount{
					UserID:     u.UserID,
					Email:      u.Email,
					ByCategory: make(map[string]int),
				}
				counts[u.UserID] = c
			}
			c.Total++
			c.ByCategory[ent.Category().String()]++
		}
	}

	users := make([]UserServiceCount, 0, len(counts))
	for _, c := range counts {
		users = append(users, *c)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })

	return &PerUserServiceCountResult{CompanySID: comp.SID(), Users: users}, nil
}
