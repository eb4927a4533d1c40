package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingapp "github.com/cloudesk-io/cloudesk/internal/application/billing"
	billingdto "github.com/cloudesk-io/cloudesk/internal/application/billing/dto"
	"github.com/cloudesk-io/cloudesk/internal/application/billing/usecases"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
	"github.com/cloudesk-io/cloudesk/internal/shared/utils"
)

type BillingHandler struct {
	service *billingapp.Service
	logger  logger.Interface
}

func NewBillingHandler(service *billingapp.Service, logger logger.Interface) *BillingHandler {
	return &BillingHandler{service: service, logger: logger}
}

func (h *BillingHandler) CompanyRevenue(c *gin.Context) {
	result, err := h.service.CompanyMonthlyRevenue(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", billingdto.ToRevenueDTO(result))
}

func (h *BillingHandler) ReconcileRevenue(c *gin.Context) {
	result, err := h.service.ReconcileCompanyRevenue(c.Request.Context(), usecases.ReconcileCompanyRevenueCommand{
		CompanySID: c.Param("sid"),
		Repair:     c.Query("repair") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", billingdto.ToReconciliationDTO(result))
}

func (h *BillingHandler) CompanyUsage(c *gin.Context) {
	result, err := h.service.PerUserServiceCount(c.Request.Context(), usecases.PerUserServiceCountCommand{
		CompanySID: c.Param("sid"),
		ActiveOnly: c.Query("status") == "active",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", billingdto.ToUsageDTO(result))
}

func (h *BillingHandler) InvoiceInputs(c *gin.Context) {
	result, err := h.service.InvoiceInputs(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", billingdto.ToInvoiceInputsDTO(result))
}
