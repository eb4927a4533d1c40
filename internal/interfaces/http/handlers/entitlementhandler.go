package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	entapp "github.com/cloudesk-io/cloudesk/internal/application/entitlement"
	entdto "github.com/cloudesk-io/cloudesk/internal/application/entitlement/dto"
	"github.com/cloudesk-io/cloudesk/internal/application/entitlement/usecases"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/http/middleware"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
	"github.com/cloudesk-io/cloudesk/internal/shared/utils"
)

type EntitlementHandler struct {
	service *entapp.Service
	logger  logger.Interface
}

func NewEntitlementHandler(service *entapp.Service, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{service: service, logger: logger}
}

type AddServiceRequest struct {
	CompanySID string `json:"company_sid" binding:"required"`
	ServiceSID string `json:"service_sid" binding:"required"`
	UserID     uint   `json:"user_id" binding:"required"`
	UserEmail  string `json:"user_email" binding:"required,email"`
}

type RejectEntitlementRequest struct {
	Reason string `json:"reason"`
}

type UpdatePriceRequest struct {
	MonthlyPrice string `json:"monthly_price" binding:"required"`
}

type EntitlementUserRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	UserEmail string `json:"user_email" binding:"required,email"`
}

func (h *EntitlementHandler) AddService(c *gin.Context) {
	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add service", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, actorEmail := middleware.Actor(c)

	result, err := h.service.AddService(c.Request.Context(), usecases.AddServiceCommand{
		CompanySID: req.CompanySID,
		ServiceSID: req.ServiceSID,
		UserID:     req.UserID,
		UserEmail:  req.UserEmail,
		ActorID:    actorID,
		ActorEmail: actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, entdto.ToEntitlementDTO(result.Entitlement))
}

func (h *EntitlementHandler) ApproveEntitlement(c *gin.Context) {
	actorID, actorEmail := middleware.Actor(c)

	result, err := h.service.ApproveEntitlement(c.Request.Context(), usecases.ApproveEntitlementCommand{
		EntitlementSID: c.Param("sid"),
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "entitlement approved", entdto.ToEntitlementDTO(result.Entitlement))
}

func (h *EntitlementHandler) RejectEntitlement(c *gin.Context) {
	var req RejectEntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, actorEmail := middleware.Actor(c)

	result, err := h.service.RejectEntitlement(c.Request.Context(), usecases.RejectEntitlementCommand{
		EntitlementSID: c.Param("sid"),
		Reason:         req.Reason,
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "entitlement rejected", entdto.ToEntitlementDTO(result.Entitlement))
}

func (h *EntitlementHandler) CancelEntitlement(c *gin.Context) {
	actorID, actorEmail := middleware.Actor(c)

	err := h.service.CancelEntitlement(c.Request.Context(), usecases.CancelEntitlementCommand{
		EntitlementSID: c.Param("sid"),
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *EntitlementHandler) SuspendEntitlement(c *gin.Context) {
	actorID, actorEmail := middleware.Actor(c)

	ent, err := h.service.SuspendEntitlement(c.Request.Context(), usecases.SuspendEntitlementCommand{
		EntitlementSID: c.Param("sid"),
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "entitlement suspended", entdto.ToEntitlementDTO(ent))
}

func (h *EntitlementHandler) ResumeEntitlement(c *gin.Context) {
	actorID, actorEmail := middleware.Actor(c)

	ent, err := h.service.ResumeEntitlement(c.Request.Context(), usecases.ResumeEntitlementCommand{
		EntitlementSID: c.Param("sid"),
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "entitlement resumed", entdto.ToEntitlementDTO(ent))
}

func (h *EntitlementHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.MonthlyPrice)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid monthly price")
		return
	}

	actorID, actorEmail := middleware.Actor(c)

	result, err := h.service.UpdateEntitlementPrice(c.Request.Context(), usecases.UpdateEntitlementPriceCommand{
		EntitlementSID: c.Param("sid"),
		MonthlyPrice:   price,
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "price updated", entdto.ToEntitlementDTO(result.Entitlement))
}

func (h *EntitlementHandler) AddUser(c *gin.Context) {
	var req EntitlementUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, actorEmail := middleware.Actor(c)

	ent, err := h.service.AddUser(c.Request.Context(), usecases.AddEntitlementUserCommand{
		EntitlementSID: c.Param("sid"),
		UserID:         req.UserID,
		UserEmail:      req.UserEmail,
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user added", entdto.ToEntitlementDTO(ent))
}

func (h *EntitlementHandler) RemoveUser(c *gin.Context) {
	actorID, actorEmail := middleware.Actor(c)

	userID, ok := utils.ParseUintParam(c, "userID")
	if !ok {
		return
	}

	ent, err := h.service.RemoveUser(c.Request.Context(), usecases.RemoveEntitlementUserCommand{
		EntitlementSID: c.Param("sid"),
		UserID:         userID,
		ActorID:        actorID,
		ActorEmail:     actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user removed", entdto.ToEntitlementDTO(ent))
}

func (h *EntitlementHandler) ListCompanyEntitlements(c *gin.Context) {
	ents, err := h.service.ListCompanyEntitlements(c.Request.Context(), usecases.ListCompanyEntitlementsCommand{
		CompanySID: c.Param("sid"),
		ActiveOnly: c.Query("status") == "active",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entdto.ToEntitlementDTOList(ents))
}

func (h *EntitlementHandler) ListPendingEntitlements(c *gin.Context) {
	ents, err := h.service.ListPendingEntitlements(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entdto.ToEntitlementDTOList(ents))
}
