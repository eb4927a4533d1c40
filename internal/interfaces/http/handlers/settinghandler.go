package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingapp "github.com/cloudesk-io/cloudesk/internal/application/setting"
	"github.com/cloudesk-io/cloudesk/internal/application/setting/usecases"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/http/middleware"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
	"github.com/cloudesk-io/cloudesk/internal/shared/utils"
)

type SettingHandler struct {
	service *settingapp.Service
	logger  logger.Interface
}

func NewSettingHandler(service *settingapp.Service, logger logger.Interface) *SettingHandler {
	return &SettingHandler{service: service, logger: logger}
}

type ValidationPolicyResponse struct {
	Configured        bool `json:"configured"`
	RequireValidation bool `json:"require_validation"`
	UpdatedBy         uint `json:"updated_by,omitempty"`
}

type SetValidationPolicyRequest struct {
	RequireValidation *bool `json:"require_validation" binding:"required"`
}

func (h *SettingHandler) GetValidationPolicy(c *gin.Context) {
	result, err := h.service.GetValidationPolicy(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ValidationPolicyResponse{
		Configured:        result.Configured,
		RequireValidation: result.RequireValidation,
		UpdatedBy:         result.UpdatedBy,
	})
}

func (h *SettingHandler) SetValidationPolicy(c *gin.Context) {
	var req SetValidationPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set validation policy", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, _ := middleware.Actor(c)

	result, err := h.service.SetValidationPolicy(c.Request.Context(), usecases.SetValidationPolicyCommand{
		RequireValidation: *req.RequireValidation,
		ActorID:           actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "validation policy updated", ValidationPolicyResponse{
		Configured:        result.Configured,
		RequireValidation: result.RequireValidation,
		UpdatedBy:         result.UpdatedBy,
	})
}
