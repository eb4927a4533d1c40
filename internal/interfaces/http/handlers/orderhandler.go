package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderapp "github.com/cloudesk-io/cloudesk/internal/application/order"
	orderdto "github.com/cloudesk-io/cloudesk/internal/application/order/dto"
	"github.com/cloudesk-io/cloudesk/internal/application/order/usecases"
	"github.com/cloudesk-io/cloudesk/internal/interfaces/http/middleware"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
	"github.com/cloudesk-io/cloudesk/internal/shared/utils"
)

type OrderHandler struct {
	service *orderapp.Service
	logger  logger.Interface
}

func NewOrderHandler(service *orderapp.Service, logger logger.Interface) *OrderHandler {
	return &OrderHandler{service: service, logger: logger}
}

type ServiceSelectionRequest struct {
	ServiceSID     string `json:"service_sid" binding:"required"`
	DurationMonths *int   `json:"duration_months"`
}

type OrderUserRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
}

type CreateOrderRequest struct {
	CompanySID    string                    `json:"company_sid" binding:"required"`
	Services      []ServiceSelectionRequest `json:"services" binding:"required,min=1"`
	Users         []OrderUserRequest        `json:"users" binding:"required,min=1"`
	PaymentMethod string                    `json:"payment_method" binding:"required"`
	Currency      string                    `json:"currency"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create order", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, actorEmail := middleware.Actor(c)

	selections := make([]usecases.ServiceSelection, 0, len(req.Services))
	for _, s := range req.Services {
		selections = append(selections, usecases.ServiceSelection{
			ServiceSID:     s.ServiceSID,
			DurationMonths: s.DurationMonths,
		})
	}

	users := make([]usecases.OrderUserInput, 0, len(req.Users))
	for _, u := range req.Users {
		users = append(users, usecases.OrderUserInput{
			UserID:    u.UserID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}

	result, err := h.service.CreateOrder(c.Request.Context(), usecases.CreateOrderCommand{
		CompanySID:    req.CompanySID,
		Selections:    selections,
		Users:         users,
		PaymentMethod: req.PaymentMethod,
		Currency:      req.Currency,
		ActorID:       actorID,
		ActorEmail:    actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, orderdto.ToOrderDTO(result.Order))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.service.GetOrder(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", orderdto.ToOrderDTO(o))
}

func (h *OrderHandler) ListCompanyOrders(c *gin.Context) {
	orders, err := h.service.ListCompanyOrders(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", orderdto.ToOrderDTOList(orders))
}

func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	actorID, actorEmail := middleware.Actor(c)

	result, err := h.service.ConfirmOrder(c.Request.Context(), usecases.ConfirmOrderCommand{
		OrderSID:   c.Param("sid"),
		ActorID:    actorID,
		ActorEmail: actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order confirmed", orderdto.ToOrderDTO(result.Order))
}

func (h *OrderHandler) RejectOrder(c *gin.Context) {
	var req RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID, actorEmail := middleware.Actor(c)

	result, err := h.service.RejectOrder(c.Request.Context(), usecases.RejectOrderCommand{
		OrderSID:   c.Param("sid"),
		Reason:     req.Reason,
		ActorID:    actorID,
		ActorEmail: actorEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "order rejected", orderdto.ToOrderDTO(result.Order))
}
