package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudesk-io/cloudesk/internal/domain/catalog"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
	"github.com/cloudesk-io/cloudesk/internal/shared/utils"
)

type CatalogHandler struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewCatalogHandler(catalogRepo catalog.Repository, logger logger.Interface) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo, logger: logger}
}

type ServiceOfferingResponse struct {
	SID         string `json:"sid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	BasePrice   string `json:"base_price"`
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var (
		services []*catalog.ServiceOffering
		err      error
	)

	if rawCategory := c.Query("category"); rawCategory != "" {
		category := catalog.Category(rawCategory)
		if !category.IsValid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "unknown service category")
			return
		}
		services, err = h.catalogRepo.ListByCategory(c.Request.Context(), category)
	} else {
		services, err = h.catalogRepo.ListActive(c.Request.Context())
	}
	if err != nil {
		h.logger.Errorw("failed to list services", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]ServiceOfferingResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceOfferingResponse{
			SID:         s.SID(),
			Name:        s.Name(),
			Description: s.Description(),
			Category:    s.Category().String(),
			BasePrice:   s.BasePrice().StringFixed(2),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", out)
}
