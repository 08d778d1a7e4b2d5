package handler

import (
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// UnitOfMeasureHandler handles unit catalog endpoints
type UnitOfMeasureHandler struct {
	BaseHandler
	service *appcatalog.UnitOfMeasureService
}

// NewUnitOfMeasureHandler creates a new UnitOfMeasureHandler
func NewUnitOfMeasureHandler(service *appcatalog.UnitOfMeasureService) *UnitOfMeasureHandler {
	return &UnitOfMeasureHandler{service: service}
}

// CreateUnitRequest is the request body for creating a unit of measure
type CreateUnitRequest struct {
	Name         string `json:"name" binding:"required,max=50"`
	Abbreviation string `json:"abbreviation" binding:"required,max=10"`
}

// Create handles POST /api/v1/units
func (h *UnitOfMeasureHandler) Create(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), appcatalog.CreateUnitOfMeasureRequest{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /api/v1/units/:id
func (h *UnitOfMeasureHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/units
func (h *UnitOfMeasureHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
