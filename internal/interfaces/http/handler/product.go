package handler

import (
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pos/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ProductUnitBody is the request body for a unit variant
type ProductUnitBody struct {
	UnitID           uuid.UUID       `json:"unit_id" binding:"required"`
	FactorConversion decimal.Decimal `json:"factor_conversion" binding:"required,dpositive"`
	IsPrimary        bool            `json:"is_primary"`
	InitialStock     decimal.Decimal `json:"initial_stock" binding:"dgte0"`
	Price            decimal.Decimal `json:"price" binding:"dgte0"`
	Cost             decimal.Decimal `json:"cost" binding:"dgte0"`
}

// CreateProductBody is the request body for creating a product
type CreateProductBody struct {
	Code        string          `json:"code" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Category    string          `json:"category" binding:"max=100"`
	InitialUnit ProductUnitBody `json:"initial_unit" binding:"required"`
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var body CreateProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), appcatalog.CreateProductRequest{
		Code:     body.Code,
		Name:     body.Name,
		Category: body.Category,
		InitialUnit: appcatalog.CreateProductUnitRequest{
			UnitID:           body.InitialUnit.UnitID,
			FactorConversion: body.InitialUnit.FactorConversion,
			IsPrimary:        body.InitialUnit.IsPrimary,
			InitialStock:     body.InitialUnit.InitialStock,
			Price:            body.InitialUnit.Price,
			Cost:             body.InitialUnit.Cost,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /api/v1/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	products, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Delete handles DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
