package handler

import (
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUnitHandler handles product unit variant endpoints
type ProductUnitHandler struct {
	BaseHandler
	service *appcatalog.ProductUnitService
}

// NewProductUnitHandler creates a new ProductUnitHandler
func NewProductUnitHandler(service *appcatalog.ProductUnitService) *ProductUnitHandler {
	return &ProductUnitHandler{service: service}
}

// AddUnitBody is the request body for adding a unit variant to a product
type AddUnitBody struct {
	UnitID           uuid.UUID       `json:"unit_id" binding:"required"`
	FactorConversion decimal.Decimal `json:"factor_conversion" binding:"required,dpositive"`
	IsPrimary        bool            `json:"is_primary"`
	InitialStock     decimal.Decimal `json:"initial_stock" binding:"dgte0"`
	Price            decimal.Decimal `json:"price" binding:"dgte0"`
	Cost             decimal.Decimal `json:"cost" binding:"dgte0"`
}

// UpdateUnitBody is the request body for partially updating a unit variant.
// Absent fields are left unchanged; stock is an absolute administrative correction.
type UpdateUnitBody struct {
	FactorConversion *decimal.Decimal `json:"factor_conversion"`
	IsPrimary        *bool            `json:"is_primary"`
	Stock            *decimal.Decimal `json:"stock"`
	Price            *decimal.Decimal `json:"price"`
	Cost             *decimal.Decimal `json:"cost"`
}

// AddUnit handles POST /api/v1/products/:id/units
func (h *ProductUnitHandler) AddUnit(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var body AddUnitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.AddUnit(c.Request.Context(), productID, appcatalog.CreateProductUnitRequest{
		UnitID:           body.UnitID,
		FactorConversion: body.FactorConversion,
		IsPrimary:        body.IsPrimary,
		InitialStock:     body.InitialStock,
		Price:            body.Price,
		Cost:             body.Cost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UpdateUnit handles PATCH /api/v1/product-units/:id
func (h *ProductUnitHandler) UpdateUnit(c *gin.Context) {
	productUnitID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product unit ID")
		return
	}

	var body UpdateUnitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateUnit(c.Request.Context(), productUnitID, appcatalog.UpdateProductUnitRequest{
		FactorConversion: body.FactorConversion,
		IsPrimary:        body.IsPrimary,
		Stock:            body.Stock,
		Price:            body.Price,
		Cost:             body.Cost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByProduct handles GET /api/v1/products/:id/units
func (h *ProductUnitHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
