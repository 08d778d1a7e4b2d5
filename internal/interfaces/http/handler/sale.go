package handler

import (
	appsales "github.com/pos/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyHeader carries the client-chosen key that deduplicates retried
// sale submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// SaleHandler handles sale endpoints
type SaleHandler struct {
	BaseHandler
	service *appsales.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *appsales.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// SaleLineBody is one requested line of a sale. ProductUnitID is optional: when
// absent the product's primary unit variant is used.
type SaleLineBody struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	ProductUnitID *uuid.UUID      `json:"product_unit_id"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required,dpositive"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"dgte0"`
}

// CreateSaleBody is the request body for creating a sale
type CreateSaleBody struct {
	CustomerID    uuid.UUID      `json:"customer_id" binding:"required"`
	SellerID      uuid.UUID      `json:"seller_id" binding:"required"`
	PaymentMethod string         `json:"payment_method" binding:"required,oneof=CASH CARD TRANSFER CREDIT"`
	Notes         string         `json:"notes"`
	Items         []SaleLineBody `json:"items" binding:"required,min=1,dive"`
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	var body CreateSaleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]appsales.SaleLineInput, len(body.Items))
	for i, line := range body.Items {
		items[i] = appsales.SaleLineInput{
			ProductID:     line.ProductID,
			ProductUnitID: line.ProductUnitID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
		}
	}

	resp, err := h.service.Create(c.Request.Context(), appsales.CreateSaleRequest{
		CustomerID:    body.CustomerID,
		SellerID:      body.SellerID,
		PaymentMethod: sales.PaymentMethod(body.PaymentMethod),
		Notes:         body.Notes,
		Items:         items,
	}, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Cancel handles POST /api/v1/sales/:id/cancel
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByID handles GET /api/v1/sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.Filters["customer_id"] = customerID
	}

	salesList, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, salesList, total, filter.Page, filter.PageSize)
}
