package handler

import (
	appsales "github.com/pos/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleReturnHandler handles sale return endpoints
type SaleReturnHandler struct {
	BaseHandler
	service *appsales.SaleReturnService
}

// NewSaleReturnHandler creates a new SaleReturnHandler
func NewSaleReturnHandler(service *appsales.SaleReturnService) *SaleReturnHandler {
	return &SaleReturnHandler{service: service}
}

// ReturnLineBody is one returned line, referencing the originating sale line item
type ReturnLineBody struct {
	SaleItemID uuid.UUID       `json:"sale_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required,dpositive"`
}

// CreateReturnBody is the request body for processing a return against a sale
type CreateReturnBody struct {
	UserID uuid.UUID        `json:"user_id" binding:"required"`
	Reason string           `json:"reason"`
	Items  []ReturnLineBody `json:"items" binding:"required,min=1,dive"`
}

// Create handles POST /api/v1/sales/:id/returns
func (h *SaleReturnHandler) Create(c *gin.Context) {
	saleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var body CreateReturnBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]appsales.ReturnLineInput, len(body.Items))
	for i, line := range body.Items {
		items[i] = appsales.ReturnLineInput{
			SaleItemID: line.SaleItemID,
			Quantity:   line.Quantity,
		}
	}

	resp, err := h.service.Create(c.Request.Context(), appsales.CreateReturnRequest{
		SaleID: saleID,
		UserID: body.UserID,
		Reason: body.Reason,
		Items:  items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /api/v1/returns/:id
func (h *SaleReturnHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListBySale handles GET /api/v1/sales/:id/returns
func (h *SaleReturnHandler) ListBySale(c *gin.Context) {
	saleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	resp, err := h.service.ListBySale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
