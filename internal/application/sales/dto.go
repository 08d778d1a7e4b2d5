package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleLineInput is one requested line of a sale. ProductUnitID is optional: when nil
// the primary unit variant (or the one with the lowest conversion factor) is used.
type SaleLineInput struct {
	ProductID     uuid.UUID
	ProductUnitID *uuid.UUID
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
}

// CreateSaleRequest is the input for creating a sale
type CreateSaleRequest struct {
	CustomerID    uuid.UUID
	SellerID      uuid.UUID
	PaymentMethod sales.PaymentMethod
	Notes         string
	Items         []SaleLineInput
}

// ReturnLineInput is one requested line of a return, referencing the originating
// sale line item
type ReturnLineInput struct {
	SaleItemID uuid.UUID
	Quantity   decimal.Decimal
}

// CreateReturnRequest is the input for processing a return against a sale
type CreateReturnRequest struct {
	SaleID uuid.UUID
	UserID uuid.UUID
	Reason string
	Items  []ReturnLineInput
}

// SaleItemResponse represents a sale line item, including the unit variant that was
// actually deducted from
type SaleItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductUnitID    uuid.UUID       `json:"product_unit_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	FactorConversion decimal.Decimal `json:"factor_conversion"`
	ReturnedQuantity decimal.Decimal `json:"returned_quantity"`
}

// SaleResponse represents a sale in service responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	SellerID      uuid.UUID          `json:"seller_id"`
	SaleDate      time.Time          `json:"sale_date"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToSaleResponse maps a domain sale to its response form
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		items[i] = SaleItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductUnitID:    item.ProductUnitID,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Subtotal:         item.Subtotal,
			FactorConversion: item.FactorConversion,
			ReturnedQuantity: item.ReturnedQuantity,
		}
	}
	return SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		SellerID:      s.SellerID,
		SaleDate:      s.SaleDate,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		Notes:         s.Notes,
		Items:         items,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleResponses maps a slice of sales
func ToSaleResponses(saleList []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(saleList))
	for i := range saleList {
		responses[i] = ToSaleResponse(&saleList[i])
	}
	return responses
}

// SaleReturnItemResponse represents a returned line in service responses
type SaleReturnItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	SaleItemID    uuid.UUID       `json:"sale_item_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductUnitID uuid.UUID       `json:"product_unit_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// SaleReturnResponse represents a return in service responses
type SaleReturnResponse struct {
	ID         uuid.UUID                `json:"id"`
	SaleID     uuid.UUID                `json:"sale_id"`
	UserID     uuid.UUID                `json:"user_id"`
	Total      decimal.Decimal          `json:"total"`
	Reason     string                   `json:"reason,omitempty"`
	ReturnDate time.Time                `json:"return_date"`
	Items      []SaleReturnItemResponse `json:"items"`
	SaleStatus string                   `json:"sale_status"`
}

// ToSaleReturnResponse maps a domain return to its response form
func ToSaleReturnResponse(r *sales.SaleReturn, saleStatus sales.SaleStatus) SaleReturnResponse {
	items := make([]SaleReturnItemResponse, len(r.Items))
	for i := range r.Items {
		item := &r.Items[i]
		items[i] = SaleReturnItemResponse{
			ID:            item.ID,
			SaleItemID:    item.SaleItemID,
			ProductID:     item.ProductID,
			ProductUnitID: item.ProductUnitID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
		}
	}
	return SaleReturnResponse{
		ID:         r.ID,
		SaleID:     r.SaleID,
		UserID:     r.UserID,
		Total:      r.Total,
		Reason:     r.Reason,
		ReturnDate: r.ReturnDate,
		Items:      items,
		SaleStatus: string(saleStatus),
	}
}
