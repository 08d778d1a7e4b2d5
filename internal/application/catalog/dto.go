package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateUnitOfMeasureRequest is the input for creating a unit catalog entry
type CreateUnitOfMeasureRequest struct {
	Name         string
	Abbreviation string
}

// UnitOfMeasureResponse represents a unit of measure in service responses
type UnitOfMeasureResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
}

// ToUnitOfMeasureResponse maps a domain unit to its response form
func ToUnitOfMeasureResponse(u *catalog.UnitOfMeasure) UnitOfMeasureResponse {
	return UnitOfMeasureResponse{
		ID:           u.ID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
	}
}

// CreateProductUnitRequest is the input for adding a unit variant to a product
type CreateProductUnitRequest struct {
	UnitID           uuid.UUID
	FactorConversion decimal.Decimal
	IsPrimary        bool
	InitialStock     decimal.Decimal
	Price            decimal.Decimal
	Cost             decimal.Decimal
}

// UpdateProductUnitRequest is a partial update of a unit variant.
// Nil fields are left unchanged. Stock is an absolute administrative correction.
type UpdateProductUnitRequest struct {
	FactorConversion *decimal.Decimal
	IsPrimary        *bool
	Stock            *decimal.Decimal
	Price            *decimal.Decimal
	Cost             *decimal.Decimal
}

// CreateProductRequest is the input for creating a product with its initial variant
type CreateProductRequest struct {
	Code        string
	Name        string
	Category    string
	InitialUnit CreateProductUnitRequest
}

// ProductUnitResponse represents a unit variant in service responses
type ProductUnitResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	UnitID           uuid.UUID       `json:"unit_id"`
	FactorConversion decimal.Decimal `json:"factor_conversion"`
	IsPrimary        bool            `json:"is_primary"`
	Stock            decimal.Decimal `json:"stock"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductUnitResponse maps a domain variant to its response form
func ToProductUnitResponse(pu *catalog.ProductUnit) ProductUnitResponse {
	return ProductUnitResponse{
		ID:               pu.ID,
		ProductID:        pu.ProductID,
		UnitID:           pu.UnitID,
		FactorConversion: pu.FactorConversion,
		IsPrimary:        pu.IsPrimary,
		Stock:            pu.Stock,
		Price:            pu.Price,
		Cost:             pu.Cost,
		CreatedAt:        pu.CreatedAt,
		UpdatedAt:        pu.UpdatedAt,
	}
}

// ProductResponse represents a product with its variants and cached aggregate stock
type ProductResponse struct {
	ID         uuid.UUID             `json:"id"`
	Code       string                `json:"code"`
	Name       string                `json:"name"`
	Category   string                `json:"category"`
	StockTotal decimal.Decimal       `json:"stock_total"`
	Units      []ProductUnitResponse `json:"units"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// ToProductResponse maps a domain product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	units := make([]ProductUnitResponse, len(p.Units))
	for i := range p.Units {
		units[i] = ToProductUnitResponse(&p.Units[i])
	}
	return ProductResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		Category:   p.Category,
		StockTotal: p.StockTotal,
		Units:      units,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToProductResponses maps a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
