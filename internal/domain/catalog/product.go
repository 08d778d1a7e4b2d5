package catalog

import (
	"strings"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable article. Its stock is held per unit variant; StockTotal is a
// derived cache equal to the sum of every variant's stock scaled to base units. It is
// recomputed from the variant rows at the end of each mutating transaction and is never
// treated as authoritative input to a decision.
type Product struct {
	shared.BaseEntity
	Code       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Category   string          `gorm:"type:varchar(100)"`
	StockTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Units      []ProductUnit   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with no unit variants yet
func NewProduct(code, name, category string) (*Product, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Category:   category,
		StockTotal: decimal.Zero,
	}, nil
}

// UpdateInfo updates the product's descriptive fields
func (p *Product) UpdateInfo(name, category string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	p.Name = name
	p.Category = category
	return nil
}

// PrimaryUnit returns the variant flagged as primary, or nil if none is flagged
func (p *Product) PrimaryUnit() *ProductUnit {
	for i := range p.Units {
		if p.Units[i].IsPrimary {
			return &p.Units[i]
		}
	}
	return nil
}

// DefaultSaleUnit resolves the variant used when a sale line does not name one:
// the primary unit if flagged, otherwise the variant with the lowest conversion factor.
func (p *Product) DefaultSaleUnit() *ProductUnit {
	if primary := p.PrimaryUnit(); primary != nil {
		return primary
	}
	var best *ProductUnit
	for i := range p.Units {
		if best == nil || p.Units[i].FactorConversion.LessThan(best.FactorConversion) {
			best = &p.Units[i]
		}
	}
	return best
}

// ComputeStockTotal derives the aggregate stock in base units from the loaded variants
func (p *Product) ComputeStockTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Units {
		total = total.Add(p.Units[i].StockInBaseUnits())
	}
	return total
}
