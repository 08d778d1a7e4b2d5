package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductUnit is a sellable unit variant of a product (e.g. "box of 12" next to "piece").
// Each variant carries its own on-hand stock and a conversion factor to the product's
// base unit: 1 of this variant equals FactorConversion base units.
type ProductUnit struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_unit,priority:1"`
	UnitID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_unit,priority:2"`
	FactorConversion decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	IsPrimary        bool            `gorm:"not null;default:false"`
	Stock            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Cost             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ProductUnit) TableName() string {
	return "product_units"
}

// NewProductUnit creates a new unit variant for a product
func NewProductUnit(productID, unitID uuid.UUID, factorConversion decimal.Decimal, isPrimary bool, initialStock, price, cost decimal.Decimal) (*ProductUnit, error) {
	if productID == uuid.Nil {
		return nil, shared.ErrProductNotFound
	}
	if unitID == uuid.Nil {
		return nil, shared.ErrUnitNotFound
	}
	if err := validateFactorConversion(factorConversion); err != nil {
		return nil, err
	}
	if initialStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STOCK", "Initial stock cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	now := time.Now()
	return &ProductUnit{
		ID:               uuid.New(),
		ProductID:        productID,
		UnitID:           unitID,
		FactorConversion: factorConversion,
		IsPrimary:        isPrimary,
		Stock:            initialStock,
		Price:            price,
		Cost:             cost,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UpdateFactorConversion changes the conversion factor to the base unit
func (pu *ProductUnit) UpdateFactorConversion(factor decimal.Decimal) error {
	if err := validateFactorConversion(factor); err != nil {
		return err
	}
	pu.FactorConversion = factor
	pu.UpdatedAt = time.Now()
	return nil
}

// SetPrices sets the selling price and cost for this variant
func (pu *ProductUnit) SetPrices(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	pu.Price = price
	pu.Cost = cost
	pu.UpdatedAt = time.Now()
	return nil
}

// SetPrimary marks or unmarks this variant as the product's primary unit.
// Exclusivity across sibling variants is enforced by the ledger service,
// which clears the flag on the other variants in the same transaction.
func (pu *ProductUnit) SetPrimary(isPrimary bool) {
	pu.IsPrimary = isPrimary
	pu.UpdatedAt = time.Now()
}

// SetStock sets the on-hand stock to an absolute value (administrative correction).
// Normal stock movement goes through the repository's guarded AdjustStock instead.
func (pu *ProductUnit) SetStock(stock decimal.Decimal) error {
	if stock.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	pu.Stock = stock
	pu.UpdatedAt = time.Now()
	return nil
}

// BaseQuantity converts a quantity in this variant's unit to base units
func (pu *ProductUnit) BaseQuantity(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pu.FactorConversion).Round(4)
}

// StockInBaseUnits returns the on-hand stock expressed in base units
func (pu *ProductUnit) StockInBaseUnits() decimal.Decimal {
	return pu.Stock.Mul(pu.FactorConversion).Round(4)
}

func validateFactorConversion(factor decimal.Decimal) error {
	if factor.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidFactor
	}
	return nil
}
