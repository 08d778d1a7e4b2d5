package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleReturnItem is a line of a return, referencing the originating sale line so the
// restored stock lands on the exact product unit the sale deducted from.
type SaleReturnItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReturnID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductUnitID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}

// Subtotal returns the refunded amount for this line
func (i *SaleReturnItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// SaleReturn records customer merchandise coming back from a sale. A return is
// immutable once created; there is no way to undo or amend it.
type SaleReturn struct {
	shared.BaseEntity
	SaleID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID        `gorm:"type:uuid;not null"`
	Total      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Reason     string           `gorm:"type:text"`
	ReturnDate time.Time        `gorm:"not null"`
	Items      []SaleReturnItem `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// NewSaleReturn creates a new return for a sale with no items yet
func NewSaleReturn(saleID, userID uuid.UUID, reason string) (*SaleReturn, error) {
	if saleID == uuid.Nil {
		return nil, shared.ErrSaleNotFound
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &SaleReturn{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		UserID:     userID,
		Total:      decimal.Zero,
		Reason:     reason,
		ReturnDate: time.Now(),
		Items:      make([]SaleReturnItem, 0),
	}, nil
}

// AddItem appends a returned line referencing the originating sale line.
// The quantity ceiling against the line's remaining quantity is enforced by the
// coordinator through the guarded returned_quantity update.
func (r *SaleReturn) AddItem(saleItem *SaleItem, quantity decimal.Decimal) (*SaleReturnItem, error) {
	if saleItem == nil {
		return nil, shared.ErrOverReturn
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Returned quantity must be positive")
	}

	item := SaleReturnItem{
		ID:            uuid.New(),
		ReturnID:      r.ID,
		SaleItemID:    saleItem.ID,
		ProductID:     saleItem.ProductID,
		ProductUnitID: saleItem.ProductUnitID,
		Quantity:      quantity,
		UnitPrice:     saleItem.UnitPrice,
		CreatedAt:     time.Now(),
	}
	r.Items = append(r.Items, item)
	r.Total = r.Total.Add(item.Subtotal())

	return &r.Items[len(r.Items)-1], nil
}
