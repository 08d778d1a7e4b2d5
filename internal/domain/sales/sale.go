package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusActive            SaleStatus = "ACTIVE"
	SaleStatusPartiallyReturned SaleStatus = "PARTIALLY_RETURNED"
	SaleStatusReturned          SaleStatus = "RETURNED"
	SaleStatusCancelled         SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusActive, SaleStatusPartiallyReturned, SaleStatusReturned, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is legal out of this status
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusReturned || s == SaleStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusActive:
		return target == SaleStatusCancelled || target == SaleStatusPartiallyReturned || target == SaleStatusReturned
	case SaleStatusPartiallyReturned:
		return target == SaleStatusPartiallyReturned || target == SaleStatusReturned
	case SaleStatusReturned, SaleStatusCancelled:
		return false
	}
	return false
}

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCredit   PaymentMethod = "CREDIT"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	}
	return false
}

// SaleItem is a line item of a sale. ProductUnitID and FactorConversion are captured at
// sale time and immutable afterward; they are the only reliable way to restore stock to
// the exact variant the sale deducted from. ReturnedQuantity accumulates quantities
// already handed back through returns and caps further returns of this line.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductUnitID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FactorConversion decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	ReturnedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// RemainingQuantity returns the quantity of this line not yet returned
func (i *SaleItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReturnedQuantity)
}

// Sale is the aggregate root for a customer sale. Header and line items are created
// whole inside one transaction and the total is always the sum of line subtotals.
type Sale struct {
	shared.BaseEntity
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleDate      time.Time       `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	Status        SaleStatus      `gorm:"type:varchar(30);not null;index"`
	Notes         string          `gorm:"type:text"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new active sale with no items yet
func NewSale(customerID, sellerID uuid.UUID, paymentMethod PaymentMethod, notes string) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerID:    customerID,
		SellerID:      sellerID,
		SaleDate:      time.Now(),
		Total:         decimal.Zero,
		PaymentMethod: paymentMethod,
		Status:        SaleStatusActive,
		Notes:         notes,
		Items:         make([]SaleItem, 0),
	}, nil
}

// AddItem appends a line item, snapshotting the variant and its conversion factor.
// The sale total is recomputed from the line subtotals; a client-supplied total is
// never trusted.
func (s *Sale) AddItem(productID, productUnitID uuid.UUID, quantity, unitPrice, factorConversion decimal.Decimal) (*SaleItem, error) {
	if s.Status != SaleStatusActive {
		return nil, shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return nil, shared.ErrProductNotFound
	}
	if productUnitID == uuid.Nil {
		return nil, shared.ErrProductUnitNotFound
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if factorConversion.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidFactor
	}

	now := time.Now()
	item := SaleItem{
		ID:               uuid.New(),
		SaleID:           s.ID,
		ProductID:        productID,
		ProductUnitID:    productUnitID,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		Subtotal:         quantity.Mul(unitPrice),
		FactorConversion: factorConversion,
		ReturnedQuantity: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.Items = append(s.Items, item)
	s.recomputeTotal()

	return &s.Items[len(s.Items)-1], nil
}

// FindItem returns the line item with the given ID, or nil
func (s *Sale) FindItem(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// Cancel marks the sale cancelled. Only an active sale can be cancelled; the caller
// restores stock for every line item in the same transaction.
func (s *Sale) Cancel() error {
	if s.Status != SaleStatusActive {
		return shared.ErrSaleCancelled
	}
	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// ApplyReturn reduces the sale total by the returned amount (floored at zero) and
// advances the status: RETURNED when the total reaches zero, PARTIALLY_RETURNED when
// a positive amount was returned, unchanged otherwise.
func (s *Sale) ApplyReturn(totalReturned decimal.Decimal) error {
	if s.Status == SaleStatusCancelled {
		return shared.ErrSaleCancelled
	}
	if s.Status == SaleStatusReturned {
		return shared.ErrSaleReturned
	}
	if totalReturned.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Returned amount cannot be negative")
	}

	newTotal := s.Total.Sub(totalReturned)
	if newTotal.IsNegative() {
		newTotal = decimal.Zero
	}
	s.Total = newTotal

	switch {
	case newTotal.IsZero():
		s.Status = SaleStatusReturned
	case totalReturned.IsPositive():
		s.Status = SaleStatusPartiallyReturned
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Sale) recomputeTotal() {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].Subtotal)
	}
	s.Total = total
	s.UpdatedAt = time.Now()
}
