package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitOfMeasureRepository defines persistence operations for the unit catalog
type UnitOfMeasureRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UnitOfMeasure, error)
	FindAll(ctx context.Context) ([]UnitOfMeasure, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, unit *UnitOfMeasure) error
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByID loads a product together with its unit variants
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RecomputeStockTotal rederives products.stock_total from the product's variant
	// rows in a single statement and returns the persisted value. Idempotent; must be
	// called inside the same transaction as the stock mutation it follows.
	RecomputeStockTotal(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// ProductUnitRepository defines persistence operations for product unit variants.
// AdjustStock is the sole primitive through which sales, cancellations and returns
// change stock.
type ProductUnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductUnit, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]ProductUnit, error)
	FindByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (*ProductUnit, error)
	ExistsByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (bool, error)
	Save(ctx context.Context, unit *ProductUnit) error

	// ClearPrimary clears the primary flag on every variant of the product except the
	// given one, keeping the at-most-one-primary invariant inside the caller's transaction.
	ClearPrimary(ctx context.Context, productID, exceptID uuid.UUID) error

	// AdjustStock applies delta to the variant's stock as a single guarded update:
	// UPDATE ... SET stock = stock + ? WHERE id = ? AND stock + ? >= 0.
	// When the guard rejects the change and allowNegative is false it returns
	// shared.ErrInsufficientStock; a missing row returns shared.ErrProductUnitNotFound.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, allowNegative bool) (*ProductUnit, error)
}
