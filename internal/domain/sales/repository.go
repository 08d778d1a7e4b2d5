package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	// FindByID loads a sale together with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForUpdate loads a sale like FindByID while holding a row lock on the
	// sale header until the surrounding transaction ends. Cancel and return workflows
	// load through this so two of them cannot interleave on the same sale.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error

	// UpdateHeader persists the sale's header fields only. Line items are never
	// written back from the in-memory aggregate; returned_quantity moves solely
	// through AddReturnedQuantity's guard.
	UpdateHeader(ctx context.Context, sale *Sale) error

	// AddReturnedQuantity raises a sale line's returned_quantity by quantity as a single
	// guarded update: UPDATE ... SET returned_quantity = returned_quantity + ?
	// WHERE id = ? AND returned_quantity + ? <= quantity.
	// The guard rejecting the change means the request would return more than the line's
	// remaining quantity; shared.ErrOverReturn is returned. A missing row returns
	// shared.ErrNotFound.
	AddReturnedQuantity(ctx context.Context, saleItemID uuid.UUID, quantity decimal.Decimal) error
}

// SaleReturnRepository defines persistence operations for sale returns
type SaleReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleReturn, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]SaleReturn, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SaleReturn, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, ret *SaleReturn) error
}
