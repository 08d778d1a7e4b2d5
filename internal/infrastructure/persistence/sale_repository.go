package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by ID, preloading its line items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByIDForUpdate loads a sale and its line items holding a SELECT FOR UPDATE lock
// on the sale header row, serializing cancel and return workflows against the sale.
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll returns sales matching the filter, newest first by default
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)
	err := query.Preload("Items").
		Order(orderClause(filter, "sale_date DESC")).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)
	err := query.Count(&count).Error
	return count, err
}

// Save creates or updates a sale together with its loaded line items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(sale).Error
}

// UpdateHeader writes the sale header row without touching line items, so a stale
// in-memory aggregate can never overwrite a returned_quantity committed by a
// concurrent guarded update.
func (r *GormSaleRepository) UpdateHeader(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(sale).Error
}

// AddReturnedQuantity raises a sale line's returned quantity as one guarded update.
// The guard caps the line's accumulated returns at its sold quantity, so concurrent
// returns against the same line cannot together hand back more than was sold.
func (r *GormSaleRepository) AddReturnedQuantity(ctx context.Context, saleItemID uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&sales.SaleItem{}).
		Where("id = ?", saleItemID).
		Where("returned_quantity + ? <= quantity", quantity).
		Updates(map[string]interface{}{
			"returned_quantity": gorm.Expr("returned_quantity + ?", quantity),
			"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&sales.SaleItem{}).
			Where("id = ?", saleItemID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrOverReturn
	}
	return nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	if sellerID, ok := filter.Filters["seller_id"]; ok {
		query = query.Where("seller_id = ?", sellerID)
	}
	return query
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
