package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleReturnRepository implements SaleReturnRepository using GORM
type GormSaleReturnRepository struct {
	db *gorm.DB
}

// NewGormSaleReturnRepository creates a new GormSaleReturnRepository
func NewGormSaleReturnRepository(db *gorm.DB) *GormSaleReturnRepository {
	return &GormSaleReturnRepository{db: db}
}

// FindByID finds a sale return by ID, preloading its items
func (r *GormSaleReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleReturn, error) {
	var ret sales.SaleReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindBySaleID returns every return recorded against a sale, oldest first
func (r *GormSaleReturnRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]sales.SaleReturn, error) {
	var returns []sales.SaleReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("return_date ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll returns sale returns matching the filter
func (r *GormSaleReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SaleReturn, error) {
	var returns []sales.SaleReturn
	query := r.db.WithContext(ctx).Model(&sales.SaleReturn{})
	if saleID, ok := filter.Filters["sale_id"]; ok {
		query = query.Where("sale_id = ?", saleID)
	}
	err := query.Preload("Items").
		Order(orderClause(filter, "return_date DESC")).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&returns).Error
	if err != nil {
		return nil, err
	}
	return returns, nil
}

// Count returns the number of sale returns matching the filter
func (r *GormSaleReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&sales.SaleReturn{})
	if saleID, ok := filter.Filters["sale_id"]; ok {
		query = query.Where("sale_id = ?", saleID)
	}
	err := query.Count(&count).Error
	return count, err
}

// Save creates a sale return together with its items
func (r *GormSaleReturnRepository) Save(ctx context.Context, ret *sales.SaleReturn) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(ret).Error
}

var _ sales.SaleReturnRepository = (*GormSaleReturnRepository)(nil)
