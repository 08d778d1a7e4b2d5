package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductUnitRepository implements ProductUnitRepository using GORM
type GormProductUnitRepository struct {
	db *gorm.DB
}

// NewGormProductUnitRepository creates a new GormProductUnitRepository
func NewGormProductUnitRepository(db *gorm.DB) *GormProductUnitRepository {
	return &GormProductUnitRepository{db: db}
}

// FindByID finds a product unit variant by its ID
func (r *GormProductUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductUnit, error) {
	var unit catalog.ProductUnit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrProductUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByProductID returns all unit variants of a product, primary first
func (r *GormProductUnitRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]catalog.ProductUnit, error) {
	var units []catalog.ProductUnit
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("is_primary DESC, factor_conversion ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindByProductAndUnit finds the variant binding a product to a unit of measure
func (r *GormProductUnitRepository) FindByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (*catalog.ProductUnit, error) {
	var unit catalog.ProductUnit
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND unit_id = ?", productID, unitID).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrProductUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// ExistsByProductAndUnit checks whether a product already carries the unit
func (r *GormProductUnitRepository) ExistsByProductAndUnit(ctx context.Context, productID, unitID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.ProductUnit{}).
		Where("product_id = ? AND unit_id = ?", productID, unitID).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a product unit variant
func (r *GormProductUnitRepository) Save(ctx context.Context, unit *catalog.ProductUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// ClearPrimary clears the primary flag on every variant of the product except the
// given one. Run inside the caller's transaction together with the write that set
// the new primary, so at most one variant stays flagged.
func (r *GormProductUnitRepository) ClearPrimary(ctx context.Context, productID, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&catalog.ProductUnit{}).
		Where("product_id = ? AND id <> ? AND is_primary", productID, exceptID).
		Update("is_primary", false).Error
}

// AdjustStock applies delta to the variant's stock as one guarded update. The guard
// clause makes check and write a single statement, so two concurrent sales of the last
// items cannot both pass a stale read; the database serializes them on the row and the
// second one finds the guard false. Cancellations and returns pass allowNegative to
// restore stock unconditionally (the variant may have gone below zero through an
// administrative correction in between).
func (r *GormProductUnitRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal, allowNegative bool) (*catalog.ProductUnit, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductUnit{}).
		Where("id = ?", id)
	if !allowNegative {
		query = query.Where("stock + ? >= 0", delta)
	}

	result := query.Updates(map[string]interface{}{
		"stock":      gorm.Expr("stock + ?", delta),
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing row from a rejected guard.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&catalog.ProductUnit{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, shared.ErrProductUnitNotFound
		}
		return nil, shared.ErrInsufficientStock
	}

	return r.FindByID(ctx, id)
}

var _ catalog.ProductUnitRepository = (*GormProductUnitRepository)(nil)
