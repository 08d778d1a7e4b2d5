package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUnitOfMeasureRepository implements UnitOfMeasureRepository using GORM
type GormUnitOfMeasureRepository struct {
	db *gorm.DB
}

// NewGormUnitOfMeasureRepository creates a new GormUnitOfMeasureRepository
func NewGormUnitOfMeasureRepository(db *gorm.DB) *GormUnitOfMeasureRepository {
	return &GormUnitOfMeasureRepository{db: db}
}

// FindByID finds a unit of measure by its ID
func (r *GormUnitOfMeasureRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.UnitOfMeasure, error) {
	var unit catalog.UnitOfMeasure
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAll returns the whole unit catalog ordered by name
func (r *GormUnitOfMeasureRepository) FindAll(ctx context.Context) ([]catalog.UnitOfMeasure, error) {
	var units []catalog.UnitOfMeasure
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// ExistsByName checks whether a unit with the given name exists
func (r *GormUnitOfMeasureRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.UnitOfMeasure{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a unit of measure
func (r *GormUnitOfMeasureRepository) Save(ctx context.Context, unit *catalog.UnitOfMeasure) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

var _ catalog.UnitOfMeasureRepository = (*GormUnitOfMeasureRepository)(nil)
