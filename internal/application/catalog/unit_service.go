package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
)

// UnitOfMeasureService handles unit catalog operations
type UnitOfMeasureService struct {
	unitRepo catalog.UnitOfMeasureRepository
}

// NewUnitOfMeasureService creates a new UnitOfMeasureService
func NewUnitOfMeasureService(unitRepo catalog.UnitOfMeasureRepository) *UnitOfMeasureService {
	return &UnitOfMeasureService{unitRepo: unitRepo}
}

// Create adds a new unit of measure to the catalog
func (s *UnitOfMeasureService) Create(ctx context.Context, req CreateUnitOfMeasureRequest) (*UnitOfMeasureResponse, error) {
	exists, err := s.unitRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	unit, err := catalog.NewUnitOfMeasure(req.Name, req.Abbreviation)
	if err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitOfMeasureResponse(unit)
	return &response, nil
}

// GetByID retrieves a unit of measure by ID
func (s *UnitOfMeasureService) GetByID(ctx context.Context, id uuid.UUID) (*UnitOfMeasureResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUnitOfMeasureResponse(unit)
	return &response, nil
}

// List retrieves all units of measure
func (s *UnitOfMeasureService) List(ctx context.Context) ([]UnitOfMeasureResponse, error) {
	units, err := s.unitRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]UnitOfMeasureResponse, len(units))
	for i := range units {
		responses[i] = ToUnitOfMeasureResponse(&units[i])
	}
	return responses, nil
}
