package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductUnitService owns the per-product ledger of unit variants: variant creation,
// partial updates, and the primary-unit bookkeeping. Every write that can change a
// variant's stock or factor ends with a stock_total recompute inside the same
// transaction, keeping the product aggregate consistent with the variant rows.
type ProductUnitService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewProductUnitService creates a new ProductUnitService
func NewProductUnitService(scope TransactionScope, logger *zap.Logger) *ProductUnitService {
	return &ProductUnitService{
		scope:  scope,
		logger: logger.Named("product-unit-service"),
	}
}

// AddUnit adds a new unit variant to a product. At most one variant per
// (product, unit) pair is allowed, and flagging the new variant primary clears the
// flag on every sibling variant atomically.
func (s *ProductUnitService) AddUnit(ctx context.Context, productID uuid.UUID, req CreateProductUnitRequest) (*ProductUnitResponse, error) {
	var response ProductUnitResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ProductRepo().FindByID(ctx, productID); err != nil {
			return shared.ErrProductNotFound
		}
		if _, err := repos.UnitRepo().FindByID(ctx, req.UnitID); err != nil {
			return shared.ErrUnitNotFound
		}

		exists, err := repos.ProductUnitRepo().ExistsByProductAndUnit(ctx, productID, req.UnitID)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrDuplicateUnit
		}

		unit, err := catalog.NewProductUnit(productID, req.UnitID, req.FactorConversion, req.IsPrimary, req.InitialStock, req.Price, req.Cost)
		if err != nil {
			return err
		}
		if err := repos.ProductUnitRepo().Save(ctx, unit); err != nil {
			return err
		}
		if req.IsPrimary {
			if err := repos.ProductUnitRepo().ClearPrimary(ctx, productID, unit.ID); err != nil {
				return err
			}
		}

		if _, err := repos.ProductRepo().RecomputeStockTotal(ctx, productID); err != nil {
			return err
		}

		response = ToProductUnitResponse(unit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product unit added",
		zap.String("product_id", productID.String()),
		zap.String("product_unit_id", response.ID.String()),
	)
	return &response, nil
}

// UpdateUnit applies a partial update to a unit variant. A direct stock value is an
// administrative correction and bypasses the guarded adjustment, but still triggers
// the aggregate recompute.
func (s *ProductUnitService) UpdateUnit(ctx context.Context, productUnitID uuid.UUID, req UpdateProductUnitRequest) (*ProductUnitResponse, error) {
	var response ProductUnitResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		unit, err := repos.ProductUnitRepo().FindByID(ctx, productUnitID)
		if err != nil {
			return err
		}

		stockChanged := false
		if req.FactorConversion != nil {
			if err := unit.UpdateFactorConversion(*req.FactorConversion); err != nil {
				return err
			}
			stockChanged = true
		}
		if req.Stock != nil {
			if err := unit.SetStock(*req.Stock); err != nil {
				return err
			}
			stockChanged = true
		}
		if req.Price != nil || req.Cost != nil {
			price := unit.Price
			cost := unit.Cost
			if req.Price != nil {
				price = *req.Price
			}
			if req.Cost != nil {
				cost = *req.Cost
			}
			if err := unit.SetPrices(price, cost); err != nil {
				return err
			}
		}
		if req.IsPrimary != nil {
			unit.SetPrimary(*req.IsPrimary)
		}

		if err := repos.ProductUnitRepo().Save(ctx, unit); err != nil {
			return err
		}
		if req.IsPrimary != nil && *req.IsPrimary {
			if err := repos.ProductUnitRepo().ClearPrimary(ctx, unit.ProductID, unit.ID); err != nil {
				return err
			}
		}

		if stockChanged {
			if _, err := repos.ProductRepo().RecomputeStockTotal(ctx, unit.ProductID); err != nil {
				return err
			}
		}

		response = ToProductUnitResponse(unit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// ListByProduct retrieves all unit variants of a product
func (s *ProductUnitService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ProductUnitResponse, error) {
	var responses []ProductUnitResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		units, err := repos.ProductUnitRepo().FindByProductID(ctx, productID)
		if err != nil {
			return err
		}
		responses = make([]ProductUnitResponse, len(units))
		for i := range units {
			responses[i] = ToProductUnitResponse(&units[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}
