package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product lifecycle operations. Creation persists the product
// header and its initial unit variant in one transaction, so a product is never
// observable without a sellable unit.
type ProductService struct {
	productRepo catalog.ProductRepository
	scope       TransactionScope
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, scope TransactionScope, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		scope:       scope,
		logger:      logger.Named("product-service"),
	}
}

// Create creates a product together with its initial unit variant
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var response ProductResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.ProductRepo().ExistsByCode(ctx, req.Code)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("DUPLICATE_PRODUCT_CODE", "A product with this code already exists")
		}

		if _, err := repos.UnitRepo().FindByID(ctx, req.InitialUnit.UnitID); err != nil {
			return shared.ErrUnitNotFound
		}

		product, err := catalog.NewProduct(req.Code, req.Name, req.Category)
		if err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}

		// The first variant is always the primary unit.
		unit, err := catalog.NewProductUnit(
			product.ID,
			req.InitialUnit.UnitID,
			req.InitialUnit.FactorConversion,
			true,
			req.InitialUnit.InitialStock,
			req.InitialUnit.Price,
			req.InitialUnit.Cost,
		)
		if err != nil {
			return err
		}
		if err := repos.ProductUnitRepo().Save(ctx, unit); err != nil {
			return err
		}

		total, err := repos.ProductRepo().RecomputeStockTotal(ctx, product.ID)
		if err != nil {
			return err
		}

		product.Units = []catalog.ProductUnit{*unit}
		product.StockTotal = total
		response = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", response.ID.String()),
		zap.String("code", response.Code),
	)
	return &response, nil
}

// GetByID retrieves a product with its unit variants and cached aggregate stock
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Delete removes a product; its unit variants are cascade-deleted with it
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
