package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// idempotencyTTL bounds how long a processed Idempotency-Key blocks replays.
const idempotencyTTL = 24 * time.Hour

// SaleService coordinates sale creation and cancellation. It is one of the only two
// writers of product-unit stock (the other is SaleReturnService): every stock movement
// goes through the ledger's guarded AdjustStock primitive inside a single transaction
// per request, followed by a stock_total recompute for each product touched.
type SaleService struct {
	saleRepo    sales.SaleRepository
	scope       TransactionScope
	idempotency shared.IdempotencyStore
	logger      *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository, scope TransactionScope, logger *zap.Logger) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		scope:    scope,
		logger:   logger.Named("sale-service"),
	}
}

// SetIdempotencyStore enables duplicate-submission protection for Create.
func (s *SaleService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// Create creates a sale: for every line item it resolves the unit variant, snapshots
// its conversion factor, and deducts stock through the guarded update. The header, all
// line items and all stock adjustments commit atomically; if any line fails the whole
// sale is rejected and no stock is touched.
//
// idempotencyKey may be empty; when set, a second request with the same key within the
// idempotency TTL is rejected as a duplicate instead of selling the goods twice.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest, idempotencyKey string) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "A sale requires at least one line item")
	}

	if idempotencyKey != "" && s.idempotency != nil {
		fresh, err := s.idempotency.MarkProcessed(ctx, idempotencyKey, idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "A sale with this idempotency key was already submitted")
		}
	}

	var response SaleResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := sales.NewSale(req.CustomerID, req.SellerID, req.PaymentMethod, req.Notes)
		if err != nil {
			return err
		}

		touched := make(map[uuid.UUID]struct{})
		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}

			unit, err := resolveSaleUnit(product, line.ProductUnitID)
			if err != nil {
				return err
			}

			if _, err := sale.AddItem(product.ID, unit.ID, line.Quantity, line.UnitPrice, unit.FactorConversion); err != nil {
				return err
			}
			if _, err := repos.ProductUnitRepo().AdjustStock(ctx, unit.ID, line.Quantity.Neg(), false); err != nil {
				return err
			}
			touched[product.ID] = struct{}{}
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		for productID := range touched {
			if _, err := repos.ProductRepo().RecomputeStockTotal(ctx, productID); err != nil {
				return err
			}
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		if idempotencyKey != "" && s.idempotency != nil {
			// The sale was not committed; free the key so the client can retry.
			if relErr := s.idempotency.Release(ctx, idempotencyKey); relErr != nil {
				s.logger.Warn("failed to release idempotency key", zap.Error(relErr))
			}
		}
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("sale_id", response.ID.String()),
		zap.Int("lines", len(response.Items)),
		zap.String("total", response.Total.String()),
	)
	return &response, nil
}

// Cancel cancels an active sale and restores every line item's stock to the exact
// unit variant it was deducted from. The status change and all restorations commit
// atomically.
func (s *SaleService) Cancel(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	var response SaleResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// The row lock serializes concurrent cancellations and returns: a second
		// cancel waits here, then reloads the committed CANCELLED status and fails
		// the state check instead of restoring stock a second time.
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := sale.Cancel(); err != nil {
			return err
		}

		touched := make(map[uuid.UUID]struct{})
		for i := range sale.Items {
			item := &sale.Items[i]
			if _, err := repos.ProductUnitRepo().AdjustStock(ctx, item.ProductUnitID, item.Quantity, true); err != nil {
				return err
			}
			touched[item.ProductID] = struct{}{}
		}

		if err := repos.SaleRepo().UpdateHeader(ctx, sale); err != nil {
			return err
		}
		for productID := range touched {
			if _, err := repos.ProductRepo().RecomputeStockTotal(ctx, productID); err != nil {
				return err
			}
		}

		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale cancelled", zap.String("sale_id", saleID.String()))
	return &response, nil
}

// GetByID retrieves a sale with its line items
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter shared.Filter) ([]SaleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	saleList, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleResponses(saleList), total, nil
}

// resolveSaleUnit picks the variant a sale line deducts from: the explicitly requested
// one (which must belong to the product), otherwise the product's default sale unit.
func resolveSaleUnit(product *catalog.Product, productUnitID *uuid.UUID) (*catalog.ProductUnit, error) {
	if productUnitID != nil {
		for i := range product.Units {
			if product.Units[i].ID == *productUnitID {
				return &product.Units[i], nil
			}
		}
		return nil, shared.ErrProductUnitNotFound
	}

	unit := product.DefaultSaleUnit()
	if unit == nil {
		return nil, shared.ErrProductUnitNotFound
	}
	return unit, nil
}
