package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SaleReturnService processes customer returns against a sale. Each return restores
// stock to the exact unit variant the originating sale line deducted from, raises the
// line's returned_quantity through a guarded update (so the same goods cannot be
// returned twice), and advances the sale's lifecycle, all in one transaction that
// holds a row lock on the sale header.
type SaleReturnService struct {
	returnRepo sales.SaleReturnRepository
	scope      TransactionScope
	logger     *zap.Logger
}

// NewSaleReturnService creates a new SaleReturnService
func NewSaleReturnService(returnRepo sales.SaleReturnRepository, scope TransactionScope, logger *zap.Logger) *SaleReturnService {
	return &SaleReturnService{
		returnRepo: returnRepo,
		scope:      scope,
		logger:     logger.Named("sale-return-service"),
	}
}

// Create processes a return of a subset of a sale's line items
func (s *SaleReturnService) Create(ctx context.Context, req CreateReturnRequest) (*SaleReturnResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_RETURN", "A return requires at least one line item")
	}

	var response SaleReturnResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// The row lock serializes concurrent returns and cancellations of this sale.
		sale, err := repos.SaleRepo().FindByIDForUpdate(ctx, req.SaleID)
		if err != nil {
			return err
		}
		switch sale.Status {
		case sales.SaleStatusCancelled:
			return shared.ErrSaleCancelled
		case sales.SaleStatusReturned:
			return shared.ErrSaleReturned
		}

		ret, err := sales.NewSaleReturn(sale.ID, req.UserID, req.Reason)
		if err != nil {
			return err
		}

		touched := make(map[uuid.UUID]struct{})
		for _, line := range req.Items {
			saleItem := sale.FindItem(line.SaleItemID)
			if saleItem == nil {
				return shared.NewDomainError("SALE_ITEM_NOT_FOUND", "Sale line item does not belong to this sale")
			}

			// Guarded increment of returned_quantity; rejects quantities beyond the
			// line's remaining (not-yet-returned) quantity.
			if err := repos.SaleRepo().AddReturnedQuantity(ctx, saleItem.ID, line.Quantity); err != nil {
				return err
			}
			saleItem.ReturnedQuantity = saleItem.ReturnedQuantity.Add(line.Quantity)

			if _, err := ret.AddItem(saleItem, line.Quantity); err != nil {
				return err
			}
			if _, err := repos.ProductUnitRepo().AdjustStock(ctx, saleItem.ProductUnitID, line.Quantity, true); err != nil {
				return err
			}
			touched[saleItem.ProductID] = struct{}{}
		}

		if err := repos.ReturnRepo().Save(ctx, ret); err != nil {
			return err
		}

		if err := sale.ApplyReturn(ret.Total); err != nil {
			return err
		}
		if err := repos.SaleRepo().UpdateHeader(ctx, sale); err != nil {
			return err
		}

		for productID := range touched {
			if _, err := repos.ProductRepo().RecomputeStockTotal(ctx, productID); err != nil {
				return err
			}
		}

		response = ToSaleReturnResponse(ret, sale.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("return processed",
		zap.String("return_id", response.ID.String()),
		zap.String("sale_id", req.SaleID.String()),
		zap.String("total", response.Total.String()),
		zap.String("sale_status", response.SaleStatus),
	)
	return &response, nil
}

// GetByID retrieves a return with its line items
func (s *SaleReturnService) GetByID(ctx context.Context, id uuid.UUID) (*SaleReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleReturnResponse(ret, "")
	return &response, nil
}

// ListBySale retrieves every return recorded against a sale
func (s *SaleReturnService) ListBySale(ctx context.Context, saleID uuid.UUID) ([]SaleReturnResponse, error) {
	returns, err := s.returnRepo.FindBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	responses := make([]SaleReturnResponse, len(returns))
	for i := range returns {
		responses[i] = ToSaleReturnResponse(&returns[i], "")
	}
	return responses, nil
}
