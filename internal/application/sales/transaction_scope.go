package sales

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories the sale
// coordinators write: sales, returns and the product-unit ledger. Every multi-line
// workflow (sale creation, cancellation, return processing) runs whole inside one
// Execute call, so a failure on any line rolls back every stock adjustment already
// applied in that call.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	SaleRepo() sales.SaleRepository
	ReturnRepo() sales.SaleReturnRepository
	ProductRepo() catalog.ProductRepository
	ProductUnitRepo() catalog.ProductUnitRepository
}

// NoOpTransactionScope runs the function without a real transaction (for testing).
type NoOpTransactionScope struct {
	saleRepo        sales.SaleRepository
	returnRepo      sales.SaleReturnRepository
	productRepo     catalog.ProductRepository
	productUnitRepo catalog.ProductUnitRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo sales.SaleRepository,
	returnRepo sales.SaleReturnRepository,
	productRepo catalog.ProductRepository,
	productUnitRepo catalog.ProductUnitRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:        saleRepo,
		returnRepo:      returnRepo,
		productRepo:     productRepo,
		productUnitRepo: productUnitRepo,
	}
}

// Execute runs the function without transaction boundaries.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository {
	return s.saleRepo
}

// ReturnRepo returns the sale return repository.
func (s *NoOpTransactionScope) ReturnRepo() sales.SaleReturnRepository {
	return s.returnRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// ProductUnitRepo returns the product unit repository.
func (s *NoOpTransactionScope) ProductUnitRepo() catalog.ProductUnitRepository {
	return s.productUnitRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
