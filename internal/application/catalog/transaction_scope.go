package catalog

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to catalog repositories.
// When a function is executed within a transaction scope, all repository operations
// are part of the same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the catalog repositories within a
// transaction. All repositories returned share the same underlying transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	ProductUnitRepo() catalog.ProductUnitRepository
	UnitRepo() catalog.UnitOfMeasureRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers that bring their own transaction handling.
type NoOpTransactionScope struct {
	productRepo     catalog.ProductRepository
	productUnitRepo catalog.ProductUnitRepository
	unitRepo        catalog.UnitOfMeasureRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	productUnitRepo catalog.ProductUnitRepository,
	unitRepo catalog.UnitOfMeasureRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:     productRepo,
		productUnitRepo: productUnitRepo,
		unitRepo:        unitRepo,
	}
}

// Execute runs the function without transaction boundaries.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// ProductUnitRepo returns the product unit repository.
func (s *NoOpTransactionScope) ProductUnitRepo() catalog.ProductUnitRepository {
	return s.productUnitRepo
}

// UnitRepo returns the unit of measure repository.
func (s *NoOpTransactionScope) UnitRepo() catalog.UnitOfMeasureRepository {
	return s.unitRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
