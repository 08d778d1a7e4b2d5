package persistence

import (
	"context"

	appcatalog "github.com/pos/backend/internal/application/catalog"
	appsales "github.com/pos/backend/internal/application/sales"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormCatalogTransactionScope implements the catalog TransactionScope using GORM
// transactions. Every repository handed to the callback is bound to the same
// transaction, so the callback's writes commit or roll back as one.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

type gormCatalogRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// ProductUnitRepo returns the product unit repository scoped to the current transaction
func (r *gormCatalogRepositories) ProductUnitRepo() catalog.ProductUnitRepository {
	return NewGormProductUnitRepository(r.tx)
}

// UnitRepo returns the unit of measure repository scoped to the current transaction
func (r *gormCatalogRepositories) UnitRepo() catalog.UnitOfMeasureRepository {
	return NewGormUnitOfMeasureRepository(r.tx)
}

// GormSalesTransactionScope implements the sales TransactionScope using GORM
// transactions. The sale coordinators run each multi-line workflow whole inside
// one Execute call; a failed line rolls back every stock adjustment of that call.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSalesRepositories{tx: tx})
	})
}

type gormSalesRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction
func (r *gormSalesRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// ReturnRepo returns the sale return repository scoped to the current transaction
func (r *gormSalesRepositories) ReturnRepo() sales.SaleReturnRepository {
	return NewGormSaleReturnRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormSalesRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// ProductUnitRepo returns the product unit repository scoped to the current transaction
func (r *gormSalesRepositories) ProductUnitRepo() catalog.ProductUnitRepository {
	return NewGormProductUnitRepository(r.tx)
}

var _ appcatalog.TransactionScope = (*GormCatalogTransactionScope)(nil)
var _ appcatalog.TransactionalRepositories = (*gormCatalogRepositories)(nil)
var _ appsales.TransactionScope = (*GormSalesTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormSalesRepositories)(nil)
