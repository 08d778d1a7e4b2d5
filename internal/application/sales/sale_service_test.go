package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type saleServiceFixture struct {
	service         *SaleService
	saleRepo        *MockSaleRepository
	returnRepo      *MockSaleReturnRepository
	productRepo     *MockProductRepository
	productUnitRepo *MockProductUnitRepository
}

func newSaleServiceFixture() *saleServiceFixture {
	saleRepo := new(MockSaleRepository)
	returnRepo := new(MockSaleReturnRepository)
	productRepo := new(MockProductRepository)
	productUnitRepo := new(MockProductUnitRepository)
	scope := NewNoOpTransactionScope(saleRepo, returnRepo, productRepo, productUnitRepo)

	return &saleServiceFixture{
		service:         NewSaleService(saleRepo, scope, zap.NewNop()),
		saleRepo:        saleRepo,
		returnRepo:      returnRepo,
		productRepo:     productRepo,
		productUnitRepo: productUnitRepo,
	}
}

// newTestProduct builds a product with a primary "piece" variant (factor 1) and a
// "box of 12" variant.
func newTestProduct(t *testing.T) (*catalog.Product, *catalog.ProductUnit, *catalog.ProductUnit) {
	t.Helper()

	product, err := catalog.NewProduct("SKU-001", "Sparkling Water", "beverages")
	require.NoError(t, err)

	piece, err := catalog.NewProductUnit(product.ID, uuid.New(), decimal.NewFromInt(1), true,
		decimal.NewFromInt(100), decimal.NewFromFloat(1.50), decimal.NewFromFloat(0.90))
	require.NoError(t, err)
	box, err := catalog.NewProductUnit(product.ID, uuid.New(), decimal.NewFromInt(12), false,
		decimal.NewFromInt(10), decimal.NewFromFloat(15.00), decimal.NewFromFloat(9.00))
	require.NoError(t, err)

	product.Units = []catalog.ProductUnit{*piece, *box}
	return product, &product.Units[0], &product.Units[1]
}

func decEq(v string) interface{} {
	want := decimal.RequireFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestSaleServiceCreate(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	product, _, box := newTestProduct(t)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.productUnitRepo.On("AdjustStock", ctx, box.ID, decEq("-3"), false).Return(box, nil)
	f.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
	f.productRepo.On("RecomputeStockTotal", ctx, product.ID).Return(decimal.NewFromInt(64), nil)

	boxID := box.ID
	resp, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: product.ID, ProductUnitID: &boxID, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromFloat(15.00)},
		},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, box.ID, resp.Items[0].ProductUnitID)
	assert.True(t, resp.Items[0].FactorConversion.Equal(decimal.NewFromInt(12)))
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(45.00)))
	f.saleRepo.AssertExpectations(t)
	f.productUnitRepo.AssertExpectations(t)
	f.productRepo.AssertExpectations(t)
}

func TestSaleServiceCreateResolvesDefaultUnit(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	product, piece, _ := newTestProduct(t)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.productUnitRepo.On("AdjustStock", ctx, piece.ID, decEq("-2"), false).Return(piece, nil)
	f.saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
	f.productRepo.On("RecomputeStockTotal", ctx, product.ID).Return(decimal.NewFromInt(218), nil)

	resp, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCard,
		Items: []SaleLineInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(1.50)},
		},
	}, "")

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, piece.ID, resp.Items[0].ProductUnitID)
	assert.True(t, resp.Items[0].FactorConversion.Equal(decimal.NewFromInt(1)))
	f.productUnitRepo.AssertExpectations(t)
}

func TestSaleServiceCreateEmptyItems(t *testing.T) {
	f := newSaleServiceFixture()

	_, err := f.service.Create(context.Background(), CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
	}, "")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_SALE", domainErr.Code)
}

func TestSaleServiceCreateUnknownProduct(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	productID := uuid.New()

	f.productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrProductNotFound)

	_, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "")

	assert.ErrorIs(t, err, shared.ErrProductNotFound)
	f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaleServiceCreateUnknownVariant(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	product, _, _ := newTestProduct(t)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	strangerID := uuid.New()
	_, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: product.ID, ProductUnitID: &strangerID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "")

	assert.ErrorIs(t, err, shared.ErrProductUnitNotFound)
	f.productUnitRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleServiceCreateInsufficientStock(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	product, piece, _ := newTestProduct(t)

	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.productUnitRepo.On("AdjustStock", ctx, piece.ID, decEq("-500"), false).
		Return(nil, shared.ErrInsufficientStock)

	_, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(500), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "")

	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.productRepo.AssertNotCalled(t, "RecomputeStockTotal", mock.Anything, mock.Anything)
}

func TestSaleServiceCreateDuplicateIdempotencyKey(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	store := new(MockIdempotencyStore)
	f.service.SetIdempotencyStore(store)

	store.On("MarkProcessed", ctx, "key-123", idempotencyTTL).Return(false, nil)

	_, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "key-123")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)
	f.productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestSaleServiceCreateReleasesKeyOnFailure(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	store := new(MockIdempotencyStore)
	f.service.SetIdempotencyStore(store)
	product, piece, _ := newTestProduct(t)

	store.On("MarkProcessed", ctx, "key-456", idempotencyTTL).Return(true, nil)
	store.On("Release", ctx, "key-456").Return(nil)
	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	f.productUnitRepo.On("AdjustStock", ctx, piece.ID, decEq("-1"), false).
		Return(nil, errors.New("connection reset"))

	_, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "key-456")

	require.Error(t, err)
	store.AssertCalled(t, "Release", ctx, "key-456")
}

func TestSaleServiceCancel(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	product, piece, box := newTestProduct(t)

	sale, err := sales.NewSale(uuid.New(), uuid.New(), sales.PaymentMethodCash, "")
	require.NoError(t, err)
	_, err = sale.AddItem(product.ID, piece.ID, decimal.NewFromInt(2), decimal.NewFromFloat(1.50), decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = sale.AddItem(product.ID, box.ID, decimal.NewFromInt(1), decimal.NewFromFloat(15.00), decimal.NewFromInt(12))
	require.NoError(t, err)

	f.saleRepo.On("FindByIDForUpdate", ctx, sale.ID).Return(sale, nil)
	f.productUnitRepo.On("AdjustStock", ctx, piece.ID, decEq("2"), true).Return(piece, nil)
	f.productUnitRepo.On("AdjustStock", ctx, box.ID, decEq("1"), true).Return(box, nil)
	f.saleRepo.On("UpdateHeader", ctx, sale).Return(nil)
	f.productRepo.On("RecomputeStockTotal", ctx, product.ID).Return(decimal.NewFromInt(220), nil)

	resp, err := f.service.Cancel(ctx, sale.ID)

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	f.productUnitRepo.AssertExpectations(t)
	f.saleRepo.AssertExpectations(t)
}

func TestSaleServiceCancelAlreadyCancelled(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()

	sale, err := sales.NewSale(uuid.New(), uuid.New(), sales.PaymentMethodCash, "")
	require.NoError(t, err)
	require.NoError(t, sale.Cancel())

	f.saleRepo.On("FindByIDForUpdate", ctx, sale.ID).Return(sale, nil)

	_, err = f.service.Cancel(ctx, sale.ID)

	assert.ErrorIs(t, err, shared.ErrSaleCancelled)
	f.productUnitRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleServiceCancelNotFound(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	saleID := uuid.New()

	f.saleRepo.On("FindByIDForUpdate", ctx, saleID).Return(nil, shared.ErrSaleNotFound)

	_, err := f.service.Cancel(ctx, saleID)

	assert.ErrorIs(t, err, shared.ErrSaleNotFound)
}

func TestSaleServiceCancelRepositoryErrorNotMasked(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	saleID := uuid.New()

	dbErr := errors.New("connection reset by peer")
	f.saleRepo.On("FindByIDForUpdate", ctx, saleID).Return(nil, dbErr)

	_, err := f.service.Cancel(ctx, saleID)

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, shared.ErrSaleNotFound)
}

func TestSaleServiceCreateRepositoryErrorNotMasked(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()
	productID := uuid.New()

	dbErr := errors.New("connection reset by peer")
	f.productRepo.On("FindByID", ctx, productID).Return(nil, dbErr)

	_, err := f.service.Create(ctx, CreateSaleRequest{
		CustomerID:    uuid.New(),
		SellerID:      uuid.New(),
		PaymentMethod: sales.PaymentMethodCash,
		Items: []SaleLineInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "")

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, shared.ErrProductNotFound)
}

func TestSaleServiceGetByID(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()

	sale, err := sales.NewSale(uuid.New(), uuid.New(), sales.PaymentMethodTransfer, "walk-in")
	require.NoError(t, err)

	f.saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

	resp, err := f.service.GetByID(ctx, sale.ID)

	require.NoError(t, err)
	assert.Equal(t, sale.ID, resp.ID)
	assert.Equal(t, "TRANSFER", resp.PaymentMethod)
}

func TestSaleServiceList(t *testing.T) {
	f := newSaleServiceFixture()
	ctx := context.Background()

	sale, err := sales.NewSale(uuid.New(), uuid.New(), sales.PaymentMethodCash, "")
	require.NoError(t, err)

	expectedFilter := shared.Filter{Page: 1, PageSize: 20}
	f.saleRepo.On("FindAll", ctx, expectedFilter).Return([]sales.Sale{*sale}, nil)
	f.saleRepo.On("Count", ctx, expectedFilter).Return(int64(1), nil)

	responses, total, err := f.service.List(ctx, shared.Filter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, sale.ID, responses[0].ID)
}
