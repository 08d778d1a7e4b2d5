package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), uuid.New(), PaymentMethodCash, "")
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	tests := []struct {
		name          string
		customerID    uuid.UUID
		sellerID      uuid.UUID
		paymentMethod PaymentMethod
		wantErr       bool
	}{
		{
			name:          "valid sale",
			customerID:    uuid.New(),
			sellerID:      uuid.New(),
			paymentMethod: PaymentMethodCash,
		},
		{
			name:          "missing customer",
			customerID:    uuid.Nil,
			sellerID:      uuid.New(),
			paymentMethod: PaymentMethodCash,
			wantErr:       true,
		},
		{
			name:          "missing seller",
			customerID:    uuid.New(),
			sellerID:      uuid.Nil,
			paymentMethod: PaymentMethodCard,
			wantErr:       true,
		},
		{
			name:          "unknown payment method",
			customerID:    uuid.New(),
			sellerID:      uuid.New(),
			paymentMethod: PaymentMethod("BARTER"),
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale, err := NewSale(tt.customerID, tt.sellerID, tt.paymentMethod, "note")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, SaleStatusActive, sale.Status)
			assert.True(t, sale.Total.IsZero())
			assert.Empty(t, sale.Items)
		})
	}
}

func TestSaleAddItem(t *testing.T) {
	sale := newTestSale(t)

	item, err := sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(3), decimal.NewFromFloat(2.50), decimal.NewFromInt(1))
	require.NoError(t, err)

	assert.True(t, item.Subtotal.Equal(decimal.NewFromFloat(7.50)))
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(7.50)))
	assert.Equal(t, sale.ID, item.SaleID)
	assert.True(t, item.ReturnedQuantity.IsZero())

	_, err = sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(2), decimal.NewFromInt(10), decimal.NewFromInt(12))
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(27.50)))
}

func TestSaleAddItemValidation(t *testing.T) {
	sale := newTestSale(t)

	_, err := sale.AddItem(uuid.New(), uuid.New(),
		decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.Error(t, err, "zero quantity")

	_, err = sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.NewFromInt(1))
	assert.Error(t, err, "negative price")

	_, err = sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, shared.ErrInvalidFactor)

	require.NoError(t, sale.Cancel())
	_, err = sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, shared.ErrInvalidState, "no items on a cancelled sale")
}

func TestSaleCancel(t *testing.T) {
	sale := newTestSale(t)
	require.NoError(t, sale.Cancel())
	assert.Equal(t, SaleStatusCancelled, sale.Status)

	// Cancelling twice is rejected
	assert.ErrorIs(t, sale.Cancel(), shared.ErrSaleCancelled)
}

func TestSaleCancelAfterReturnRejected(t *testing.T) {
	sale := newTestSale(t)
	_, err := sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(2), decimal.NewFromInt(5), decimal.NewFromInt(1))
	require.NoError(t, err)

	require.NoError(t, sale.ApplyReturn(decimal.NewFromInt(5)))
	assert.Equal(t, SaleStatusPartiallyReturned, sale.Status)
	assert.ErrorIs(t, sale.Cancel(), shared.ErrSaleCancelled)
}

func TestSaleApplyReturn(t *testing.T) {
	sale := newTestSale(t)
	_, err := sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(4), decimal.NewFromInt(10), decimal.NewFromInt(1))
	require.NoError(t, err)

	// Partial return
	require.NoError(t, sale.ApplyReturn(decimal.NewFromInt(10)))
	assert.Equal(t, SaleStatusPartiallyReturned, sale.Status)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(30)))

	// Remaining amount returned, total floors at zero and status becomes RETURNED
	require.NoError(t, sale.ApplyReturn(decimal.NewFromInt(30)))
	assert.Equal(t, SaleStatusReturned, sale.Status)
	assert.True(t, sale.Total.IsZero())

	// Fully returned sale takes no further returns
	assert.ErrorIs(t, sale.ApplyReturn(decimal.NewFromInt(1)), shared.ErrSaleReturned)
}

func TestSaleApplyReturnOnCancelled(t *testing.T) {
	sale := newTestSale(t)
	require.NoError(t, sale.Cancel())
	assert.ErrorIs(t, sale.ApplyReturn(decimal.NewFromInt(1)), shared.ErrSaleCancelled)
}

func TestSaleApplyReturnFloorsAtZero(t *testing.T) {
	sale := newTestSale(t)
	_, err := sale.AddItem(uuid.New(), uuid.New(),
		decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.NewFromInt(1))
	require.NoError(t, err)

	require.NoError(t, sale.ApplyReturn(decimal.NewFromInt(15)))
	assert.True(t, sale.Total.IsZero())
	assert.Equal(t, SaleStatusReturned, sale.Status)
}

func TestSaleStatusTransitions(t *testing.T) {
	tests := []struct {
		from    SaleStatus
		to      SaleStatus
		allowed bool
	}{
		{SaleStatusActive, SaleStatusCancelled, true},
		{SaleStatusActive, SaleStatusPartiallyReturned, true},
		{SaleStatusActive, SaleStatusReturned, true},
		{SaleStatusPartiallyReturned, SaleStatusReturned, true},
		{SaleStatusPartiallyReturned, SaleStatusPartiallyReturned, true},
		{SaleStatusPartiallyReturned, SaleStatusCancelled, false},
		{SaleStatusReturned, SaleStatusActive, false},
		{SaleStatusReturned, SaleStatusCancelled, false},
		{SaleStatusCancelled, SaleStatusActive, false},
		{SaleStatusCancelled, SaleStatusReturned, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSaleStatusTerminal(t *testing.T) {
	assert.False(t, SaleStatusActive.IsTerminal())
	assert.False(t, SaleStatusPartiallyReturned.IsTerminal())
	assert.True(t, SaleStatusReturned.IsTerminal())
	assert.True(t, SaleStatusCancelled.IsTerminal())
}

func TestSaleItemRemainingQuantity(t *testing.T) {
	item := SaleItem{
		Quantity:         decimal.NewFromInt(5),
		ReturnedQuantity: decimal.NewFromInt(2),
	}
	assert.True(t, item.RemainingQuantity().Equal(decimal.NewFromInt(3)))
}
