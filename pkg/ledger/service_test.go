package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/bizcalc/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repositoryStub = NewRepositoryStub()

func setupService(t *testing.T) (context.Context, Service) {
	t.Cleanup(repositoryStub.Cleanup)
	clock := &utils.MockClock{}
	clock.SetNow(time.Date(2025, 4, 2, 10, 30, 0, 0, time.UTC))
	return context.Background(), NewService(repositoryStub, clock)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleTransaction(txType, category string, day int) Transaction {
	return Transaction{
		Date:         date(2025, time.March, day),
		Type:         txType,
		Amount:       decimal.RequireFromString("100.50"),
		Currency:     "USD",
		Category:     category,
		ExchangeRate: decimal.NewFromInt(25000),
	}
}

func TestServiceImpl_Save(t *testing.T) {
	t.Run("should derive vnd amount from exchange rate", func(t *testing.T) {
		// given
		ctx, service := setupService(t)

		// when
		saved, err := service.Save(ctx, sampleTransaction("income", "Sales", 1))

		// then
		require.NoError(t, err)
		assert.Positive(t, saved.Id)
		assert.Equal(t, "2512500", saved.VndAmount.String())
	})

	t.Run("should default exchange rate to one", func(t *testing.T) {
		ctx, service := setupService(t)
		tx := sampleTransaction("expense", "Hosting", 2)
		tx.Currency = "VND"
		tx.ExchangeRate = decimal.Zero

		saved, err := service.Save(ctx, tx)

		require.NoError(t, err)
		assert.Equal(t, "1", saved.ExchangeRate.String())
		assert.True(t, saved.VndAmount.Equal(tx.Amount))
	})

	t.Run("should keep vnd amount supplied by the caller", func(t *testing.T) {
		ctx, service := setupService(t)
		tx := sampleTransaction("income", "Sales", 3)
		tx.VndAmount = decimal.NewFromInt(42)

		saved, err := service.Save(ctx, tx)

		require.NoError(t, err)
		assert.Equal(t, "42", saved.VndAmount.String())
	})

	t.Run("should reject transaction without category", func(t *testing.T) {
		ctx, service := setupService(t)

		_, err := service.Save(ctx, sampleTransaction("income", "", 4))

		assert.ErrorIs(t, err, ErrInvalidTransaction)
	})

	t.Run("should date undated transaction today", func(t *testing.T) {
		ctx, service := setupService(t)
		tx := sampleTransaction("income", "Sales", 4)
		tx.Date = time.Time{}

		saved, err := service.Save(ctx, tx)

		require.NoError(t, err)
		assert.Equal(t, date(2025, time.April, 2), saved.Date)
	})

	t.Run("should reject negative exchange rate", func(t *testing.T) {
		ctx, service := setupService(t)
		tx := sampleTransaction("income", "Sales", 4)
		tx.ExchangeRate = decimal.NewFromInt(-1)

		_, err := service.Save(ctx, tx)

		assert.ErrorIs(t, err, ErrInvalidTransaction)
	})
}

func TestServiceImpl_List(t *testing.T) {
	// given
	ctx, service := setupService(t)
	for _, tx := range []Transaction{
		sampleTransaction("income", "Sales", 1),
		sampleTransaction("expense", "Hosting", 5),
		sampleTransaction("income", "Consulting", 3),
		sampleTransaction("expense", "Sales", 2),
	} {
		_, err := service.Save(ctx, tx)
		require.NoError(t, err)
	}

	t.Run("should list everything newest first without filter", func(t *testing.T) {
		transactions, err := service.List(ctx, Filter{})

		require.NoError(t, err)
		require.Len(t, transactions, 4)
		assert.Equal(t, 5, transactions[0].Date.Day())
		assert.Equal(t, 1, transactions[3].Date.Day())
	})

	t.Run("should filter by type regardless of category", func(t *testing.T) {
		transactions, err := service.List(ctx, Filter{Types: []string{"income"}})

		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "Consulting", transactions[0].Category)
		assert.Equal(t, "Sales", transactions[1].Category)
	})

	t.Run("should combine filters with and", func(t *testing.T) {
		transactions, err := service.List(ctx, Filter{Types: []string{"expense"}, Categories: []string{"Sales", "Consulting"}})

		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, 2, transactions[0].Date.Day())
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should recompute vnd amount when it is cleared", func(t *testing.T) {
		ctx, service := setupService(t)
		saved, err := service.Save(ctx, sampleTransaction("income", "Sales", 1))
		require.NoError(t, err)
		changed := sampleTransaction("income", "Sales", 1)
		changed.Amount = decimal.NewFromInt(10)

		updated, err := service.Update(ctx, saved.Id, changed)

		require.NoError(t, err)
		assert.True(t, updated)
		stored, err := service.GetById(ctx, saved.Id)
		require.NoError(t, err)
		assert.Equal(t, "250000", stored.VndAmount.String())
	})

	t.Run("should report false for unknown transaction", func(t *testing.T) {
		ctx, service := setupService(t)

		updated, err := service.Update(ctx, 31, sampleTransaction("income", "Sales", 1))

		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestServiceImpl_Export(t *testing.T) {
	ctx, service := setupService(t)
	tx := sampleTransaction("income", "Sales", 9)
	tx.Description = "Invoice 7"
	_, err := service.Save(ctx, tx)
	require.NoError(t, err)

	table, err := service.Export(ctx)

	require.NoError(t, err)
	assert.Equal(t, exportHeader, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "2025-03-09", "income", "100.5", "USD", "2512500", "Invoice 7", "Sales", "", "25000", "2025-01-01T00:00:01Z"}, table.Rows[0])
}
