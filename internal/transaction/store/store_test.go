package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/transaction/store"
)

func tx(day int, typ transaction.Type, cur currency.Currency) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		Amount:   10,
		Currency: cur,
		Type:     typ,
		Category: transaction.CategoryGroceries,
		Date:     time.Date(2026, 10, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_InsertKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	mid := tx(10, transaction.TypeExpense, currency.LBP)
	old := tx(1, transaction.TypeExpense, currency.LBP)
	newest := tx(20, transaction.TypeIncome, currency.FreshUSD)

	require.NoError(t, s.Insert(ctx, mid))
	require.NoError(t, s.Insert(ctx, old, newest))

	got, err := s.List(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, mid.ID, got[1].ID)
	assert.Equal(t, old.ID, got[2].ID)
}

func TestStore_EqualDatesPutLatestInsertFirst(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	first := tx(5, transaction.TypeExpense, currency.LBP)
	second := tx(5, transaction.TypeExpense, currency.LBP)

	require.NoError(t, s.Insert(ctx, first))
	require.NoError(t, s.Insert(ctx, second))

	got, err := s.List(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestStore_ListFilter(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	income := tx(3, transaction.TypeIncome, currency.FreshUSD)
	lbp := tx(4, transaction.TypeExpense, currency.LBP)
	lollar := tx(8, transaction.TypeExpense, currency.Lollar)
	require.NoError(t, s.Insert(ctx, income, lbp, lollar))

	start := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter transaction.ListFilter
		want   []uuid.UUID
	}{
		{name: "All", filter: transaction.ListFilter{}, want: []uuid.UUID{lollar.ID, lbp.ID, income.ID}},
		{name: "Type", filter: transaction.ListFilter{Type: new(transaction.TypeExpense)}, want: []uuid.UUID{lollar.ID, lbp.ID}},
		{name: "Currency", filter: transaction.ListFilter{Currency: new(currency.LBP)}, want: []uuid.UUID{lbp.ID}},
		{name: "StartDate", filter: transaction.ListFilter{StartDate: &start}, want: []uuid.UUID{lollar.ID, lbp.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]uuid.UUID, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.ID)
			}

			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStore_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	a := tx(1, transaction.TypeExpense, currency.LBP)
	require.NoError(t, s.Insert(ctx, a))

	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Amount, got.Amount)

	require.NoError(t, s.Delete(ctx, a.ID))

	_, err = s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, a.ID), transaction.ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	a := tx(1, transaction.TypeExpense, currency.LBP)
	require.NoError(t, s.Insert(ctx, a))

	a.Amount = 999

	got, err := s.List(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	got[0].Amount = 555

	again, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, again.Amount, 1e-9)
}
