package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cedar/internal/budget"
	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/transaction/store"
)

func expense(amount float64, cur currency.Currency, c transaction.Category) *transaction.Transaction {
	return &transaction.Transaction{
		ID: uuid.New(), Amount: amount, Currency: cur, Type: transaction.TypeExpense, Category: c, Date: time.Now(),
	}
}

func income(amount float64, cur currency.Currency, c transaction.Category) *transaction.Transaction {
	return &transaction.Transaction{
		ID: uuid.New(), Amount: amount, Currency: cur, Type: transaction.TypeIncome, Category: c, Date: time.Now(),
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := budget.Summarize(nil)

	assert.Zero(t, got.TotalIncome)
	assert.Zero(t, got.TotalExpenses)
	assert.Zero(t, got.RemainingBudget)
	assert.NotNil(t, got.TopExpenses)
	assert.Empty(t, got.TopExpenses)
}

func TestSummarize_IncomeOnly(t *testing.T) {
	got := budget.Summarize([]*transaction.Transaction{
		income(1000, currency.FreshUSD, transaction.CategorySalaryUSD),
		income(179000, currency.LBP, transaction.CategorySalaryLBP),
	})

	assert.InDelta(t, 1002.0, got.TotalIncome, 1e-9)
	assert.Zero(t, got.TotalExpenses)
	assert.Empty(t, got.TopExpenses)
}

func TestSummarize_Ranking(t *testing.T) {
	got := budget.Summarize([]*transaction.Transaction{
		expense(300, currency.FreshUSD, transaction.CategoryGroceries),
		expense(900, currency.FreshUSD, transaction.CategoryRent),
		expense(150, currency.Lollar, transaction.CategoryGenerator),
		expense(900, currency.FreshUSD, transaction.CategoryDiningOut),
	})

	require.Len(t, got.TopExpenses, 3)
	assert.Equal(t, []budget.CategoryAmount{
		{Category: transaction.CategoryRent, Amount: 900},
		{Category: transaction.CategoryDiningOut, Amount: 900},
		{Category: transaction.CategoryGroceries, Amount: 300},
	}, got.TopExpenses)
}

func TestSummarize_AccumulatesPerCategory(t *testing.T) {
	got := budget.Summarize([]*transaction.Transaction{
		expense(50, currency.FreshUSD, transaction.CategoryMedicine),
		expense(895000, currency.LBP, transaction.CategoryGenerator),
		expense(45, currency.Lollar, transaction.CategoryMedicine),
	})

	require.Len(t, got.TopExpenses, 2)
	assert.Equal(t, transaction.CategoryMedicine, got.TopExpenses[0].Category)
	assert.InDelta(t, 95.0, got.TopExpenses[0].Amount, 1e-9)
	assert.Equal(t, transaction.CategoryGenerator, got.TopExpenses[1].Category)
	assert.InDelta(t, 10.0, got.TopExpenses[1].Amount, 1e-9)
}

func TestSummarize_Scenario(t *testing.T) {
	got := budget.Summarize([]*transaction.Transaction{
		expense(895000, currency.LBP, transaction.CategoryGroceries),
		income(1000, currency.FreshUSD, transaction.CategorySalaryUSD),
	})

	assert.InDelta(t, 1000.0, got.TotalIncome, 1e-9)
	assert.InDelta(t, 10.0, got.TotalExpenses, 1e-9)
	assert.InDelta(t, 990.0, got.RemainingBudget, 1e-9)
	require.Len(t, got.TopExpenses, 1)
	assert.Equal(t, transaction.CategoryGroceries, got.TopExpenses[0].Category)
	assert.InDelta(t, 10.0, got.TopExpenses[0].Amount, 1e-9)
	assert.False(t, got.Overspent())
}

func TestSummarize_NegativeRemaining(t *testing.T) {
	got := budget.Summarize([]*transaction.Transaction{
		income(100, currency.FreshUSD, transaction.CategoryFreelance),
		expense(400, currency.FreshUSD, transaction.CategoryRent),
	})

	assert.InDelta(t, -300.0, got.RemainingBudget, 1e-9)
	assert.True(t, got.Overspent())
}

func TestSummarize_OrderIndependentAndIdempotent(t *testing.T) {
	txs := []*transaction.Transaction{
		expense(895000, currency.LBP, transaction.CategoryGroceries),
		income(1000, currency.FreshUSD, transaction.CategorySalaryUSD),
		expense(12.75, currency.Lollar, transaction.CategoryTelecom),
		income(2685000, currency.LBP, transaction.CategoryRemittance),
		expense(60, currency.FreshUSD, transaction.CategoryEntertainment),
	}

	want := budget.Summarize(txs)

	reversed := make([]*transaction.Transaction, len(txs))
	for i, tx := range txs {
		reversed[len(txs)-1-i] = tx
	}

	rotated := append(append([]*transaction.Transaction{}, txs[2:]...), txs[:2]...)

	for _, perm := range [][]*transaction.Transaction{reversed, rotated} {
		got := budget.Summarize(perm)

		assert.InDelta(t, want.TotalIncome, got.TotalIncome, 1e-9)
		assert.InDelta(t, want.TotalExpenses, got.TotalExpenses, 1e-9)
		assert.Equal(t, got.TotalIncome-got.TotalExpenses, got.RemainingBudget)
	}

	assert.Equal(t, want, budget.Summarize(txs))
	assert.Equal(t, want.TotalIncome-want.TotalExpenses, want.RemainingBudget)
}

func TestService_Summary(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *budget.MockLister)
		wantErr   bool
		wantLen   int
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *budget.MockLister) {
				m.EXPECT().
					List(gomock.Any(), transaction.ListFilter{}).
					Return([]*transaction.Transaction{
						expense(20, currency.FreshUSD, transaction.CategoryShopping),
					}, nil)
			},
			wantLen: 1,
		},
		{
			name: "ListError",
			setupMock: func(m *budget.MockLister) {
				m.EXPECT().
					List(gomock.Any(), transaction.ListFilter{}).
					Return(nil, errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			lister := budget.NewMockLister(ctrl)
			tt.setupMock(lister)

			got, err := budget.NewService(lister).Summary(context.Background(), transaction.ListFilter{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.TopExpenses, tt.wantLen)
		})
	}
}

func TestService_SummaryTracksAdmissions(t *testing.T) {
	ctx := context.Background()
	txSvc := transaction.NewService(store.New())
	svc := budget.NewService(txSvc)

	_, err := txSvc.Admit(ctx, transaction.Candidate{
		Amount: 895000, Currency: currency.LBP, Type: transaction.TypeExpense, Category: transaction.CategoryGroceries,
	})
	require.NoError(t, err)

	_, err = txSvc.Admit(ctx, transaction.Candidate{
		Amount: 1000, Currency: currency.FreshUSD, Type: transaction.TypeIncome, Category: transaction.CategorySalaryUSD,
	})
	require.NoError(t, err)

	before, err := svc.Summary(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	assert.InDelta(t, 990.0, before.RemainingBudget, 1e-9)

	for _, amount := range []float64{-5, 0} {
		_, err := txSvc.Admit(ctx, transaction.Candidate{
			Amount: amount, Currency: currency.FreshUSD, Type: transaction.TypeExpense, Category: transaction.CategoryRent,
		})
		require.ErrorIs(t, err, transaction.ErrInvalidAmount)
	}

	after, err := svc.Summary(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
