package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/encoding"
	"github.com/MrJamesThe3rd/cedar/internal/importer"
	"github.com/MrJamesThe3rd/cedar/internal/logger"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/transaction/store"
)

func TestParse(t *testing.T) {
	type args struct {
		csvContent string
		charset    string
	}

	type testCase struct {
		name    string
		args    args
		want    []transaction.Candidate
		wantErr error
	}

	tests := []testCase{
		{
			name: "CommaSeparated",
			args: args{csvContent: `amount,currency,type,category
"895,000",LBP,EXPENSE,Groceries
1000,Fresh USD,INCOME,Salary (Fresh USD)
`},
			want: []transaction.Candidate{
				{Amount: 895000, Currency: currency.LBP, Type: transaction.TypeExpense, Category: transaction.CategoryGroceries},
				{Amount: 1000, Currency: currency.FreshUSD, Type: transaction.TypeIncome, Category: transaction.CategorySalaryUSD},
			},
		},
		{
			name: "SemicolonAnyOrderAnyCase",
			args: args{csvContent: `Category;TYPE;Currency;Amount

rent/housing;expense;lollar;400

Remittance;income;usd;250.50
`},
			want: []transaction.Candidate{
				{Amount: 400, Currency: currency.Lollar, Type: transaction.TypeExpense, Category: transaction.CategoryRent},
				{Amount: 250.5, Currency: currency.FreshUSD, Type: transaction.TypeIncome, Category: transaction.CategoryRemittance},
			},
		},
		{
			name: "ExtraColumnsIgnored",
			args: args{csvContent: "note,amount,currency,type,category\nweekly shop,150000,LBP,EXPENSE,Groceries\n"},
			want: []transaction.Candidate{
				{Amount: 150000, Currency: currency.LBP, Type: transaction.TypeExpense, Category: transaction.CategoryGroceries},
			},
		},
		{
			name:    "MissingColumns",
			args:    args{csvContent: "amount,currency\n10,LBP\n"},
			wantErr: importer.ErrMissingColumns,
		},
		{
			name:    "Empty",
			args:    args{csvContent: "\n\n"},
			wantErr: importer.ErrEmptyFile,
		},
		{
			name:    "ZeroAmount",
			args:    args{csvContent: "amount,currency,type,category\n0,LBP,EXPENSE,Groceries\n"},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:    "BadAmount",
			args:    args{csvContent: "amount,currency,type,category\nlots,LBP,EXPENSE,Groceries\n"},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name:    "UnknownCurrency",
			args:    args{csvContent: "amount,currency,type,category\n10,EUR,EXPENSE,Groceries\n"},
			wantErr: transaction.ErrInvalidCurrency,
		},
		{
			name:    "CategoryOfOtherType",
			args:    args{csvContent: "amount,currency,type,category\n10,LBP,INCOME,Groceries\n"},
			wantErr: transaction.ErrInvalidCategory,
		},
		{
			name:    "UnknownCharset",
			args:    args{csvContent: "amount,currency,type,category\n", charset: "klingon"},
			wantErr: encoding.ErrUnknownCharset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.Parse(strings.NewReader(tt.args.csvContent), tt.args.charset)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RowNumberInError(t *testing.T) {
	csv := "amount,currency,type,category\n10,LBP,EXPENSE,Groceries\n-5,LBP,EXPENSE,Groceries\n"

	_, err := importer.Parse(strings.NewReader(csv), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestParse_Windows1256(t *testing.T) {
	// An Arabic note column next to the required ones, saved by Excel as Windows-1256.
	utf8CSV := "ملاحظة;amount;currency;type;category\nبقالة;895000;LBP;EXPENSE;Groceries\n"

	encoded, err := charmap.Windows1256.NewEncoder().String(utf8CSV)
	require.NoError(t, err)

	got, err := importer.Parse(bytes.NewReader([]byte(encoded)), "windows-1256")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, transaction.CategoryGroceries, got[0].Category)
	assert.InDelta(t, 895000.0, got[0].Amount, 1e-9)
}

func TestService_Import(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	txs := transaction.NewService(store.New(), transaction.WithClock(func() time.Time { return now }))
	svc := importer.NewService(txs, zerolog.Nop())
	ctx := context.Background()

	t.Run("AdmitsAllRows", func(t *testing.T) {
		got, err := svc.Import(ctx, strings.NewReader("amount,currency,type,category\n895000,LBP,EXPENSE,Groceries\n1000,Fresh USD,INCOME,Freelance Income\n"), "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, now, got[0].Date)

		all, err := txs.List(ctx, transaction.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("RejectsWholeFile", func(t *testing.T) {
		_, err := svc.Import(ctx, strings.NewReader("amount,currency,type,category\n10,LBP,EXPENSE,Groceries\n10,LBP,EXPENSE,Casino\n"), "")
		assert.ErrorIs(t, err, transaction.ErrInvalidCategory)

		all, err := txs.List(ctx, transaction.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestService_ImportLogsToContextLogger(t *testing.T) {
	txs := transaction.NewService(store.New())

	var fallback, scoped bytes.Buffer

	svc := importer.NewService(txs, logger.NewWithWriter(&fallback))

	tests := []struct {
		name string
		ctx  context.Context
		want *bytes.Buffer
	}{
		{name: "RequestLogger", ctx: logger.NewWithWriter(&scoped).WithContext(context.Background()), want: &scoped},
		{name: "Fallback", ctx: context.Background(), want: &fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fallback.Reset()
			scoped.Reset()

			_, err := svc.Import(tt.ctx, strings.NewReader("amount,currency,type,category\n10,LBP,EXPENSE,Groceries\n"), "")
			require.NoError(t, err)

			assert.Contains(t, tt.want.String(), `"message":"csv imported"`)
			assert.Contains(t, tt.want.String(), `"component":"importer"`)
			assert.Equal(t, fallback.Len()+scoped.Len(), tt.want.Len())
		})
	}
}
