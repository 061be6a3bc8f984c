package currency_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
)

func TestToUSD(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency currency.Currency
		want     float64
	}{
		{name: "OneUSDOfLBP", amount: 89500, currency: currency.LBP, want: 1},
		{name: "GroceriesLBP", amount: 895000, currency: currency.LBP, want: 10},
		{name: "FreshUSDAtFaceValue", amount: 42.5, currency: currency.FreshUSD, want: 42.5},
		{name: "LollarAtFaceValue", amount: 300, currency: currency.Lollar, want: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, currency.ToUSD(tt.amount, tt.currency), 1e-9)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    currency.Currency
		wantErr bool
	}{
		{in: "LBP", want: currency.LBP},
		{in: "lbp", want: currency.LBP},
		{in: "Fresh USD", want: currency.FreshUSD},
		{in: "FRESH_USD", want: currency.FreshUSD},
		{in: "USD", want: currency.FreshUSD},
		{in: " Lollar ", want: currency.Lollar},
		{in: "EUR", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := currency.Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, currency.ErrUnknown)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "895,000", want: 895000},
		{in: "1,000.50", want: 1000.5},
		{in: "12.5", want: 12.5},
		{in: "-5", want: -5},
		{in: "abc", wantErr: true},
		{in: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := currency.ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, currency.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.56", currency.FormatUSD(1234.56))
	assert.Equal(t, "-$10.00", currency.FormatUSD(-10))
	assert.Equal(t, "$0.00", currency.FormatUSD(0))
	assert.Equal(t, "LBP 895,000", currency.FormatLBP(895000))
	assert.Equal(t, "LBP 88,605,000", currency.FormatLBP(currency.LBPEquivalent(990)))
	assert.Equal(t, "895,000 LBP", currency.FormatAmount(895000, currency.LBP))
	assert.Equal(t, "1,000.00 Fresh USD", currency.FormatAmount(1000, currency.FreshUSD))
	assert.Equal(t, "12.50 LBP", currency.FormatAmount(12.5, currency.LBP))
}

func TestFormat_Large(t *testing.T) {
	assert.Equal(t, "LBP 17,900,000,000,000,000,000", currency.FormatLBP(currency.LBPEquivalent(2e14)))
	assert.Equal(t, "20,000,000,000,000,000,000 LBP", currency.FormatAmount(2e19, currency.LBP))
	assert.Equal(t, "$20,000,000,000,000,000,000.00", currency.FormatUSD(2e19))
	assert.Equal(t, "-$20,000,000,000,000,000,000.00", currency.FormatUSD(-2e19))

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), math.MaxFloat64} {
		assert.NotPanics(t, func() {
			currency.FormatUSD(v)
			currency.FormatLBP(v)
			currency.FormatAmount(v, currency.LBP)
			currency.FormatAmount(v, currency.FreshUSD)
		})
	}
}
