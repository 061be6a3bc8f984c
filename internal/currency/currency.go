package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one of the money kinds a transaction can be recorded in.
type Currency string

const (
	LBP      Currency = "LBP"
	FreshUSD Currency = "Fresh USD"
	Lollar   Currency = "Lollar"
)

// LBPPerUSD is the fixed market rate used for every conversion.
const LBPPerUSD = 89500.0

var (
	ErrUnknown       = errors.New("unknown currency")
	ErrInvalidAmount = errors.New("invalid amount")
)

var aliases = map[string]Currency{
	"lbp":       LBP,
	"fresh usd": FreshUSD,
	"fresh_usd": FreshUSD,
	"fresh":     FreshUSD,
	"usd":       FreshUSD,
	"lollar":    Lollar,
}

// All returns the supported currencies in display order.
func All() []Currency {
	return []Currency{LBP, FreshUSD, Lollar}
}

func (c Currency) Valid() bool {
	switch c {
	case LBP, FreshUSD, Lollar:
		return true
	}

	return false
}

// Parse resolves a display value or a common alias, ignoring case.
func Parse(s string) (Currency, error) {
	c, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}

	return c, nil
}

// ToUSD converts amount into the reference unit. Fresh USD and Lollar are taken at face value.
func ToUSD(amount float64, c Currency) float64 {
	if c == LBP {
		return amount / LBPPerUSD
	}

	return amount
}

// LBPEquivalent returns what a USD value is worth in LBP at the fixed rate.
func LBPEquivalent(usd float64) float64 {
	return usd * LBPPerUSD
}

// ParseAmount parses a typed amount such as "895,000" or "1,000.50".
// Commas are thousands separators; a dot is the decimal point.
func ParseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d.InexactFloat64(), nil
}
