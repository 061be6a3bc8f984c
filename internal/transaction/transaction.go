package transaction

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType accepts "income"/"expense" in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}

	return t, nil
}

// Category is a display label drawn from the enumeration of its transaction type.
type Category string

const (
	CategoryRent          Category = "Rent/Housing"
	CategoryGenerator     Category = "Generator/Fuel"
	CategoryGroceries     Category = "Groceries"
	CategoryMedicine      Category = "Medicine"
	CategoryEducation     Category = "Education (Tuition)"
	CategoryDiningOut     Category = "Dining Out/Coffee"
	CategoryShopping      Category = "Shopping/Retail"
	CategoryEntertainment Category = "Entertainment"
	CategoryTransport     Category = "Car Maintenance/Transport"
	CategoryTelecom       Category = "Telecom/Internet"
)

const (
	CategorySalaryUSD   Category = "Salary (Fresh USD)"
	CategorySalaryLBP   Category = "Salary (LBP)"
	CategoryRemittance  Category = "Remittance"
	CategoryFreelance   Category = "Freelance Income"
	CategoryOtherIncome Category = "Other"
)

var (
	expenseCategories = []Category{
		CategoryRent,
		CategoryGenerator,
		CategoryGroceries,
		CategoryMedicine,
		CategoryEducation,
		CategoryDiningOut,
		CategoryShopping,
		CategoryEntertainment,
		CategoryTransport,
		CategoryTelecom,
	}

	incomeCategories = []Category{
		CategorySalaryUSD,
		CategorySalaryLBP,
		CategoryRemittance,
		CategoryFreelance,
		CategoryOtherIncome,
	}
)

// Categories returns the allowed labels for t, or nil for an unknown type.
func Categories(t Type) []Category {
	switch t {
	case TypeIncome:
		return slices.Clone(incomeCategories)
	case TypeExpense:
		return slices.Clone(expenseCategories)
	}

	return nil
}

// ValidCategory reports whether c belongs to the enumeration of t.
func ValidCategory(t Type, c Category) bool {
	switch t {
	case TypeIncome:
		return slices.Contains(incomeCategories, c)
	case TypeExpense:
		return slices.Contains(expenseCategories, c)
	}

	return false
}

// Transaction is an admitted record. It is never modified after admission.
type Transaction struct {
	ID       uuid.UUID
	Amount   float64
	Currency currency.Currency
	Type     Type
	Category Category
	Date     time.Time
}

// USD returns the amount normalized to the reference currency.
func (t *Transaction) USD() float64 {
	return currency.ToUSD(t.Amount, t.Currency)
}
